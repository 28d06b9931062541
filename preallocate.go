package rowview

import (
	"fmt"
	"strings"
)

// ColumnType is the value type of a column
// that can be allocated by Preallocate.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeBool
)

// ParseColumnType parses the case insensitive names
// returned by ColumnType.String.
func ParseColumnType(name string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str":
		return TypeString, nil
	case "int64", "int":
		return TypeInt64, nil
	case "float32":
		return TypeFloat32, nil
	case "float64", "float":
		return TypeFloat64, nil
	case "bool":
		return TypeBool, nil
	}
	return 0, fmt.Errorf("invalid column type %q", name)
}

// Zero returns the zero value of the type.
func (t ColumnType) Zero() any {
	switch t {
	case TypeInt64:
		return int64(0)
	case TypeFloat32:
		return float32(0)
	case TypeFloat64:
		return float64(0)
	case TypeBool:
		return false
	default:
		return ""
	}
}

func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// MarshalText implements the encoding.TextMarshaler interface.
func (t ColumnType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (t *ColumnType) UnmarshalText(text []byte) error {
	parsed, err := ParseColumnType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NeededColumn names a column with its type
// that later processing steps expect to exist in a batch.
type NeededColumn struct {
	Name string     `json:"name" yaml:"name"`
	Type ColumnType `json:"type" yaml:"type"`
}

// Preallocate adds every needed column that is missing in table
// with the zero value of its type for all rows.
// Existing columns are not touched, even if their values have another type.
// The names of the added columns are returned in the order of needed.
func Preallocate(table *Table, needed []NeededColumn) (added []string, err error) {
	table.mtx.Lock()
	defer table.mtx.Unlock()

	for _, col := range needed {
		if col.Name == "" {
			return added, fmt.Errorf("needed column without name of type %s", col.Type)
		}
		if table.hasColumn(col.Name) {
			continue
		}
		values := make(Column, table.numRows)
		zero := col.Type.Zero()
		for i := range values {
			values[i] = zero
		}
		if err = table.addColumn(col.Name, values); err != nil {
			return added, err
		}
		added = append(added, col.Name)
	}
	return added, nil
}

// PreallocateMessage calls Preallocate for the batch of msg,
// which has to be a *Table.
// The columns are added to all rows of the batch,
// not only to the rows of the message window.
func PreallocateMessage(msg *Message, needed []NeededColumn) (added []string, err error) {
	table, ok := msg.Batch().(*Table)
	if !ok {
		return nil, fmt.Errorf("can't preallocate columns in a RowBatch of type %T", msg.Batch())
	}
	return Preallocate(table, needed)
}
