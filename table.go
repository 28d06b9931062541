package rowview

import (
	"fmt"
	"slices"
	"sync"
)

var (
	_ RowBatch = new(Table)
	_ View     = new(Table)
)

// Table is an in-memory RowBatch storing its values column by column.
//
// Every single write or column addition is atomic for concurrent readers,
// but the rows of a window that are read cell by cell
// may observe a write that happens in between.
type Table struct {
	mtx     sync.RWMutex
	title   string
	columns []string
	data    []Column
	numRows int
}

// NewTable returns a Table with the passed columns and row values.
// Every row must have exactly one value per column.
func NewTable(title string, columns []string, rows ...[]any) (*Table, error) {
	if err := checkUniqueColumns(columns); err != nil {
		return nil, err
	}
	t := &Table{
		title:   title,
		columns: slices.Clone(columns),
		data:    make([]Column, len(columns)),
		numRows: len(rows),
	}
	for col := range t.data {
		t.data[col] = make(Column, len(rows))
	}
	for row, values := range rows {
		if len(values) != len(columns) {
			return nil, &ShapeMismatchError{Op: "NewTable", What: fmt.Sprintf("values in row %d", row), Want: len(columns), Got: len(values)}
		}
		for col, val := range values {
			t.data[col][row] = val
		}
	}
	return t, nil
}

// NewTableFromColumns returns a Table using the passed
// column values without copying them.
// All columns must have the same length.
func NewTableFromColumns(title string, columns []string, values []Column) (*Table, error) {
	if err := checkUniqueColumns(columns); err != nil {
		return nil, err
	}
	if len(values) != len(columns) {
		return nil, &ShapeMismatchError{Op: "NewTableFromColumns", What: "column values", Want: len(columns), Got: len(values)}
	}
	numRows := 0
	if len(values) > 0 {
		numRows = len(values[0])
	}
	for i, v := range values {
		if len(v) != numRows {
			return nil, &ShapeMismatchError{Op: "NewTableFromColumns", What: fmt.Sprintf("rows in column %q", columns[i]), Want: numRows, Got: len(v)}
		}
	}
	return &Table{
		title:   title,
		columns: slices.Clone(columns),
		data:    values,
		numRows: numRows,
	}, nil
}

// NewTableFromView reads all cells of the source View into a new Table.
func NewTableFromView(source View) *Table {
	columns := source.Columns()
	t := &Table{
		title:   source.Title(),
		columns: slices.Clone(columns),
		data:    make([]Column, len(columns)),
		numRows: source.NumRows(),
	}
	for col := range t.data {
		t.data[col] = ViewColumn(source, col)
	}
	return t
}

func checkUniqueColumns(columns []string) error {
	for i, name := range columns {
		if slices.Contains(columns[:i], name) {
			return fmt.Errorf("duplicate column %q", name)
		}
	}
	return nil
}

func (t *Table) Title() string { return t.title }

func (t *Table) Columns() []string {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	return slices.Clone(t.columns)
}

func (t *Table) NumRows() int { return t.numRows }

func (t *Table) Cell(row, col int) any {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	if row < 0 || col < 0 || row >= t.numRows || col >= len(t.data) {
		return nil
	}
	return t.data[col][row]
}

// HasColumn returns if the table has a column with the passed name.
func (t *Table) HasColumn(name string) bool {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	return t.hasColumn(name)
}

func (t *Table) hasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

func (t *Table) ReadRows(rows Range, columns []string) (View, error) {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	if err := checkRowRange("ReadRows", rows, t.numRows); err != nil {
		return nil, err
	}
	mapping, err := resolveColumns(t.columns, columns)
	if err != nil {
		return nil, err
	}
	return &WindowView{
		Source:        t,
		RowOffset:     rows.Start,
		RowCount:      rows.Len(),
		ColumnMapping: mapping,
	}, nil
}

func (t *Table) WriteRows(rows Range, columns []string, values []Column) error {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if err := checkRowRange("WriteRows", rows, t.numRows); err != nil {
		return err
	}
	indices, err := resolveColumns(t.columns, columns)
	if err != nil {
		return err
	}
	if len(values) != len(indices) {
		return &ShapeMismatchError{Op: "WriteRows", What: "column values", Want: len(indices), Got: len(values)}
	}
	// Check everything before writing anything
	for i, v := range values {
		if len(v) != rows.Len() {
			return &ShapeMismatchError{Op: "WriteRows", What: fmt.Sprintf("rows for column %q", t.columns[indices[i]]), Want: rows.Len(), Got: len(v)}
		}
	}
	for i, col := range indices {
		copy(t.data[col][rows.Start:rows.Stop], values[i])
	}
	return nil
}

func (t *Table) CopyRanges(ranges []Range) (RowBatch, error) {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	for _, r := range ranges {
		if err := checkWindowRange("CopyRanges", r, t.numRows); err != nil {
			return nil, err
		}
	}
	numRows := SumRanges(ranges)
	data := make([]Column, len(t.data))
	for col, src := range t.data {
		dst := make(Column, 0, numRows)
		for _, r := range ranges {
			dst = append(dst, src[r.Start:r.Stop]...)
		}
		data[col] = dst
	}
	return &Table{
		title:   t.title,
		columns: slices.Clone(t.columns),
		data:    data,
		numRows: numRows,
	}, nil
}

// AddColumn appends a new column with one value per table row.
func (t *Table) AddColumn(name string, values Column) error {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	return t.addColumn(name, values)
}

func (t *Table) addColumn(name string, values Column) error {
	if t.hasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	if len(values) != t.numRows {
		return &ShapeMismatchError{Op: "AddColumn", What: fmt.Sprintf("rows for column %q", name), Want: t.numRows, Got: len(values)}
	}
	t.columns = append(t.columns, name)
	t.data = append(t.data, values)
	return nil
}

func (t *Table) String() string {
	return fmt.Sprintf("Table(%q, %d rows, %d columns)", t.title, t.numRows, len(t.columns))
}
