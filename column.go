package rowview

import "slices"

// Column holds the values of one column for a number of rows.
type Column []any

// Clone returns a copy of the column values.
func (c Column) Clone() Column {
	return slices.Clone(c)
}

// resolveColumns returns the indices of the named columns within available.
// No names select all available columns in their order,
// repeated names are kept at their requested positions.
func resolveColumns(available, names []string) ([]int, error) {
	if len(names) == 0 {
		indices := make([]int, len(available))
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}
	indices := make([]int, len(names))
	for i, name := range names {
		index := slices.Index(available, name)
		if index < 0 {
			return nil, &UnknownColumnError{Column: name, Available: slices.Clone(available)}
		}
		indices[i] = index
	}
	return indices, nil
}
