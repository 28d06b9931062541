// Package rowview implements messages as cheap windows
// into row batches that are shared between many messages.
//
// Slicing a Message never copies column data,
// CopyRanges materializes selected rows into a new batch.
package rowview

// View is the read side of tabular data:
// a title, named columns and cells addressed by row and column index.
type View interface {
	Title() string
	Columns() []string
	NumRows() int

	// Cell returns the value at row and col
	// or nil if the indices are out of bounds.
	Cell(row, col int) any
}

// ViewColumn returns the values of the column
// with the index col of all view rows.
func ViewColumn(view View, col int) Column {
	values := make(Column, view.NumRows())
	for row := range values {
		values[row] = view.Cell(row, col)
	}
	return values
}

// ViewRow returns the values of all columns of a view row.
func ViewRow(view View, row int) []any {
	values := make([]any, len(view.Columns()))
	for col := range values {
		values[col] = view.Cell(row, col)
	}
	return values
}
