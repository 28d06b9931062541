package rowview

// RowBatch is the storage shared by messages.
//
// Row indices passed to a RowBatch are absolute,
// messages translate their window local indices before calling it.
// No rows are ever inserted or deleted, only the values
// of existing rows can be written.
type RowBatch interface {
	NumRows() int
	Columns() []string

	// ReadRows returns a View of the rows restricted to the named columns.
	// No columns select all columns.
	// The returned View may reference the batch data without copying it.
	ReadRows(rows Range, columns []string) (View, error)

	// WriteRows writes values[i] to the rows of columns[i].
	// Every Column must have rows.Len() values.
	// No columns select all columns.
	WriteRows(rows Range, columns []string, values []Column) error

	// CopyRanges returns a new independent RowBatch
	// with the rows of all ranges concatenated in order.
	CopyRanges(ranges []Range) (RowBatch, error)
}
