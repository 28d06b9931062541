package rowview

var _ View = new(WindowView)

// WindowView is a zero-copy View of a row window of a Source view.
type WindowView struct {
	Source View
	// Offset index of the first row from Source, must be positive.
	RowOffset int
	// Number of rows of the window,
	// clipped to the rows Source has after RowOffset.
	RowCount int
	// If not nil then the view has as many
	// columns as ColumnMapping has elements and
	// every element is a column index into the Source view.
	// The same source column may be mapped multiple times.
	// If nil then the view has as many columns as the Source view.
	ColumnMapping []int
}

func (view *WindowView) Title() string {
	return view.Source.Title()
}

func (view *WindowView) Columns() []string {
	sourceCols := view.Source.Columns()
	if view.ColumnMapping == nil {
		return sourceCols
	}
	mappedCols := make([]string, len(view.ColumnMapping))
	for i, iSource := range view.ColumnMapping {
		mappedCols[i] = sourceCols[iSource]
	}
	return mappedCols
}

func (view *WindowView) NumCols() int {
	if view.ColumnMapping != nil {
		return len(view.ColumnMapping)
	}
	return len(view.Source.Columns())
}

func (view *WindowView) NumRows() int {
	n := view.Source.NumRows() - max(view.RowOffset, 0)
	return max(min(n, view.RowCount), 0)
}

func (view *WindowView) Cell(row, col int) any {
	if row < 0 || col < 0 || row >= view.NumRows() || col >= view.NumCols() {
		return nil
	}
	row += max(view.RowOffset, 0)
	if view.ColumnMapping != nil {
		col = view.ColumnMapping[col]
	}
	return view.Source.Cell(row, col)
}
