package rowview

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func readIDs(t *testing.T, msg *Message) Column {
	t.Helper()
	ids, err := msg.ReadColumn("id")
	require.NoError(t, err)
	return ids
}

func TestNewMessage(t *testing.T) {
	table := newTestTable(t, 10)

	msg, err := NewMessage(table, 3)
	require.NoError(t, err)
	require.Equal(t, 3, msg.Offset())
	require.Equal(t, 7, msg.Count(), "rest of batch")
	require.Same(t, table, msg.Batch())

	msg, err = NewMessageWindow(table, 2, 5)
	require.NoError(t, err)
	require.Equal(t, Column{2, 3, 4, 5, 6}, readIDs(t, msg))

	msg, err = NewMessage(table, 10)
	require.NoError(t, err)
	require.Equal(t, 0, msg.Count())

	var rangeErr *RangeError
	_, err = NewMessage(table, 11)
	require.ErrorAs(t, err, &rangeErr)
	_, err = NewMessageWindow(table, 8, 3)
	require.ErrorAs(t, err, &rangeErr)
	_, err = NewMessageWindow(table, -1, 3)
	require.ErrorAs(t, err, &rangeErr)
	_, err = NewMessageWindow(table, 1, math.MaxInt)
	require.ErrorAs(t, err, &rangeErr, "offset+count must not overflow")
	_, err = NewMessageWindow(table, math.MaxInt, 1)
	require.ErrorAs(t, err, &rangeErr)
	_, err = NewMessage(nil, 0)
	require.Error(t, err)
}

func TestSlice(t *testing.T) {
	table := newTestTable(t, 10)
	msg, err := NewMessageWindow(table, 2, 5)
	require.NoError(t, err)

	sliced, err := Slice(msg, 1, 3)
	require.NoError(t, err)
	require.Equal(t, 3, sliced.Offset())
	require.Equal(t, 2, sliced.Count())
	require.Same(t, table, sliced.Batch(), "slices share the batch")
	require.Equal(t, Column{3, 4}, readIDs(t, sliced))

	// Slice of a slice
	inner, err := Slice(sliced, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 4, inner.Offset())
	require.Equal(t, Column{4}, readIDs(t, inner))

	// Original unchanged
	require.Equal(t, 2, msg.Offset())
	require.Equal(t, 5, msg.Count())
}

func TestSlice_Identity(t *testing.T) {
	table := newTestTable(t, 10)
	msg, err := NewMessageWindow(table, 2, 5)
	require.NoError(t, err)

	same, err := Slice(msg, 0, msg.Count())
	require.NoError(t, err)
	require.NotSame(t, msg, same)
	require.Equal(t, msg.Offset(), same.Offset())
	require.Equal(t, msg.Count(), same.Count())
	require.Same(t, msg.Batch(), same.Batch())

	want, err := msg.Read()
	require.NoError(t, err)
	got, err := same.Read()
	require.NoError(t, err)
	require.Equal(t, NewTableFromView(want), NewTableFromView(got))
}

func TestSlice_MatchesRead(t *testing.T) {
	table := newTestTable(t, 8)
	msg, err := NewMessageWindow(table, 1, 6)
	require.NoError(t, err)
	full, err := msg.Read()
	require.NoError(t, err)

	for start := 0; start < msg.Count(); start++ {
		for stop := start + 1; stop <= msg.Count(); stop++ {
			sliced, err := Slice(msg, start, stop)
			require.NoError(t, err)
			view, err := sliced.Read()
			require.NoError(t, err)
			require.Equal(t, stop-start, view.NumRows())
			for row := 0; row < view.NumRows(); row++ {
				require.Equal(t, ViewRow(full, start+row), ViewRow(view, row), "slice [%d,%d) row %d", start, stop, row)
			}
		}
	}
}

func TestSlice_Errors(t *testing.T) {
	table := newTestTable(t, 10)
	msg, err := NewMessageWindow(table, 2, 5)
	require.NoError(t, err)

	tests := []struct {
		name        string
		start, stop int
	}{
		{name: "start after stop", start: 5, stop: 3},
		{name: "empty", start: 2, stop: 2},
		{name: "stop beyond count", start: 0, stop: 6},
		{name: "negative start", start: -1, stop: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sliced, err := Slice(msg, tt.start, tt.stop)
			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			require.Nil(t, sliced)
			require.Equal(t, 5, rangeErr.Count)
		})
	}
}

func TestCopyRanges(t *testing.T) {
	table := newTestTable(t, 10)
	msg, err := NewMessageWindow(table, 2, 5)
	require.NoError(t, err)

	copied, err := CopyRanges(msg, []Range{{0, 2}, {3, 5}}, 4)
	require.NoError(t, err)
	require.Equal(t, 0, copied.Offset())
	require.Equal(t, 4, copied.Count())
	require.Equal(t, 4, copied.Batch().NumRows())
	require.NotSame(t, table, copied.Batch())
	require.Equal(t, Column{2, 3, 5, 6}, readIDs(t, copied))
	require.Equal(t, table.Columns(), copied.ColumnNames())
}

func TestCopyRanges_OrderAndOverlap(t *testing.T) {
	table := newTestTable(t, 10)
	msg, err := NewMessageWindow(table, 4, 6)
	require.NoError(t, err)

	copied, err := CopyRanges(msg, []Range{{4, 6}, {0, 2}, {1, 3}}, 6)
	require.NoError(t, err)
	require.Equal(t, Column{8, 9, 4, 5, 5, 6}, readIDs(t, copied))
}

func TestCopyRanges_NoAliasing(t *testing.T) {
	table := newTestTable(t, 10)
	msg, err := NewMessageWindow(table, 2, 5)
	require.NoError(t, err)
	copied, err := CopyRanges(msg, []Range{{0, 5}}, 5)
	require.NoError(t, err)

	require.NoError(t, msg.Write("id", Column{-1, -1, -1, -1, -1}))
	require.Equal(t, Column{2, 3, 4, 5, 6}, readIDs(t, copied))

	require.NoError(t, copied.Write("name", Column{"v", "w", "x", "y", "z"}))
	names, err := msg.ReadColumn("name")
	require.NoError(t, err)
	require.Equal(t, Column{"c", "d", "e", "f", "g"}, names)
}

func TestCopyRanges_Errors(t *testing.T) {
	table := newTestTable(t, 10)
	msg, err := NewMessageWindow(table, 2, 5)
	require.NoError(t, err)

	tests := []struct {
		name            string
		ranges          []Range
		numSelectedRows int
	}{
		{name: "total too small", ranges: []Range{{0, 2}, {3, 5}}, numSelectedRows: 3},
		{name: "total too large", ranges: []Range{{0, 2}}, numSelectedRows: 4},
		{name: "beyond window", ranges: []Range{{3, 6}}, numSelectedRows: 3},
		{name: "empty range", ranges: []Range{{1, 1}}, numSelectedRows: 0},
		{name: "reversed range", ranges: []Range{{3, 1}}, numSelectedRows: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			copied, err := CopyRanges(msg, tt.ranges, tt.numSelectedRows)
			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			require.Nil(t, copied)
		})
	}

	copied, err := CopyRanges(&Message{}, nil, 0)
	require.Error(t, err, "zero Message has no batch")
	require.Nil(t, copied)
}

func TestMessage_WriteRead(t *testing.T) {
	table := newTestTable(t, 10)
	msg, err := NewMessageWindow(table, 2, 5)
	require.NoError(t, err)
	overlapping, err := NewMessageWindow(table, 5, 4)
	require.NoError(t, err)

	require.NoError(t, msg.Write("name", Column{"A", "B", "C", "D", "E"}))

	names, err := msg.ReadColumn("name")
	require.NoError(t, err)
	require.Equal(t, Column{"A", "B", "C", "D", "E"}, names)

	// Only rows 5 and 6 are shared with msg
	names, err = overlapping.ReadColumn("name")
	require.NoError(t, err)
	require.Equal(t, Column{"D", "E", "h", "i"}, names)

	sliced, err := Slice(msg, 3, 5)
	require.NoError(t, err)
	require.NoError(t, sliced.WriteColumns([]string{"id", "name"}, []Column{{50, 60}, {"x", "y"}}))
	require.Equal(t, Column{2, 3, 4, 50, 60}, readIDs(t, msg))
}

func TestMessage_Read(t *testing.T) {
	table := newTestTable(t, 4)
	msg, err := NewMessageWindow(table, 1, 2)
	require.NoError(t, err)

	view, err := msg.Read("name", "id")
	require.NoError(t, err)
	require.Equal(t, []string{"name", "id"}, view.Columns())
	require.Equal(t, []any{"b", 1}, ViewRow(view, 0))

	all, err := msg.Read()
	require.NoError(t, err)
	require.Equal(t, msg.ColumnNames(), all.Columns())

	_, err = msg.Read("id", "nope")
	var colErr *UnknownColumnError
	require.ErrorAs(t, err, &colErr)
	_, err = msg.ReadColumn("nope")
	require.ErrorAs(t, err, &colErr)
	require.ErrorAs(t, msg.Write("nope", Column{1, 2}), &colErr)
}

func TestMessage_WriteErrors(t *testing.T) {
	table := newTestTable(t, 4)
	msg, err := NewMessageWindow(table, 1, 2)
	require.NoError(t, err)

	var shapeErr *ShapeMismatchError
	require.ErrorAs(t, msg.WriteColumns([]string{"id", "name"}, []Column{{1, 2}}), &shapeErr)
	require.ErrorAs(t, msg.Write("id", Column{1, 2, 3}), &shapeErr)
	require.Equal(t, Column{1, 2}, readIDs(t, msg), "failed writes don't mutate")
}

func TestMessage_ConcurrentReadsAndCopies(t *testing.T) {
	table := newTestTable(t, 100)
	msg, err := NewMessage(table, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sliced, err := Slice(msg, i*10, i*10+10)
			if err != nil {
				t.Error(err)
				return
			}
			copied, err := CopyRanges(sliced, []Range{{0, 5}}, 5)
			if err != nil {
				t.Error(err)
				return
			}
			if id := copied.Batch().(*Table).Cell(0, 0); id != i*10 {
				t.Errorf("got id %v, want %d", id, i*10)
			}
		}(i)
	}
	wg.Wait()
}
