package exceltable

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"
	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-rowview"
)

func newWorkbook(t *testing.T, sheets map[string][][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	first := true
	for name, rows := range sheets {
		if first {
			if name != "Sheet1" {
				require.NoError(t, f.SetSheetName("Sheet1", name))
			}
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadFirstSheet(t *testing.T) {
	data := newWorkbook(t, map[string][][]any{
		"People": {
			{nil, nil, nil},
			{nil, "id", "name", ""},
			{nil, 1, "Alice"},
			{nil, nil, nil},
			{nil, 2},
		},
	})
	table, err := ReadFirstSheet(bytes.NewReader(data), true)
	require.NoError(t, err)
	require.Equal(t, "People", table.Title())
	require.Equal(t, []string{"id", "name"}, table.Columns())
	require.Equal(t, 2, table.NumRows())
	require.Equal(t, []any{"1", "Alice"}, rowview.ViewRow(table, 0))
	require.Equal(t, []any{"2", ""}, rowview.ViewRow(table, 1))
}

func TestReadFirstSheet_HeaderlessColumn(t *testing.T) {
	data := newWorkbook(t, map[string][][]any{
		"Sheet1": {
			{"id", nil, "note"},
			{1, "x", "y"},
		},
	})
	table, err := ReadFirstSheet(bytes.NewReader(data), true)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "B", "note"}, table.Columns())
}

func TestReadFirstSheet_Empty(t *testing.T) {
	data := newWorkbook(t, map[string][][]any{"Sheet1": nil})
	_, err := ReadFirstSheet(bytes.NewReader(data), true)
	require.ErrorIs(t, err, ErrEmptySheet)
}

func TestReadSheets(t *testing.T) {
	data := newWorkbook(t, map[string][][]any{
		"A": {{"x"}, {1}},
	})
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = f.NewSheet("Empty")
	require.NoError(t, err)
	_, err = f.NewSheet("B")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("B", "A1", &[]any{"y", "z"}))
	require.NoError(t, f.SetSheetRow("B", "A2", &[]any{2, 3}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	tables, err := ReadSheets(&buf, true)
	require.NoError(t, err)
	require.Len(t, tables, 2, "empty sheet skipped")
	require.Equal(t, "A", tables[0].Title())
	require.Equal(t, "B", tables[1].Title())
	require.Equal(t, []string{"y", "z"}, tables[1].Columns())
}

func TestWriteView(t *testing.T) {
	table, err := rowview.NewTable("ids: 1/2", []string{"id", "name"},
		[]any{0, "a"},
		[]any{1, "b"},
		[]any{2, "c"},
	)
	require.NoError(t, err)
	msg, err := rowview.NewMessageWindow(table, 1, 2)
	require.NoError(t, err)
	view, err := msg.Read("name", "id")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteView(context.Background(), &buf, view)
	require.NoError(t, err)

	read, err := ReadFirstSheetFile(fs.NewMemFile("window.xlsx", buf.Bytes()), true)
	require.NoError(t, err)
	require.Equal(t, "ids_ 1_2", read.Title())
	require.Equal(t, []string{"name", "id"}, read.Columns())
	require.Equal(t, rowview.Column{"b", "c"}, rowview.ViewColumn(read, 0))
	require.Equal(t, rowview.Column{"1", "2"}, rowview.ViewColumn(read, 1))
}

func TestSheetName(t *testing.T) {
	require.Equal(t, "", SheetName("  "))
	require.Equal(t, "a_b_c", SheetName("a/b*c"))
	require.Equal(t, "abcdefghijklmnopqrstuvwxyz01234", SheetName("abcdefghijklmnopqrstuvwxyz0123456789"))
}
