package csvtable

import (
	"testing"

	"github.com/stretchr/testify/require"
	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-rowview"
)

func TestReadTable(t *testing.T) {
	csv := "\r\n id ; name \r\n1;Alice\r\n;\r\n2\r\n"
	table, format, err := ReadTable([]byte(csv), nil)
	require.NoError(t, err)
	require.Equal(t, ";", format.Separator)
	require.Equal(t, []string{"id", "name"}, table.Columns())
	require.Equal(t, 2, table.NumRows())
	require.Equal(t, "1", table.Cell(0, 0))
	require.Equal(t, "Alice", table.Cell(0, 1))
	require.Equal(t, "2", table.Cell(1, 0))
	require.Equal(t, "", table.Cell(1, 1), "short row is padded")
}

func TestReadTable_Errors(t *testing.T) {
	_, _, err := ReadTable([]byte("\n\n"), nil)
	require.ErrorIs(t, err, ErrNoHeader)

	_, _, err = ReadTable([]byte("a,b\n1,2,3\n"), nil)
	require.Error(t, err, "row longer than header")

	_, _, err = ReadTable([]byte("a,a\n1,2\n"), nil)
	require.Error(t, err, "duplicate column")
}

func TestReadTableWithFormat(t *testing.T) {
	table, err := ReadTableWithFormat([]byte("x|y\n1|2\n"), &Format{Encoding: "UTF-8", Separator: "|", Newline: "\n"})
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, table.Columns())
	require.Equal(t, 1, table.NumRows())
}

func TestReadTableFile(t *testing.T) {
	file := fs.NewMemFile("people.csv", []byte("id,name\n1,Alice\n2,Bob\n3,Carol\n"))
	table, _, err := ReadTableFile(file, nil)
	require.NoError(t, err)
	require.Equal(t, "people.csv", table.Title())

	msg, err := rowview.NewMessageWindow(table, 1, 2)
	require.NoError(t, err)
	names, err := msg.ReadColumn("name")
	require.NoError(t, err)
	require.Equal(t, rowview.Column{"Bob", "Carol"}, names)
}

func TestRemoveEmptyRows(t *testing.T) {
	rows := [][]string{nil, {"", " "}, {"a"}, {}, {"", "b"}}
	require.Equal(t, [][]string{{"a"}, {"", "b"}}, RemoveEmptyRows(rows))
	require.Empty(t, RemoveEmptyRows(nil))
}
