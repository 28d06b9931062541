// Package exceltable loads row batches from Excel sheets
// and writes views as single sheet workbooks.
//
// The first non empty row of a sheet is used as column names
// and all cell values are strings.
package exceltable

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	fs "github.com/ungerik/go-fs"
	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-rowview"
)

// ReadFirstSheet reads the first sheet of an Excel file.
// If rawCellStrings is true then cell values are returned
// without applying the number format of the cell.
func ReadFirstSheet(reader io.Reader, rawCellStrings bool) (table *rowview.Table, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrSheetNotExist{SheetName: "<FirstSheet>"}
	}
	return readSheet(f, sheet, rawCellStrings)
}

// ReadFirstSheetFile is like ReadFirstSheet but reads from file.
func ReadFirstSheetFile(file fs.FileReader, rawCellStrings bool) (*rowview.Table, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	table, err := ReadFirstSheet(bytes.NewReader(data), rawCellStrings)
	if err != nil {
		return nil, fmt.Errorf("can't read %s: %w", file.Name(), err)
	}
	return table, nil
}

// ReadSheets reads all non empty sheets of an Excel file
// as tables with the sheet names as titles.
func ReadSheets(reader io.Reader, rawCellStrings bool) (tables []*rowview.Table, err error) {
	f, e := excelize.OpenReader(reader)
	if e != nil {
		return nil, e
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	for _, sheet := range f.GetSheetList() {
		table, err := readSheet(f, sheet, rawCellStrings)
		if err != nil {
			if errors.Is(err, ErrEmptySheet) {
				continue
			}
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func readSheet(f *excelize.File, sheet string, rawCellStrings bool) (*rowview.Table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: rawCellStrings})
	if err != nil {
		return nil, err
	}
	rows, numCols := trimEmpty(rows)
	if len(rows) == 0 || numCols == 0 {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrEmptySheet)
	}
	columns := make([]string, numCols)
	for col := range columns {
		if col < len(rows[0]) {
			columns[col] = strings.TrimSpace(rows[0][col])
		}
		if columns[col] == "" {
			// Name headerless columns like Excel does
			columns[col], err = excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return nil, err
			}
		}
	}
	values := make([][]any, len(rows)-1)
	for i, row := range rows[1:] {
		values[i] = make([]any, numCols)
		for col := range values[i] {
			if col < len(row) {
				values[i][col] = row[col]
			} else {
				values[i][col] = ""
			}
		}
	}
	table, err := rowview.NewTable(sheet, columns, values...)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return table, nil
}

// trimEmpty removes rows without non empty cells
// and empty columns at the left edge.
// It returns the number of columns up to the last non empty cell.
func trimEmpty(rows [][]string) (trimmed [][]string, numCols int) {
	leftEmpty := -1
	for _, row := range rows {
		first := -1
		for col, cell := range row {
			if strings.TrimSpace(cell) != "" {
				if first == -1 {
					first = col
				}
				numCols = max(numCols, col+1)
			}
		}
		if first == -1 {
			continue
		}
		trimmed = append(trimmed, row)
		if leftEmpty == -1 || first < leftEmpty {
			leftEmpty = first
		}
	}
	if leftEmpty > 0 {
		for i, row := range trimmed {
			trimmed[i] = row[min(leftEmpty, len(row)):]
		}
		numCols -= leftEmpty
	}
	return trimmed, numCols
}
