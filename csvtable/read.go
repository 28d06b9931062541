package csvtable

import (
	"errors"
	"fmt"
	"strings"

	fs "github.com/ungerik/go-fs"

	"github.com/domonda/go-rowview"
)

// ErrNoHeader is returned when CSV data has no non empty row
// that could be used as column names.
var ErrNoHeader = errors.New("CSV has no header row")

// ReadTable detects the format of csv and returns its rows as Table
// using the first non empty row as column names.
// If config is nil then NewDefaultFormatDetectionConfig() is used.
func ReadTable(csv []byte, config *FormatDetectionConfig) (*rowview.Table, *Format, error) {
	rows, format, err := ParseDetectFormat(csv, config)
	if err != nil {
		return nil, format, err
	}
	table, err := NewTable("", rows)
	return table, format, err
}

// ReadTableWithFormat parses csv with format and returns its rows as Table
// using the first non empty row as column names.
func ReadTableWithFormat(csv []byte, format *Format) (*rowview.Table, error) {
	rows, err := ParseWithFormat(csv, format)
	if err != nil {
		return nil, err
	}
	return NewTable("", rows)
}

// ReadTableFile is like ReadTable but reads the data from file
// and uses the file name as table title.
func ReadTableFile(file fs.FileReader, config *FormatDetectionConfig) (*rowview.Table, *Format, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	rows, format, err := ParseDetectFormat(data, config)
	if err != nil {
		return nil, format, fmt.Errorf("can't parse %s: %w", file.Name(), err)
	}
	table, err := NewTable(file.Name(), rows)
	if err != nil {
		return nil, format, fmt.Errorf("can't read %s: %w", file.Name(), err)
	}
	return table, format, nil
}

// NewTable returns a Table of string values using the
// first non empty row as column names.
// Rows with fewer fields than columns are filled up with empty strings.
func NewTable(title string, rows [][]string) (*rowview.Table, error) {
	rows = RemoveEmptyRows(rows)
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	columns := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		columns[i] = strings.TrimSpace(col)
	}
	values := make([][]any, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("row %d has %d fields but there are only %d columns", i+1, len(row), len(columns))
		}
		values[i] = make([]any, len(columns))
		for col := range columns {
			if col < len(row) {
				values[i][col] = row[col]
			} else {
				values[i][col] = ""
			}
		}
	}
	return rowview.NewTable(title, columns, values...)
}

// RemoveEmptyRows removes rows where all fields are empty
// or contain only whitespace.
func RemoveEmptyRows(rows [][]string) [][]string {
	nonEmpty := rows[:0:0]
	for _, row := range rows {
		for _, field := range row {
			if strings.TrimSpace(field) != "" {
				nonEmpty = append(nonEmpty, row)
				break
			}
		}
	}
	return nonEmpty
}
