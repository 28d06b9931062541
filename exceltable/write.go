package exceltable

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/domonda/go-rowview"
)

// WriteView writes the columns and rows of view
// as the only sheet of a new workbook to dest.
// The view title is used as sheet name if it is not empty.
func WriteView(ctx context.Context, dest io.Writer, view rowview.View) (err error) {
	f := excelize.NewFile()
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	sheet := f.GetSheetName(0)
	if name := SheetName(view.Title()); name != "" && name != sheet {
		if err = f.SetSheetName(sheet, name); err != nil {
			return err
		}
		sheet = name
	}

	columns := view.Columns()
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err = f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for row := 0; row < view.NumRows(); row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		cell, err := excelize.CoordinatesToCellName(1, row+2)
		if err != nil {
			return err
		}
		values := rowview.ViewRow(view, row)
		if err = f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return f.Write(dest)
}

// SheetName returns title with the characters
// Excel does not allow in sheet names replaced by '_'
// and truncated to 31 characters.
func SheetName(title string) string {
	name := strings.Map(
		func(r rune) rune {
			if strings.ContainsRune(`:\/?*[]`, r) {
				return '_'
			}
			return r
		},
		strings.TrimSpace(title),
	)
	name = strings.Trim(name, "'")
	for utf8.RuneCountInString(name) > 31 {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	return name
}
