// Package htmltable renders row windows as HTML tables
// for debugging and reports.
//
// All cell values are HTML escaped unless a CellFormatter
// is configured for their column.
package htmltable

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"maps"
	"reflect"

	"github.com/domonda/go-rowview"
)

// Writer writes views as HTML tables.
// The With methods return modified copies of the Writer.
type Writer struct {
	tableClass       string
	columnFormatters map[string]CellFormatter
	nilValue         template.HTML
	headerRow        bool
	headerTemplate   *template.Template
	rowTemplate      *template.Template
	footerTemplate   *template.Template
}

func NewWriter() *Writer {
	return &Writer{
		columnFormatters: make(map[string]CellFormatter),
		headerTemplate:   HeaderTemplate,
		rowTemplate:      RowTemplate,
		footerTemplate:   FooterTemplate,
	}
}

// WriteView writes view as HTML table to dest
// using the view title as caption.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view rowview.View) error {
	tableCtx := TemplateContext{
		TableClass: w.tableClass,
		Caption:    view.Title(),
	}
	err := w.headerTemplate.Execute(dest, &tableCtx)
	if err != nil {
		return err
	}

	columns := view.Columns()
	rowCtx := RowTemplateContext{
		TemplateContext: tableCtx,
		Cells:           make([]template.HTML, len(columns)),
	}
	if w.headerRow {
		rowCtx.IsHeaderRow = true
		rowCtx.RowIndex = -1
		for i, col := range columns {
			rowCtx.Cells[i] = template.HTML(template.HTMLEscapeString(col)) //#nosec G203
		}
		err = w.rowTemplate.Execute(dest, &rowCtx)
		if err != nil {
			return err
		}
		rowCtx.IsHeaderRow = false
	}

	for row := 0; row < view.NumRows(); row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rowCtx.RowIndex = row
		for col, name := range columns {
			rowCtx.Cells[col], err = w.formatCell(ctx, name, view.Cell(row, col))
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", row, name, err)
			}
		}
		err = w.rowTemplate.Execute(dest, &rowCtx)
		if err != nil {
			return err
		}
	}

	return w.footerTemplate.Execute(dest, &tableCtx)
}

func (w *Writer) formatCell(ctx context.Context, column string, value any) (template.HTML, error) {
	if isNil(value) {
		return w.nilValue, nil
	}
	if formatter, ok := w.columnFormatters[column]; ok {
		return formatter.FormatCell(ctx, value)
	}
	if v := reflect.ValueOf(value); v.Kind() == reflect.Pointer {
		value = v.Elem().Interface()
	}
	return template.HTML(template.HTMLEscapeString(fmt.Sprint(value))), nil //#nosec G203
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func (w *Writer) clone() *Writer {
	c := *w
	c.columnFormatters = maps.Clone(w.columnFormatters)
	return &c
}

func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithTableClass(tableClass string) *Writer {
	mod := w.clone()
	mod.tableClass = tableClass
	return mod
}

// WithColumnFormatter returns a Writer that formats
// the cells of the named column with formatter.
func (w *Writer) WithColumnFormatter(column string, formatter CellFormatter) *Writer {
	mod := w.clone()
	mod.columnFormatters[column] = formatter
	return mod
}

func (w *Writer) WithNilValue(nilValue template.HTML) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

// WithTemplate returns a Writer using custom templates.
// tableTemplate and footerTemplate are executed with a *TemplateContext,
// rowTemplate with a *RowTemplateContext.
func (w *Writer) WithTemplate(tableTemplate, rowTemplate, footerTemplate *template.Template) *Writer {
	mod := w.clone()
	mod.headerTemplate = tableTemplate
	mod.rowTemplate = rowTemplate
	mod.footerTemplate = footerTemplate
	return mod
}

func (w *Writer) TableClass() string { return w.tableClass }

func (w *Writer) NilValue() template.HTML { return w.nilValue }
