package htmltable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
)

// CellFormatter formats a cell value as HTML.
// Implementations must escape the value themselves.
type CellFormatter interface {
	FormatCell(ctx context.Context, value any) (template.HTML, error)
}

// CellFormatterFunc implements CellFormatter with a function.
type CellFormatterFunc func(ctx context.Context, value any) (template.HTML, error)

func (f CellFormatterFunc) FormatCell(ctx context.Context, value any) (template.HTML, error) {
	return f(ctx, value)
}

var (
	_ CellFormatter = PreCellFormatter
	_ CellFormatter = JSONCellFormatter("")
	_ CellFormatter = SpanClassCellFormatter("")
	_ CellFormatter = Raw("")
)

var (
	PreCellFormatter CellFormatterFunc = func(ctx context.Context, value any) (template.HTML, error) {
		return template.HTML("<pre>" + template.HTMLEscapeString(fmt.Sprint(value)) + "</pre>"), nil //#nosec G203
	}

	CodeCellFormatter CellFormatterFunc = func(ctx context.Context, value any) (template.HTML, error) {
		return template.HTML("<code>" + template.HTMLEscapeString(fmt.Sprint(value)) + "</code>"), nil //#nosec G203
	}
)

// JSONCellFormatter formats string and []byte values
// as JSON within a pre element, compacted if the indent is empty.
// Empty values result in an empty cell.
type JSONCellFormatter string

func (indent JSONCellFormatter) FormatCell(ctx context.Context, value any) (template.HTML, error) {
	var src []byte
	switch v := value.(type) {
	case nil:
		return "", nil
	case []byte:
		src = v
	case json.RawMessage:
		src = v
	case string:
		src = []byte(v)
	default:
		return "", fmt.Errorf("can't format %T as JSON cell", value)
	}
	if len(src) == 0 {
		return "", nil
	}
	var (
		buf bytes.Buffer
		err error
	)
	if indent == "" {
		err = json.Compact(&buf, src)
	} else {
		err = json.Indent(&buf, src, "", string(indent))
	}
	if err != nil {
		return "", err
	}
	return template.HTML("<pre>" + template.HTMLEscapeString(buf.String()) + "</pre>"), nil //#nosec G203
}

// SpanClassCellFormatter formats the cell value within
// a span element with the class of the underlying string value.
type SpanClassCellFormatter string

func (class SpanClassCellFormatter) FormatCell(ctx context.Context, value any) (template.HTML, error) {
	text := template.HTMLEscapeString(fmt.Sprint(value))
	return template.HTML(fmt.Sprintf("<span class='%s'>%s</span>", template.HTMLEscapeString(string(class)), text)), nil //#nosec G203
}

// Raw is a CellFormatter that ignores the cell value
// and always returns the same HTML.
type Raw template.HTML

func (r Raw) FormatCell(context.Context, any) (template.HTML, error) {
	return template.HTML(r), nil
}
