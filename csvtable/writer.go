package csvtable

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/domonda/go-types/charset"

	"github.com/domonda/go-rowview"
)

// Encoder is an interface to encode byte strings.
type Encoder interface {
	Bytes([]byte) ([]byte, error)
}

// EncoderFunc implements the Encoder interface for a function.
type EncoderFunc func([]byte) ([]byte, error)

func (f EncoderFunc) Bytes(data []byte) ([]byte, error) {
	return f(data)
}

// Writer writes a rowview.View as CSV.
// The With methods return modified copies of the Writer.
type Writer struct {
	headerRow        bool
	quoteAllFields   bool
	quoteEmptyFields bool
	nilValue         string
	delimiter        rune
	newLine          string
	encoder          Encoder
}

func NewWriter() *Writer {
	return &Writer{
		delimiter: ';',
		newLine:   "\r\n",
	}
}

// NewWriterWithFormat returns a Writer for the separator,
// newline and encoding of format.
func NewWriterWithFormat(format *Format) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	w := NewWriter().WithDelimiter(rune(format.Separator[0]))
	w.newLine = format.Newline
	return w.WithEncoding(format.Encoding)
}

func (w *Writer) clone() *Writer {
	c := new(Writer)
	*c = *w
	return c
}

func (w *Writer) WithHeaderRow(headerRow bool) *Writer {
	mod := w.clone()
	mod.headerRow = headerRow
	return mod
}

func (w *Writer) WithDelimiter(delimiter rune) *Writer {
	mod := w.clone()
	mod.delimiter = delimiter
	return mod
}

func (w *Writer) WithQuoteAllFields(quoteAllFields bool) *Writer {
	mod := w.clone()
	mod.quoteAllFields = quoteAllFields
	return mod
}

func (w *Writer) WithQuoteEmptyFields(quoteEmptyFields bool) *Writer {
	mod := w.clone()
	mod.quoteEmptyFields = quoteEmptyFields
	return mod
}

func (w *Writer) WithNilValue(nilValue string) *Writer {
	mod := w.clone()
	mod.nilValue = nilValue
	return mod
}

func (w *Writer) WithEncoder(encoder Encoder) *Writer {
	mod := w.clone()
	mod.encoder = encoder
	return mod
}

// WithEncoding returns a Writer that encodes the written
// UTF-8 rows with the named charset encoding.
func (w *Writer) WithEncoding(name string) (*Writer, error) {
	if name == "" || name == "UTF-8" {
		return w.WithEncoder(nil), nil
	}
	enc, err := charset.GetEncoding(name)
	if err != nil {
		return nil, err
	}
	return w.WithEncoder(EncoderFunc(enc.Encode)), nil
}

// WriteView writes the rows of view to dest.
func (w *Writer) WriteView(ctx context.Context, dest io.Writer, view rowview.View) error {
	rowBuf := bytes.NewBuffer(make([]byte, 0, 1024))
	if w.headerRow {
		columns := view.Columns()
		header := make([]any, len(columns))
		for i, col := range columns {
			header[i] = col
		}
		if err := w.writeRow(dest, rowBuf, header); err != nil {
			return err
		}
	}
	for row, numRows := 0, view.NumRows(); row < numRows; row++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := w.writeRow(dest, rowBuf, rowview.ViewRow(view, row)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeRow(dest io.Writer, rowBuf *bytes.Buffer, values []any) error {
	rowBuf.Reset()
	for col, val := range values {
		if col > 0 {
			rowBuf.WriteRune(w.delimiter)
		}
		rowBuf.WriteString(w.escapeString(w.cellString(val)))
	}
	rowBuf.WriteString(w.newLine)

	data := rowBuf.Bytes()
	if w.encoder != nil {
		var err error
		data, err = w.encoder.Bytes(data)
		if err != nil {
			return err
		}
	}
	_, err := dest.Write(data)
	return err
}

func (w *Writer) cellString(val any) string {
	v := reflect.ValueOf(val)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return w.nilValue
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return w.nilValue
	}
	return fmt.Sprint(v.Interface())
}

func (w *Writer) escapeString(str string) string {
	// \n alone is valid within quotes
	str = strings.ReplaceAll(str, "\r", "")
	switch {
	case w.quoteAllFields || strings.ContainsRune(str, w.delimiter) || strings.ContainsAny(str, "\"\n"):
		return `"` + EscapeQuotes(str) + `"`
	case w.quoteEmptyFields && str == "":
		return `""`
	}
	return str
}
