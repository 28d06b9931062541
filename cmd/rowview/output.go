package main

import (
	"context"
	"fmt"
	"io"

	"github.com/domonda/go-rowview"
	"github.com/domonda/go-rowview/csvtable"
	"github.com/domonda/go-rowview/exceltable"
	"github.com/domonda/go-rowview/htmltable"
)

func writeView(ctx context.Context, dest io.Writer, format string, view rowview.View) error {
	switch format {
	case "csv":
		return csvtable.NewWriter().WithHeaderRow(true).WriteView(ctx, dest, view)
	case "html":
		return htmltable.NewWriter().WithHeaderRow(true).WriteView(ctx, dest, view)
	case "xlsx":
		return exceltable.WriteView(ctx, dest, view)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// writeMessage writes all columns of the rows of msg.
func writeMessage(ctx context.Context, dest io.Writer, format string, msg *rowview.Message) error {
	view, err := msg.Read()
	if err != nil {
		return err
	}
	title := fmt.Sprintf("rows %s of %s", rowview.Range{Start: msg.Offset(), Stop: msg.Offset() + msg.Count()}, view.Title())
	return writeView(ctx, dest, format, rowview.ViewWithTitle(view, title))
}
