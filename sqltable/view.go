package sqltable

import (
	"context"
	"database/sql"
	"slices"

	"github.com/domonda/go-rowview"
)

// ScanRowsAsTable reads all rows into a new Table
// with the column names of the result set.
// rows will be closed.
func ScanRowsAsTable(ctx context.Context, rows Rows) (*rowview.Table, error) {
	return scanRowsAsTable(ctx, rows, "")
}

func scanRowsAsTable(ctx context.Context, rows Rows, title string) (*rowview.Table, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var values [][]any
	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scannedValues := make([]any, len(columns))
		valueScanners := make([]any, len(columns))
		for i := range valueScanners {
			valueScanners[i] = valueScanner{&scannedValues[i]}
		}
		err = rows.Scan(valueScanners...)
		if err != nil {
			return nil, err
		}
		values = append(values, scannedValues)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rowview.NewTable(title, columns, values...)
}

// QueryTable executes query with args and returns
// the result as Table with query as title.
func QueryTable(ctx context.Context, db Queryer, query string, args ...any) (*rowview.Table, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanRowsAsTable(ctx, rows, query)
}

var _ sql.Scanner = new(valueScanner)

type valueScanner struct {
	dest *any
}

// Scan implements the database/sql.Scanner interface.
func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		// Copy bytes because they won't be valid after this method call
		src = slices.Clone(b)
	}
	*s.dest = src
	return nil
}
