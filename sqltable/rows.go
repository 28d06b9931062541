// Package sqltable loads row batches from database/sql query results
// and serves message windows as tables of a read-only SQL database.
package sqltable

import (
	"context"
	"database/sql"
)

var _ Rows = &sql.Rows{}

// Rows is the subset of the methods of *sql.Rows
// needed to scan a query result into a row batch.
//
// Rows returned by the database/sql package
// and test doubles can both be used.
type Rows interface {
	// Columns returns the column names of the result set.
	Columns() ([]string, error)

	// Scan copies the column values of the current row into dest.
	// Must be called after Next returned true.
	Scan(dest ...any) error

	// Close releases the result set.
	// It can be called multiple times.
	Close() error

	// Next prepares the next row for reading with Scan
	// and returns false when there are no more rows or an error happened.
	Next() bool

	// Err returns the error that stopped the iteration, if any.
	Err() error
}

// Queryer is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
