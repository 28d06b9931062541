package sqltable

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/domonda/go-rowview"
)

var _ driver.Stmt = new(stmt)

// stmt is a parsed SELECT query over a message window.
type stmt struct {
	msg     *rowview.Message
	columns []string // nil for all columns
	offset  int
	limit   int // -1 for no limit
}

// newStmt parses query and resolves its table and columns.
//
// Query grammar:
//
//	SELECT * | col1, col2, ... FROM table [LIMIT n] [OFFSET m] [;]
//
// Column and table names can be quoted with double quotes.
func newStmt(messages map[string]*rowview.Message, query string) (*stmt, error) {
	columns, table, offset, limit, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	msg := messages[table]
	if msg == nil {
		return nil, fmt.Errorf("table %q not found", table)
	}
	if slices.Equal(columns, []string{"*"}) {
		columns = nil
	}
	available := msg.ColumnNames()
	for _, col := range columns {
		if !slices.Contains(available, col) {
			return nil, &rowview.UnknownColumnError{Column: col, Available: available}
		}
	}
	return &stmt{msg: msg, columns: columns, offset: offset, limit: limit}, nil
}

func (s *stmt) Close() error {
	return nil
}

// NumInput returns 0 because placeholders are not supported.
func (s *stmt) NumInput() int {
	return 0
}

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	return nil, errors.New("Exec not implemented")
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	view, err := s.window()
	if err != nil {
		return nil, err
	}
	return &driverRows{view: view}, nil
}

// window reads the rows selected by OFFSET and LIMIT.
func (s *stmt) window() (rowview.View, error) {
	count := s.msg.Count()
	stop := count
	if s.limit >= 0 {
		stop = min(s.offset+s.limit, count)
	}
	if s.offset >= stop {
		view, err := s.msg.Read(s.columns...)
		if err != nil {
			return nil, err
		}
		return &rowview.WindowView{Source: view}, nil
	}
	if s.offset == 0 && stop == count {
		return s.msg.Read(s.columns...)
	}
	sliced, err := rowview.Slice(s.msg, s.offset, stop)
	if err != nil {
		return nil, err
	}
	return sliced.Read(s.columns...)
}

var _ driver.Rows = new(driverRows)

type driverRows struct {
	view     rowview.View
	rowIndex int
}

func (r *driverRows) Columns() []string {
	return r.view.Columns()
}

func (r *driverRows) Close() error {
	r.rowIndex = -1
	return nil
}

func (r *driverRows) Next(dest []driver.Value) (err error) {
	if r.rowIndex < 0 || r.rowIndex >= r.view.NumRows() {
		return io.EOF
	}
	for col := range dest {
		dest[col], err = driver.DefaultParameterConverter.ConvertValue(r.view.Cell(r.rowIndex, col))
		if err != nil {
			return fmt.Errorf("column %d: %w", col, err)
		}
	}
	r.rowIndex++
	return nil
}

var queryRegexp = regexp.MustCompile(`^(?i:SELECT)\s+(\*|(?:[a-zA-Z]\w*|"[^",]+")(?:\s*,\s*(?:[a-zA-Z]\w*|"[^",]+"))*)\s+(?i:FROM)\s+([a-zA-Z][\w.]*|"[^"]+")(?:\s+(?i:LIMIT)\s+(\d+))?(?:\s+(?i:OFFSET)\s+(\d+))?(?:\s*;)*$`)

// parseQuery returns limit -1 if the query has no LIMIT clause.
func parseQuery(query string) (columns []string, table string, offset, limit int, err error) {
	query = strings.TrimSpace(query)
	m := queryRegexp.FindStringSubmatch(query)
	if len(m) != 5 {
		return nil, "", 0, 0, fmt.Errorf("invalid query %q", query)
	}
	columns = strings.Split(m[1], ",")
	for i := range columns {
		columns[i] = unquote(strings.TrimSpace(columns[i]))
	}
	table = unquote(m[2])
	limit = -1
	if m[3] != "" {
		limit, err = strconv.Atoi(m[3])
		if err != nil {
			return nil, "", 0, 0, fmt.Errorf("invalid LIMIT in query %q: %w", query, err)
		}
	}
	if m[4] != "" {
		offset, err = strconv.Atoi(m[4])
		if err != nil {
			return nil, "", 0, 0, fmt.Errorf("invalid OFFSET in query %q: %w", query, err)
		}
	}
	return columns, table, offset, limit, nil
}

func unquote(str string) string {
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}
	return str
}
