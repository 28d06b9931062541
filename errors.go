package rowview

import (
	"fmt"
	"strings"
)

// RangeError is returned when the row bounds passed to
// a window operation are outside of the window or empty,
// or when a caller supplied row total does not match the ranges.
type RangeError struct {
	Op    string
	Start int
	Stop  int
	// Count is the number of rows of the window the bounds were checked against
	Count int
	// Msg replaces the default bounds description if not empty
	Msg string
}

func (e *RangeError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: row range [%d,%d) out of bounds for %d rows", e.Op, e.Start, e.Stop, e.Count)
}

// UnknownColumnError is returned when a requested
// column name does not exist in a RowBatch.
type UnknownColumnError struct {
	Column    string
	Available []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q, available columns: [%s]", e.Column, strings.Join(e.Available, ", "))
}

// ShapeMismatchError is returned when the number of supplied
// values does not match the number of columns or rows they are written to.
type ShapeMismatchError struct {
	Op   string
	What string
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: got %d %s, want %d", e.Op, e.Got, e.What, e.Want)
}
