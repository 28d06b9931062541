package rowview

import "fmt"

// Range is the half-open row index range [Start, Stop).
type Range struct {
	Start int
	Stop  int
}

// Len returns the number of rows in the range.
func (r Range) Len() int { return r.Stop - r.Start }

// Offset returns the range shifted by offset rows.
func (r Range) Offset(offset int) Range {
	return Range{Start: r.Start + offset, Stop: r.Stop + offset}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.Stop)
}

// SumRanges returns the total number of rows of all ranges.
func SumRanges(ranges []Range) int {
	sum := 0
	for _, r := range ranges {
		sum += r.Len()
	}
	return sum
}

// Translate returns a new slice with all ranges shifted by offset,
// used to convert window local row indices into batch absolute ones.
func Translate(offset int, ranges []Range) []Range {
	translated := make([]Range, len(ranges))
	for i, r := range ranges {
		translated[i] = r.Offset(offset)
	}
	return translated
}

// checkWindowRange returns a RangeError unless 0 <= r.Start < r.Stop <= count.
func checkWindowRange(op string, r Range, count int) error {
	if r.Start < 0 || r.Start >= r.Stop || r.Stop > count {
		return &RangeError{Op: op, Start: r.Start, Stop: r.Stop, Count: count}
	}
	return nil
}

// checkRowRange is like checkWindowRange but allows empty ranges.
func checkRowRange(op string, r Range, count int) error {
	if r.Start < 0 || r.Start > r.Stop || r.Stop > count {
		return &RangeError{Op: op, Start: r.Start, Stop: r.Stop, Count: count}
	}
	return nil
}
