package rowview

import "fmt"

// WindowExtendable is implemented by every message type
// that can be passed to Slice and CopyRanges.
//
// A message type that adds fields embeds its base message type
// and implements CloneEmpty, ApplyWindow and ApplyRanges for its own type.
// ApplyWindow and ApplyRanges call the method of the embedded base first
// and then set the fields added by the type itself:
//
//	type LabeledMessage struct {
//	    rowview.Message
//	    labels []string
//	}
//
//	func (m *LabeledMessage) CloneEmpty() *LabeledMessage { return new(LabeledMessage) }
//
//	func (m *LabeledMessage) ApplyWindow(dst *LabeledMessage, start, stop int) error {
//	    if err := m.Message.ApplyWindow(&dst.Message, start, stop); err != nil {
//	        return err
//	    }
//	    dst.labels = m.labels[start:stop]
//	    return nil
//	}
//
// Types that add no fields to their base don't need an own type.
type WindowExtendable[M any] interface {
	// Window returns the base Message of the row window.
	Window() *Message

	// CloneEmpty returns a new zero value of the concrete message type.
	CloneEmpty() M

	// ApplyWindow sets the fields of dst to the
	// window local rows [start, stop) of the receiver.
	// The bounds are validated before it is called.
	ApplyWindow(dst M, start, stop int) error

	// ApplyRanges sets the fields of dst to deep copies
	// of the window local ranges of the receiver.
	// The ranges and numSelectedRows are validated before it is called.
	ApplyRanges(dst M, ranges []Range, numSelectedRows int) error
}

// Slice returns a message of the same type as msg for the
// window local rows [start, stop) without copying any row data.
// It requires 0 <= start < stop <= msg.Window().Count().
func Slice[M WindowExtendable[M]](msg M, start, stop int) (M, error) {
	var zero M
	err := checkWindowRange("Slice", Range{Start: start, Stop: stop}, msg.Window().Count())
	if err != nil {
		return zero, err
	}
	sliced := msg.CloneEmpty()
	err = msg.ApplyWindow(sliced, start, stop)
	if err != nil {
		return zero, err
	}
	return sliced, nil
}

// CopyRanges returns a message of the same type as msg
// with a new batch holding copies of the rows of the window local ranges
// concatenated in order.
//
// numSelectedRows must be the sum of the lengths of all ranges,
// every range must satisfy 0 <= start < stop <= msg.Window().Count().
// The result shares no data with msg.
func CopyRanges[M WindowExtendable[M]](msg M, ranges []Range, numSelectedRows int) (M, error) {
	var zero M
	count := msg.Window().Count()
	for _, r := range ranges {
		if err := checkWindowRange("CopyRanges", r, count); err != nil {
			return zero, err
		}
	}
	if sum := SumRanges(ranges); sum != numSelectedRows {
		return zero, &RangeError{
			Op:    "CopyRanges",
			Count: count,
			Msg:   fmt.Sprintf("ranges select %d rows, not %d", sum, numSelectedRows),
		}
	}
	copied := msg.CloneEmpty()
	err := msg.ApplyRanges(copied, ranges, numSelectedRows)
	if err != nil {
		return zero, err
	}
	return copied, nil
}
