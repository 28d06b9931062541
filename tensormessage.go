package rowview

import (
	"errors"
	"fmt"
)

var _ WindowExtendable[*TensorMessage] = new(TensorMessage)

// TensorMessage is a Message with per row tensors.
// Tensor row i belongs to message row i.
type TensorMessage struct {
	Message

	memory       *TensorMemory
	tensorOffset int
}

// NewTensorMessage returns a TensorMessage for msg using the
// memory rows starting at tensorOffset for the message rows.
func NewTensorMessage(msg *Message, memory *TensorMemory, tensorOffset int) (*TensorMessage, error) {
	if msg == nil || memory == nil {
		return nil, errors.New("NewTensorMessage: nil Message or TensorMemory")
	}
	if tensorOffset < 0 || tensorOffset+msg.Count() > memory.NumRows() {
		return nil, &RangeError{
			Op:    "NewTensorMessage",
			Start: tensorOffset,
			Stop:  tensorOffset + msg.Count(),
			Count: memory.NumRows(),
		}
	}
	return &TensorMessage{
		Message:      *msg,
		memory:       memory,
		tensorOffset: tensorOffset,
	}, nil
}

// Memory returns the TensorMemory that may be shared with other messages.
func (m *TensorMessage) Memory() *TensorMemory { return m.memory }

// TensorOffset returns the memory row of the first message row.
func (m *TensorMessage) TensorOffset() int { return m.tensorOffset }

func (m *TensorMessage) TensorNames() []string { return m.memory.Names() }

// Tensor returns the rows of the named tensor
// belonging to the message without copying them.
func (m *TensorMessage) Tensor(name string) (*Tensor, error) {
	t, ok := m.memory.Tensor(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTensor, name)
	}
	return t.Slice(m.tensorOffset, m.tensorOffset+m.count), nil
}

// SetTensor writes the rows of t to the message rows of the named tensor.
// A tensor that does not exist yet can only be added
// if the message spans all rows of its memory.
func (m *TensorMessage) SetTensor(name string, t *Tensor) error {
	if t == nil {
		return fmt.Errorf("SetTensor: nil tensor %q", name)
	}
	if t.Rows != m.count {
		return &ShapeMismatchError{Op: "SetTensor", What: fmt.Sprintf("rows in tensor %q", name), Want: m.count, Got: t.Rows}
	}
	if _, ok := m.memory.Tensor(name); !ok {
		if m.tensorOffset != 0 || m.count != m.memory.NumRows() {
			return fmt.Errorf("can't add tensor %q to a message that doesn't span all %d memory rows", name, m.memory.NumRows())
		}
		return m.memory.SetTensor(name, t)
	}
	return m.memory.writeRows(name, m.tensorOffset, t)
}

// CloneEmpty implements WindowExtendable.
func (m *TensorMessage) CloneEmpty() *TensorMessage {
	return new(TensorMessage)
}

// ApplyWindow implements WindowExtendable.
func (m *TensorMessage) ApplyWindow(dst *TensorMessage, start, stop int) error {
	err := m.Message.ApplyWindow(&dst.Message, start, stop)
	if err != nil {
		return err
	}
	dst.memory = m.memory
	dst.tensorOffset = m.tensorOffset + start
	return nil
}

// ApplyRanges implements WindowExtendable.
func (m *TensorMessage) ApplyRanges(dst *TensorMessage, ranges []Range, numSelectedRows int) error {
	err := m.Message.ApplyRanges(&dst.Message, ranges, numSelectedRows)
	if err != nil {
		return err
	}
	dst.memory, err = m.memory.CopyRanges(Translate(m.tensorOffset, ranges))
	if err != nil {
		return err
	}
	dst.tensorOffset = 0
	return nil
}
