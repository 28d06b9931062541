package rowview

import (
	"errors"
	"fmt"
)

var _ WindowExtendable[*Message] = new(Message)

// Message is a window of rows into a RowBatch
// that may be shared by many messages.
//
// Writes through a Message mutate the shared batch,
// so every other message with an overlapping window observes them.
// Callers have to serialize writes to a batch themselves,
// or use CopyRanges to get a message with an independent batch.
type Message struct {
	batch  RowBatch
	offset int
	count  int
}

// NewMessage returns a Message of all rows of batch starting at offset.
func NewMessage(batch RowBatch, offset int) (*Message, error) {
	if batch == nil {
		return nil, errors.New("NewMessage: nil RowBatch")
	}
	return NewMessageWindow(batch, offset, batch.NumRows()-offset)
}

// NewMessageWindow returns a Message of count rows of batch starting at offset.
func NewMessageWindow(batch RowBatch, offset, count int) (*Message, error) {
	if batch == nil {
		return nil, errors.New("NewMessageWindow: nil RowBatch")
	}
	if offset < 0 || count < 0 || count > batch.NumRows()-offset {
		return nil, &RangeError{Op: "NewMessageWindow", Start: offset, Stop: offset + count, Count: batch.NumRows()}
	}
	return &Message{batch: batch, offset: offset, count: count}, nil
}

// Batch returns the RowBatch the message is a window into.
func (m *Message) Batch() RowBatch { return m.batch }

// Offset returns the absolute index of the first message row in the batch.
func (m *Message) Offset() int { return m.offset }

// Count returns the number of rows of the message.
func (m *Message) Count() int { return m.count }

// Window returns m, it gives message types
// embedding a Message access to their base window.
func (m *Message) Window() *Message { return m }

func (m *Message) rows() Range {
	return Range{Start: m.offset, Stop: m.offset + m.count}
}

// ColumnNames returns the column names of the batch.
func (m *Message) ColumnNames() []string {
	return m.batch.Columns()
}

// Read returns a View of the message rows restricted to the named columns.
// Passing no columns returns all columns in batch order.
func (m *Message) Read(columns ...string) (View, error) {
	return m.batch.ReadRows(m.rows(), columns)
}

// ReadColumn returns a copy of the values of a column for the message rows.
func (m *Message) ReadColumn(column string) (Column, error) {
	view, err := m.batch.ReadRows(m.rows(), []string{column})
	if err != nil {
		return nil, err
	}
	return ViewColumn(view, 0), nil
}

// Write writes values to the message rows of an existing column.
func (m *Message) Write(column string, values Column) error {
	return m.WriteColumns([]string{column}, []Column{values})
}

// WriteColumns writes values[i] to the message rows of columns[i].
// No columns means all columns in batch order.
func (m *Message) WriteColumns(columns []string, values []Column) error {
	if len(columns) > 0 && len(columns) != len(values) {
		return &ShapeMismatchError{Op: "WriteColumns", What: "column values", Want: len(columns), Got: len(values)}
	}
	return m.batch.WriteRows(m.rows(), columns, values)
}

// CloneEmpty implements WindowExtendable.
func (m *Message) CloneEmpty() *Message {
	return new(Message)
}

// ApplyWindow implements WindowExtendable.
func (m *Message) ApplyWindow(dst *Message, start, stop int) error {
	dst.batch = m.batch
	dst.offset = m.offset + start
	dst.count = stop - start
	return nil
}

// ApplyRanges implements WindowExtendable.
func (m *Message) ApplyRanges(dst *Message, ranges []Range, numSelectedRows int) error {
	if m.batch == nil {
		return errors.New("CopyRanges: Message without RowBatch")
	}
	batch, err := m.batch.CopyRanges(Translate(m.offset, ranges))
	if err != nil {
		return err
	}
	if batch.NumRows() != numSelectedRows {
		return &RangeError{
			Op:    "CopyRanges",
			Count: m.count,
			Msg:   fmt.Sprintf("copied %d rows but %d were selected", batch.NumRows(), numSelectedRows),
		}
	}
	dst.batch = batch
	dst.offset = 0
	dst.count = numSelectedRows
	return nil
}

func (m *Message) String() string {
	return fmt.Sprintf("Message(offset: %d, count: %d)", m.offset, m.count)
}
