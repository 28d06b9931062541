package rowview

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrUnknownTensor is returned for tensor names
// that don't exist in a TensorMemory.
var ErrUnknownTensor = errors.New("unknown tensor")

// Tensor is a two dimensional float32 array
// with one row per message row, stored row major.
type Tensor struct {
	Rows int
	Cols int
	Data []float32
}

// NewTensor returns a Tensor using data,
// which must have rows*cols elements.
func NewTensor(rows, cols int, data []float32) (*Tensor, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("invalid tensor shape %dx%d", rows, cols)
	}
	if len(data) != rows*cols {
		return nil, &ShapeMismatchError{Op: "NewTensor", What: "elements", Want: rows * cols, Got: len(data)}
	}
	return &Tensor{Rows: rows, Cols: cols, Data: data}, nil
}

// ZeroTensor returns a zero filled Tensor.
func ZeroTensor(rows, cols int) *Tensor {
	return &Tensor{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// Row returns the elements of a row sharing the tensor data.
func (t *Tensor) Row(row int) []float32 {
	return t.Data[row*t.Cols : (row+1)*t.Cols]
}

func (t *Tensor) At(row, col int) float32 {
	return t.Data[row*t.Cols+col]
}

// Slice returns a Tensor of the rows [start, stop)
// sharing the data of t.
// Panics if the rows are out of bounds like slicing a Go slice.
func (t *Tensor) Slice(start, stop int) *Tensor {
	return &Tensor{
		Rows: stop - start,
		Cols: t.Cols,
		Data: t.Data[start*t.Cols : stop*t.Cols : stop*t.Cols],
	}
}

// CopyRanges returns a new Tensor with copies
// of the rows of all ranges concatenated in order.
func (t *Tensor) CopyRanges(ranges []Range) *Tensor {
	numRows := SumRanges(ranges)
	data := make([]float32, 0, numRows*t.Cols)
	for _, r := range ranges {
		data = append(data, t.Data[r.Start*t.Cols:r.Stop*t.Cols]...)
	}
	return &Tensor{Rows: numRows, Cols: t.Cols, Data: data}
}

// TensorMemory holds named tensors that all have the same number of rows.
type TensorMemory struct {
	mtx     sync.RWMutex
	numRows int
	tensors map[string]*Tensor
}

// NewTensorMemory returns a TensorMemory for numRows rows.
// The passed tensors are used without copying.
func NewTensorMemory(numRows int, tensors map[string]*Tensor) (*TensorMemory, error) {
	if numRows < 0 {
		return nil, fmt.Errorf("negative number of rows: %d", numRows)
	}
	for name, t := range tensors {
		if t.Rows != numRows {
			return nil, &ShapeMismatchError{Op: "NewTensorMemory", What: fmt.Sprintf("rows in tensor %q", name), Want: numRows, Got: t.Rows}
		}
	}
	m := &TensorMemory{numRows: numRows, tensors: make(map[string]*Tensor, len(tensors))}
	maps.Copy(m.tensors, tensors)
	return m, nil
}

func (m *TensorMemory) NumRows() int { return m.numRows }

// Names returns the sorted tensor names.
func (m *TensorMemory) Names() []string {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	return slices.Sorted(maps.Keys(m.tensors))
}

func (m *TensorMemory) Tensor(name string) (*Tensor, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	t, ok := m.tensors[name]
	return t, ok
}

// SetTensor adds or replaces the tensor with the passed name.
func (m *TensorMemory) SetTensor(name string, t *Tensor) error {
	if t == nil {
		return fmt.Errorf("SetTensor: nil tensor %q", name)
	}
	if t.Rows != m.numRows {
		return &ShapeMismatchError{Op: "SetTensor", What: fmt.Sprintf("rows in tensor %q", name), Want: m.numRows, Got: t.Rows}
	}
	m.mtx.Lock()
	m.tensors[name] = t
	m.mtx.Unlock()
	return nil
}

// writeRows copies the rows of src into
// the existing tensor name starting at row offset.
func (m *TensorMemory) writeRows(name string, offset int, src *Tensor) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	dst, ok := m.tensors[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTensor, name)
	}
	if src.Cols != dst.Cols {
		return &ShapeMismatchError{Op: "SetTensor", What: fmt.Sprintf("columns in tensor %q", name), Want: dst.Cols, Got: src.Cols}
	}
	if err := checkRowRange("SetTensor", Range{Start: offset, Stop: offset + src.Rows}, dst.Rows); err != nil {
		return err
	}
	copy(dst.Data[offset*dst.Cols:], src.Data)
	return nil
}

// CopyRanges returns a new TensorMemory with all tensors
// copied for the rows of the ranges concatenated in order.
func (m *TensorMemory) CopyRanges(ranges []Range) (*TensorMemory, error) {
	for _, r := range ranges {
		if err := checkWindowRange("CopyRanges", r, m.numRows); err != nil {
			return nil, err
		}
	}
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	copied := &TensorMemory{
		numRows: SumRanges(ranges),
		tensors: make(map[string]*Tensor, len(m.tensors)),
	}
	for name, t := range m.tensors {
		copied.tensors[name] = t.CopyRanges(ranges)
	}
	return copied, nil
}
