package rowview

var _ WindowExtendable[*ResponseMessage] = new(ResponseMessage)

// ResponseMessage is a TensorMessage holding the
// output of a model with the probabilities for every row.
type ResponseMessage struct {
	TensorMessage

	ProbsTensorName string
}

// NewResponseMessage returns a ResponseMessage.
// An empty probsTensorName is replaced by DefaultProbsTensorName.
func NewResponseMessage(msg *Message, memory *TensorMemory, tensorOffset int, probsTensorName string) (*ResponseMessage, error) {
	tm, err := NewTensorMessage(msg, memory, tensorOffset)
	if err != nil {
		return nil, err
	}
	if probsTensorName == "" {
		probsTensorName = DefaultProbsTensorName
	}
	return &ResponseMessage{TensorMessage: *tm, ProbsTensorName: probsTensorName}, nil
}

// Probs returns the probabilities tensor rows of the message.
func (m *ResponseMessage) Probs() (*Tensor, error) {
	return m.Tensor(m.ProbsTensorName)
}

// CloneEmpty implements WindowExtendable.
func (m *ResponseMessage) CloneEmpty() *ResponseMessage {
	return new(ResponseMessage)
}

// ApplyWindow implements WindowExtendable.
func (m *ResponseMessage) ApplyWindow(dst *ResponseMessage, start, stop int) error {
	err := m.TensorMessage.ApplyWindow(&dst.TensorMessage, start, stop)
	if err != nil {
		return err
	}
	dst.ProbsTensorName = m.ProbsTensorName
	return nil
}

// ApplyRanges implements WindowExtendable.
func (m *ResponseMessage) ApplyRanges(dst *ResponseMessage, ranges []Range, numSelectedRows int) error {
	err := m.TensorMessage.ApplyRanges(&dst.TensorMessage, ranges, numSelectedRows)
	if err != nil {
		return err
	}
	dst.ProbsTensorName = m.ProbsTensorName
	return nil
}
