package rowview

var (
	// DefaultProbsTensorName is the name of the probabilities tensor
	// used by NewResponseMessage when no name is passed.
	DefaultProbsTensorName = "probs"
)
