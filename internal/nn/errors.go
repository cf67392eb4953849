package nn

import "errors"

// Sentinel errors returned at the network's boundaries.
var (
	// ErrInputShape indicates an input vector that is not 784×1.
	ErrInputShape = errors.New("nn: input must be a 784x1 column vector")

	// ErrLabelShape indicates a target vector that is not 10×1.
	ErrLabelShape = errors.New("nn: label must be a 10x1 column vector")

	// ErrParameterShape indicates a parameter matrix with the wrong dimensions.
	ErrParameterShape = errors.New("nn: parameter shape mismatch")
)
