package matrix

import "errors"

// Common errors.
var (
	ErrDimensionMismatch  = errors.New("matrix: dimension mismatch")
	ErrInvalidDimensions  = errors.New("matrix: dimensions must be >= 0")
	ErrRagged             = errors.New("matrix: rows have different lengths")
	ErrEmpty              = errors.New("matrix: empty matrix")
	ErrDataLengthMismatch = errors.New("matrix: data length does not match dimensions")
)
