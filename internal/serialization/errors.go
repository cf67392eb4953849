package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrShapeMismatch      = errors.New("tensor shape mismatch")
	ErrMissingTensor      = errors.New("missing tensor")
	ErrUnknownTensor      = errors.New("unknown tensor")
	ErrDuplicateTensor    = errors.New("duplicate tensor")
	ErrDataLength         = errors.New("tensor data length does not match shape")
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "shape_mismatch", "missing_tensor")
	Tensor  string // Tensor name involved
	Details string // Additional details
	Err     error  // Sentinel the failure matches with errors.Is
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tensor != "" {
		return fmt.Sprintf("%s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap returns the matching sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
