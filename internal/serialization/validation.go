package serialization

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/nn"
)

// ValidateTensors checks that tensors holds exactly the four network
// parameters, each with its exact shape and a matching amount of data.
func ValidateTensors(tensors []TensorRecord) error {
	seen := make(map[string]bool, len(tensors))
	for _, t := range tensors {
		want, ok := nn.ParameterShapes[t.Name]
		if !ok {
			return &ValidationError{Type: "unknown_tensor", Tensor: t.Name, Details: "not a network parameter", Err: ErrUnknownTensor}
		}
		if seen[t.Name] {
			return &ValidationError{Type: "duplicate_tensor", Tensor: t.Name, Details: "appears more than once", Err: ErrDuplicateTensor}
		}
		seen[t.Name] = true

		if len(t.Shape) != 2 || t.Shape[0] != want.Rows || t.Shape[1] != want.Cols {
			return &ValidationError{
				Type:    "shape_mismatch",
				Tensor:  t.Name,
				Details: fmt.Sprintf("got %v, want [%d %d]", t.Shape, want.Rows, want.Cols),
				Err:     ErrShapeMismatch,
			}
		}
		if len(t.Data) != want.Rows*want.Cols {
			return &ValidationError{
				Type:    "data_length",
				Tensor:  t.Name,
				Details: fmt.Sprintf("got %d values, want %d", len(t.Data), want.Rows*want.Cols),
				Err:     ErrDataLength,
			}
		}
	}

	for _, name := range nn.ParameterNames() {
		if !seen[name] {
			return &ValidationError{Type: "missing_tensor", Tensor: name, Details: "not present", Err: ErrMissingTensor}
		}
	}
	return nil
}
