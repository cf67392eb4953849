package serialization

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/digitnet/internal/nn"
)

func validRecords() []TensorRecord {
	records := make([]TensorRecord, 0, 4)
	for _, name := range nn.ParameterNames() {
		s := nn.ParameterShapes[name]
		records = append(records, TensorRecord{
			Name:  name,
			Shape: []int{s.Rows, s.Cols},
			Data:  make([]float64, s.Rows*s.Cols),
		})
	}
	return records
}

// TestValidateTensors tests every rejection path.
func TestValidateTensors(t *testing.T) {
	require.NoError(t, ValidateTensors(validRecords()))

	tests := []struct {
		name    string
		mutate  func([]TensorRecord) []TensorRecord
		wantErr error
		wantTyp string
	}{
		{
			name:    "transposed shape",
			mutate:  func(r []TensorRecord) []TensorRecord { r[0].Shape = []int{784, 64}; return r },
			wantErr: ErrShapeMismatch,
			wantTyp: "shape_mismatch",
		},
		{
			name:    "rank three",
			mutate:  func(r []TensorRecord) []TensorRecord { r[3].Shape = []int{10, 1, 1}; return r },
			wantErr: ErrShapeMismatch,
			wantTyp: "shape_mismatch",
		},
		{
			name:    "short data",
			mutate:  func(r []TensorRecord) []TensorRecord { r[1].Data = r[1].Data[:10]; return r },
			wantErr: ErrDataLength,
			wantTyp: "data_length",
		},
		{
			name:    "missing",
			mutate:  func(r []TensorRecord) []TensorRecord { return r[:3] },
			wantErr: ErrMissingTensor,
			wantTyp: "missing_tensor",
		},
		{
			name:    "duplicate",
			mutate:  func(r []TensorRecord) []TensorRecord { return append(r, r[2]) },
			wantErr: ErrDuplicateTensor,
			wantTyp: "duplicate_tensor",
		},
		{
			name:    "unknown",
			mutate:  func(r []TensorRecord) []TensorRecord { r[0].Name = "Weights3"; return r },
			wantErr: ErrUnknownTensor,
			wantTyp: "unknown_tensor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTensors(tt.mutate(validRecords()))
			require.ErrorIs(t, err, tt.wantErr)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantTyp, verr.Type)
			assert.NotEmpty(t, verr.Error())
		})
	}
}
