package nn

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Activations holds the intermediate values of one forward pass.
//
// They are exactly what the backward pass needs:
//
//	Z1 = W1·x + b1      (64×1)
//	A1 = ReLU(Z1)       (64×1)
//	Z2 = W2·A1 + b2     (10×1)
//	A2 = Softmax(Z2)    (10×1)
type Activations struct {
	Input *matrix.Matrix[float64]
	Z1    *matrix.Matrix[float64]
	A1    *matrix.Matrix[float64]
	Z2    *matrix.Matrix[float64]
	A2    *matrix.Matrix[float64]
}

// Prediction returns argmax(A2), lowest index on ties.
func (a *Activations) Prediction() int {
	digit, err := matrix.ArgMax(a.A2)
	if err != nil {
		panic("nn: prediction: " + err.Error())
	}
	return digit
}

// CheckInput reports whether x is a 784×1 column vector.
func CheckInput(x *matrix.Matrix[float64]) error {
	if x == nil || x.Rows() != InputSize || x.Cols() != 1 {
		shape := "nil"
		if x != nil {
			shape = x.Shape()
		}
		return fmt.Errorf("got %s: %w", shape, ErrInputShape)
	}
	return nil
}

// CheckLabel reports whether y is a 10×1 column vector.
func CheckLabel(y *matrix.Matrix[float64]) error {
	if y == nil || y.Rows() != OutputSize || y.Cols() != 1 {
		shape := "nil"
		if y != nil {
			shape = y.Shape()
		}
		return fmt.Errorf("got %s: %w", shape, ErrLabelShape)
	}
	return nil
}

// Forward runs the network on x without touching p.
//
// x must be 784×1; any other shape panics. Use CheckInput at API boundaries.
func Forward(p *Parameters, x *matrix.Matrix[float64]) *Activations {
	z1 := must(matrix.Add(must(matrix.Multiply(p.W1, x)), p.B1))
	a1 := ReLU(z1)
	z2 := must(matrix.Add(must(matrix.Multiply(p.W2, a1)), p.B2))

	return &Activations{
		Input: x,
		Z1:    z1,
		A1:    a1,
		Z2:    z2,
		A2:    Softmax(z2),
	}
}

// Predict returns the digit the network assigns to x.
func Predict(p *Parameters, x *matrix.Matrix[float64]) int {
	return Forward(p, x).Prediction()
}
