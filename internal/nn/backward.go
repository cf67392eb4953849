package nn

import (
	"github.com/born-ml/digitnet/internal/matrix"
)

// Gradients holds the loss gradient for each parameter, shaped like it.
type Gradients struct {
	W1 *matrix.Matrix[float64]
	B1 *matrix.Matrix[float64]
	W2 *matrix.Matrix[float64]
	B2 *matrix.Matrix[float64]
}

// List returns the gradients in Parameters.List order.
func (g *Gradients) List() []*matrix.Matrix[float64] {
	return []*matrix.Matrix[float64]{g.W1, g.B1, g.W2, g.B2}
}

// Backward computes the closed-form gradients of softmax cross-entropy for
// the two-layer network, given the activations of a forward pass through p
// and the one-hot target y:
//
//	d2  = A2 - y
//	∇W2 = d2 · A1ᵀ
//	∇b2 = d2
//	d1  = (W2ᵀ · d2) ⊙ ReLU'(Z1)
//	∇W1 = d1 · xᵀ
//	∇b1 = d1
func Backward(p *Parameters, act *Activations, y *matrix.Matrix[float64]) *Gradients {
	d2 := must(matrix.Sub(act.A2, y))
	gradW2 := must(matrix.Multiply(d2, matrix.Transpose(act.A1)))

	back := must(matrix.Multiply(matrix.Transpose(p.W2), d2))
	d1 := must(matrix.ElementwiseMultiply(back, ReLUDerivative(act.Z1)))
	gradW1 := must(matrix.Multiply(d1, matrix.Transpose(act.Input)))

	return &Gradients{
		W1: gradW1,
		B1: d1,
		W2: gradW2,
		B2: d2,
	}
}
