package nn

import (
	"math"

	"github.com/born-ml/digitnet/internal/matrix"
)

// ReLU applies the element-wise function f(x) = max(0, x).
func ReLU(m *matrix.Matrix[float64]) *matrix.Matrix[float64] {
	return matrix.Apply(m, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// ReLUDerivative returns 1 where m is strictly positive and 0 elsewhere.
func ReLUDerivative(m *matrix.Matrix[float64]) *matrix.Matrix[float64] {
	return matrix.Apply(m, func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
}

// Softmax normalizes every entry of m into a probability distribution.
//
// The maximum is subtracted before exponentiation:
//
//	softmax(x)_i = exp(x_i - max(x)) / Σ_j exp(x_j - max(x))
//
// so large logits do not overflow and adding a constant to every input
// leaves the output unchanged. Panics on an empty matrix.
func Softmax(m *matrix.Matrix[float64]) *matrix.Matrix[float64] {
	peak, err := matrix.Max(m)
	if err != nil {
		panic("nn: softmax: " + err.Error())
	}

	exps := matrix.Apply(m, func(v float64) float64 {
		return math.Exp(v - peak)
	})

	var sum float64
	for _, v := range exps.Data() {
		sum += v
	}
	return matrix.Scale(exps, 1/sum)
}
