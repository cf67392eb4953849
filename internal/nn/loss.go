package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/digitnet/internal/matrix"
)

// LossKind selects the per-step loss reported during training.
//
// The loss is reported only; gradients are always those of softmax with
// cross-entropy (d2 = A2 - y) regardless of the kind.
type LossKind int

const (
	// LossCrossEntropy is -log2(A2[label]).
	LossCrossEntropy LossKind = iota

	// LossMaxProbability is -log2(max(A2)). It ignores the label and only
	// measures the network's confidence in its own guess.
	LossMaxProbability
)

// String returns the flag name of the loss kind.
func (k LossKind) String() string {
	switch k {
	case LossCrossEntropy:
		return "cross-entropy"
	case LossMaxProbability:
		return "max-probability"
	default:
		return fmt.Sprintf("LossKind(%d)", int(k))
	}
}

// ParseLossKind parses the names produced by LossKind.String.
func ParseLossKind(s string) (LossKind, error) {
	switch s {
	case "cross-entropy", "":
		return LossCrossEntropy, nil
	case "max-probability":
		return LossMaxProbability, nil
	default:
		return 0, fmt.Errorf("nn: unknown loss %q", s)
	}
}

// Compute evaluates the loss of probabilities a2 against the true digit.
func (k LossKind) Compute(a2 *matrix.Matrix[float64], digit int) float64 {
	if k == LossMaxProbability {
		return MaxProbabilityLoss(a2)
	}
	return CrossEntropy(a2, digit)
}

// CrossEntropy returns -log2(a2[digit]) for a 10×1 probability vector.
func CrossEntropy(a2 *matrix.Matrix[float64], digit int) float64 {
	return negLog2(a2.At(digit, 0))
}

// MaxProbabilityLoss returns -log2(max(a2)).
func MaxProbabilityLoss(a2 *matrix.Matrix[float64]) float64 {
	peak, err := matrix.Max(a2)
	if err != nil {
		panic("nn: loss: " + err.Error())
	}
	return negLog2(peak)
}

// negLog2 keeps the loss finite when a probability underflows to zero.
func negLog2(p float64) float64 {
	return -math.Log2(math.Max(p, math.SmallestNonzeroFloat64))
}
