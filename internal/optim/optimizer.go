// Package optim implements the parameter-update rule for the digit network.
//
// The network's trainable state is a fixed, ordered list of matrices
// (W1, b1, W2, b2). An Optimizer receives that list together with the
// matching gradients and returns a brand-new list; the inputs are never
// modified, so a caller can swap the whole parameter set in one assignment.
//
// Example usage:
//
//	sgd := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//	next, err := sgd.Step(params, grads)
//	if err != nil {
//	    return err
//	}
//	params = next
package optim

import (
	"errors"

	"github.com/born-ml/digitnet/internal/matrix"
)

// ErrGradientCount is returned when params and grads have different lengths.
var ErrGradientCount = errors.New("optim: parameter and gradient counts differ")

// Optimizer is the base interface for update rules.
type Optimizer interface {
	// Step returns updated copies of params given grads, pairwise by index.
	//
	// Each grads[i] must have the same shape as params[i].
	Step(params, grads []*matrix.Matrix[float64]) ([]*matrix.Matrix[float64], error)

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}
