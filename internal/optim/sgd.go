package optim

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/matrix"
)

// DefaultLR is the fixed learning rate η of the digit network.
const DefaultLR = 0.01

// SGD implements plain gradient descent with a fixed learning rate.
//
// Update rule:
//
//	param = param - lr * gradient
//
// There is no momentum, decay or schedule.
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = DefaultLR
	}
	return &SGD{lr: config.LR}
}

// Step returns param - lr*grad for every pair, as fresh matrices.
func (s *SGD) Step(params, grads []*matrix.Matrix[float64]) ([]*matrix.Matrix[float64], error) {
	if len(params) != len(grads) {
		return nil, fmt.Errorf("%d params vs %d grads: %w", len(params), len(grads), ErrGradientCount)
	}

	next := make([]*matrix.Matrix[float64], len(params))
	for i, param := range params {
		updated, err := matrix.Sub(param, matrix.Scale(grads[i], s.lr))
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		next[i] = updated
	}
	return next, nil
}

// GetLR returns the learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}
