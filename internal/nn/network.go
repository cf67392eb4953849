package nn

import (
	"fmt"

	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/optim"
)

// Config configures a Network.
type Config struct {
	LearningRate float64  // SGD step size (default: 0.01)
	Loss         LossKind // Reported loss (default: cross-entropy)
}

// DefaultConfig returns the fixed training setup: η = 0.01, cross-entropy.
func DefaultConfig() Config {
	return Config{
		LearningRate: optim.DefaultLR,
		Loss:         LossCrossEntropy,
	}
}

// Network is a single training session over one parameter set.
//
// Network is not safe for concurrent use. Inference on a snapshot taken with
// Parameters may run concurrently with training, because training replaces
// the parameter set instead of writing into it.
type Network struct {
	params   *Parameters
	opt      optim.Optimizer
	loss     LossKind
	lastLoss float64
	steps    int
}

// NewNetwork creates a session starting from params.
//
// Panics if params has the wrong shapes.
func NewNetwork(params *Parameters, cfg Config) *Network {
	if err := params.Validate(); err != nil {
		panic(err)
	}
	return &Network{
		params: params,
		opt:    optim.NewSGD(optim.SGDConfig{LR: cfg.LearningRate}),
		loss:   cfg.Loss,
	}
}

// Parameters returns the current parameter set. The returned value is never
// modified by later training steps.
func (n *Network) Parameters() *Parameters {
	return n.params
}

// SetParameters replaces the whole parameter set after validating it.
func (n *Network) SetParameters(p *Parameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	n.params = p
	return nil
}

// LearningRate returns η.
func (n *Network) LearningRate() float64 {
	return n.opt.GetLR()
}

// LossKind returns the reported loss formula.
func (n *Network) LossKind() LossKind {
	return n.loss
}

// LastLoss returns the loss recorded by the most recent training step.
func (n *Network) LastLoss() float64 {
	return n.lastLoss
}

// Steps returns the number of training steps taken.
func (n *Network) Steps() int {
	return n.steps
}

// SetSteps sets the step counter, for resuming a saved training session.
func (n *Network) SetSteps(steps int) {
	n.steps = max(steps, 0)
}

// Forward runs inference with the current parameters.
func (n *Network) Forward(x *matrix.Matrix[float64]) *Activations {
	return Forward(n.params, x)
}

// Predict returns the digit for x with the current parameters.
func (n *Network) Predict(x *matrix.Matrix[float64]) int {
	return Predict(n.params, x)
}

// StepResult describes one training step.
type StepResult struct {
	Loss       float64 // Loss of the pre-update forward pass
	Prediction int     // Pre-update prediction
	Correct    bool    // Prediction matched the label
}

// TrainStep runs forward, backward and one SGD update on (x, y).
//
// The parameter set is replaced as a whole after the update; nothing
// observable through an earlier Parameters snapshot changes.
func (n *Network) TrainStep(x, y *matrix.Matrix[float64]) (StepResult, error) {
	if err := CheckInput(x); err != nil {
		return StepResult{}, err
	}
	if err := CheckLabel(y); err != nil {
		return StepResult{}, err
	}
	digit, err := matrix.ArgMax(y)
	if err != nil {
		return StepResult{}, fmt.Errorf("label: %w", err)
	}

	act := Forward(n.params, x)
	grads := Backward(n.params, act, y)

	updated, err := n.opt.Step(n.params.List(), grads.List())
	if err != nil {
		panic("nn: sgd: " + err.Error())
	}
	next, err := ParametersFromList(updated)
	if err != nil {
		panic("nn: sgd: " + err.Error())
	}

	n.params = next
	n.steps++
	n.lastLoss = n.loss.Compute(act.A2, digit)

	prediction := act.Prediction()
	return StepResult{
		Loss:       n.lastLoss,
		Prediction: prediction,
		Correct:    prediction == digit,
	}, nil
}
