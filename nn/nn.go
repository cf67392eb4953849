// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"golang.org/x/exp/rand"

	"github.com/born-ml/digitnet/internal/idx"
	"github.com/born-ml/digitnet/internal/matrix"
	"github.com/born-ml/digitnet/internal/nn"
	"github.com/born-ml/digitnet/internal/parallel"
)

// Network geometry.
const (
	InputSize  = nn.InputSize
	HiddenSize = nn.HiddenSize
	OutputSize = nn.OutputSize
)

// Matrix is the dense float64 matrix all parameters and activations use.
type Matrix = matrix.Matrix[float64]

// Parameters holds the four trainable matrices.
type Parameters = nn.Parameters

// NewParameters creates parameters with weights drawn from U(-0.01, 0.01)
// using the given seed, and zero biases.
func NewParameters(seed uint64) *Parameters {
	return nn.NewParameters(rand.NewSource(seed))
}

// Network is a training session over one parameter set.
type Network = nn.Network

// Config configures a Network.
type Config = nn.Config

// DefaultConfig returns η = 0.01 with cross-entropy loss reporting.
func DefaultConfig() Config {
	return nn.DefaultConfig()
}

// NewNetwork creates a training session starting from params.
//
// Example:
//
//	net := nn.NewNetwork(nn.NewParameters(1), nn.DefaultConfig())
func NewNetwork(params *Parameters, cfg Config) *Network {
	return nn.NewNetwork(params, cfg)
}

// Activations holds the intermediate values of a forward pass.
type Activations = nn.Activations

// Forward runs the network on a 784×1 input.
func Forward(p *Parameters, x *Matrix) *Activations {
	return nn.Forward(p, x)
}

// Predict returns argmax of the output probabilities.
func Predict(p *Parameters, x *Matrix) int {
	return nn.Predict(p, x)
}

// Activations and losses

// ReLU applies max(0, x) element-wise.
func ReLU(m *Matrix) *Matrix {
	return nn.ReLU(m)
}

// ReLUDerivative returns 1 where m is positive and 0 elsewhere.
func ReLUDerivative(m *Matrix) *Matrix {
	return nn.ReLUDerivative(m)
}

// Softmax turns a logit vector into probabilities.
func Softmax(m *Matrix) *Matrix {
	return nn.Softmax(m)
}

// CrossEntropy returns -log2 of the probability assigned to digit.
func CrossEntropy(a2 *Matrix, digit int) float64 {
	return nn.CrossEntropy(a2, digit)
}

// MaxProbabilityLoss returns -log2 of the largest output probability.
func MaxProbabilityLoss(a2 *Matrix) float64 {
	return nn.MaxProbabilityLoss(a2)
}

// Gradients holds the gradient of each parameter. List returns them in
// Parameters.List order.
type Gradients = nn.Gradients

// Backward computes the gradients of one forward pass against the one-hot
// target y. Feed Gradients.List to an optimizer together with
// Parameters.List.
func Backward(p *Parameters, act *Activations, y *Matrix) *Gradients {
	return nn.Backward(p, act, y)
}

// ParametersFromList rebuilds Parameters from the W1, b1, W2, b2 list an
// optimizer returns.
func ParametersFromList(list []*Matrix) (*Parameters, error) {
	return nn.ParametersFromList(list)
}

// Loss kinds

// LossKind selects the loss reported during training.
type LossKind = nn.LossKind

// Loss kinds.
const (
	LossCrossEntropy   = nn.LossCrossEntropy
	LossMaxProbability = nn.LossMaxProbability
)

// ParseLossKind parses "cross-entropy" or "max-probability".
func ParseLossKind(s string) (LossKind, error) {
	return nn.ParseLossKind(s)
}

// Training and evaluation

// StepResult describes one training step.
type StepResult = nn.StepResult

// ProgressFunc is called after every step of a bulk run.
type ProgressFunc = nn.ProgressFunc

// TrainReport summarizes a bulk training run.
type TrainReport = nn.TrainReport

// EvalReport summarizes inference over a labelled dataset.
type EvalReport = nn.EvalReport

// Dataset is an in-memory list of labelled samples.
type Dataset = idx.Dataset

// LoadDataset reads the first k pairs of an IDX image and label file.
func LoadDataset(imagesPath, labelsPath string, k int) (*Dataset, error) {
	return idx.Load(imagesPath, labelsPath, k)
}

// LoadDir loads the first k training (train=true) or test samples from dir,
// preferring the uncompressed MNIST files over their ".gz" variants.
func LoadDir(dir string, train bool, k int) (*Dataset, error) {
	return idx.LoadDir(dir, train, k)
}

// Evaluate scores p on ds, splitting the work across CPUs.
func Evaluate(p *Parameters, ds *Dataset) EvalReport {
	return nn.Evaluate(p, ds, parallel.DefaultConfig())
}
