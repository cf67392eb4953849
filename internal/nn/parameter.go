package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/born-ml/digitnet/internal/matrix"
)

// Network geometry. The architecture is fixed.
const (
	InputSize  = 784
	HiddenSize = 64
	OutputSize = 10
)

// Parameter names, in List order.
const (
	NameWeights1 = "Weights1"
	NameBiases1  = "Biases1"
	NameWeights2 = "Weights2"
	NameBiases2  = "Biases2"
)

// Shape is a (rows, cols) pair.
type Shape struct {
	Rows, Cols int
}

// ParameterShapes lists the exact shape of every parameter by name.
var ParameterShapes = map[string]Shape{
	NameWeights1: {HiddenSize, InputSize},
	NameBiases1:  {HiddenSize, 1},
	NameWeights2: {OutputSize, HiddenSize},
	NameBiases2:  {OutputSize, 1},
}

// ParameterNames returns the parameter names in List order.
func ParameterNames() []string {
	return []string{NameWeights1, NameBiases1, NameWeights2, NameBiases2}
}

// Parameters holds the four trainable matrices of the network.
//
// A Parameters value is treated as immutable once built: training produces a
// new Parameters rather than writing into the old one, so a pointer obtained
// before a training step keeps describing the pre-step network.
type Parameters struct {
	W1 *matrix.Matrix[float64] // 64×784
	B1 *matrix.Matrix[float64] // 64×1
	W2 *matrix.Matrix[float64] // 10×64
	B2 *matrix.Matrix[float64] // 10×1
}

// NewParameters draws both weight matrices from U(-0.01, 0.01) using src and
// zeroes both bias vectors.
func NewParameters(src rand.Source) *Parameters {
	return &Parameters{
		W1: InitUniform(HiddenSize, InputSize, InitBound, src),
		B1: Zeros(HiddenSize, 1),
		W2: InitUniform(OutputSize, HiddenSize, InitBound, src),
		B2: Zeros(OutputSize, 1),
	}
}

// Clone returns a deep copy.
func (p *Parameters) Clone() *Parameters {
	return &Parameters{
		W1: p.W1.Clone(),
		B1: p.B1.Clone(),
		W2: p.W2.Clone(),
		B2: p.B2.Clone(),
	}
}

// List returns the matrices in the order W1, B1, W2, B2.
func (p *Parameters) List() []*matrix.Matrix[float64] {
	return []*matrix.Matrix[float64]{p.W1, p.B1, p.W2, p.B2}
}

// Named returns the matrices keyed by their persisted names.
func (p *Parameters) Named() map[string]*matrix.Matrix[float64] {
	return map[string]*matrix.Matrix[float64]{
		NameWeights1: p.W1,
		NameBiases1:  p.B1,
		NameWeights2: p.W2,
		NameBiases2:  p.B2,
	}
}

// Validate checks that every matrix is present with its exact shape.
func (p *Parameters) Validate() error {
	for name, m := range p.Named() {
		want := ParameterShapes[name]
		if m == nil {
			return fmt.Errorf("%s is missing: %w", name, ErrParameterShape)
		}
		if m.Rows() != want.Rows || m.Cols() != want.Cols {
			return fmt.Errorf("%s is %s, want %dx%d: %w", name, m.Shape(), want.Rows, want.Cols, ErrParameterShape)
		}
	}
	return nil
}

// ParametersFromList rebuilds Parameters from a W1, B1, W2, B2 list and
// validates the shapes.
func ParametersFromList(list []*matrix.Matrix[float64]) (*Parameters, error) {
	if len(list) != 4 {
		return nil, fmt.Errorf("got %d matrices, want 4: %w", len(list), ErrParameterShape)
	}
	p := &Parameters{W1: list[0], B1: list[1], W2: list[2], B2: list[3]}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
