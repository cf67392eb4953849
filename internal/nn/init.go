package nn

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/digitnet/internal/matrix"
)

// InitBound is the half-width of the uniform weight initialization range.
const InitBound = 0.01

// InitUniform returns a rows×cols matrix whose entries are independent draws
// from U(-bound, bound).
//
// The generator is passed in explicitly so that initialization is
// reproducible for a given seed:
//
//	src := rand.NewSource(42)
//	w := nn.InitUniform(64, 784, nn.InitBound, src)
func InitUniform(rows, cols int, bound float64, src rand.Source) *matrix.Matrix[float64] {
	dist := distuv.Uniform{Min: -bound, Max: bound, Src: src}

	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = dist.Rand()
	}
	return must(matrix.FromSlice(rows, cols, data))
}

// Zeros creates a rows×cols zero matrix.
//
// This is used for bias initialization.
func Zeros(rows, cols int) *matrix.Matrix[float64] {
	return matrix.MustNew[float64](rows, cols)
}

// must unwraps a matrix result inside the fixed architecture, where a
// shape error can only mean a programming error.
func must(m *matrix.Matrix[float64], err error) *matrix.Matrix[float64] {
	if err != nil {
		panic("nn: " + err.Error())
	}
	return m
}
