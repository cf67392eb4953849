// Package matrix provides the dense 2D numeric container used by the digit
// network.
//
// A Matrix has a fixed shape chosen at construction and owns its row-major
// storage exclusively. Arithmetic never mutates an operand: Transpose,
// Multiply, ElementwiseMultiply, Add, Sub, Scale and Apply all allocate a
// fresh result, which is how parameter updates stay free of aliasing.
//
// Shape checks run before any computation and report ErrDimensionMismatch:
//
//	w := matrix.MustNew[float64](64, 784)
//	x := matrix.MustNew[float64](784, 1)
//	z, err := matrix.Multiply(w, x) // 64x1
//	if err != nil {
//	    return err
//	}
package matrix
