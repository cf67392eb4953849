package matrix

import (
	"fmt"
	"math"
)

func mismatch(op string, a, b interface{ Shape() string }) error {
	return fmt.Errorf("%s: %s vs %s: %w", op, a.Shape(), b.Shape(), ErrDimensionMismatch)
}

// Transpose returns a new cols×rows matrix with result[j,i] = m[i,j].
func Transpose[T Numeric](m *Matrix[T]) *Matrix[T] {
	out := &Matrix[T]{rows: m.cols, cols: m.rows, data: make([]T, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Multiply computes the matrix product a·b.
//
// a.Cols() must equal b.Rows(), otherwise ErrDimensionMismatch is returned.
// The result has shape a.Rows()×b.Cols().
func Multiply[T Numeric](a, b *Matrix[T]) (*Matrix[T], error) {
	if a.cols != b.rows {
		return nil, mismatch("Multiply", a, b)
	}

	out := &Matrix[T]{rows: a.rows, cols: b.cols, data: make([]T, a.rows*b.cols)}
	// i-k-j order keeps the inner loop walking both b and out row-major.
	for i := 0; i < a.rows; i++ {
		outRow := out.data[i*b.cols : (i+1)*b.cols]
		for k := 0; k < a.cols; k++ {
			aik := a.data[i*a.cols+k]
			bRow := b.data[k*b.cols : (k+1)*b.cols]
			for j, bkj := range bRow {
				outRow[j] += aik * bkj
			}
		}
	}
	return out, nil
}

// ElementwiseMultiply computes the Hadamard product a⊙b.
func ElementwiseMultiply[T Numeric](a, b *Matrix[T]) (*Matrix[T], error) {
	if !a.SameShape(b) {
		return nil, mismatch("ElementwiseMultiply", a, b)
	}
	out := &Matrix[T]{rows: a.rows, cols: a.cols, data: make([]T, len(a.data))}
	for i := range a.data {
		out.data[i] = a.data[i] * b.data[i]
	}
	return out, nil
}

// Add computes a+b position-wise.
func Add[T Numeric](a, b *Matrix[T]) (*Matrix[T], error) {
	if !a.SameShape(b) {
		return nil, mismatch("Add", a, b)
	}
	out := &Matrix[T]{rows: a.rows, cols: a.cols, data: make([]T, len(a.data))}
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out, nil
}

// Sub computes a-b position-wise.
func Sub[T Numeric](a, b *Matrix[T]) (*Matrix[T], error) {
	if !a.SameShape(b) {
		return nil, mismatch("Sub", a, b)
	}
	out := &Matrix[T]{rows: a.rows, cols: a.cols, data: make([]T, len(a.data))}
	for i := range a.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out, nil
}

// Scale returns s·m.
func Scale[T Numeric](m *Matrix[T], s T) *Matrix[T] {
	out := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	for i, v := range m.data {
		out.data[i] = v * s
	}
	return out
}

// Apply returns a new matrix with f applied to every element.
func Apply[T Numeric](m *Matrix[T], f func(T) T) *Matrix[T] {
	out := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	for i, v := range m.data {
		out.data[i] = f(v)
	}
	return out
}

// Max returns the greatest element, scanning every row.
//
// Returns ErrEmpty if the matrix has no elements.
func Max[T Numeric](m *Matrix[T]) (T, error) {
	if len(m.data) == 0 {
		var zero T
		return zero, fmt.Errorf("Max: %w", ErrEmpty)
	}
	best := m.data[0]
	for _, v := range m.data[1:] {
		if v > best {
			best = v
		}
	}
	return best, nil
}

// ArgMax returns the row-major index of the greatest element.
//
// Ties resolve to the lowest index. Returns ErrEmpty for an empty matrix.
func ArgMax[T Numeric](m *Matrix[T]) (int, error) {
	if len(m.data) == 0 {
		return 0, fmt.Errorf("ArgMax: %w", ErrEmpty)
	}
	idx := 0
	for i, v := range m.data {
		if v > m.data[idx] {
			idx = i
		}
	}
	return idx, nil
}

// Equal reports whether a and b have the same shape and elements.
func Equal[T Numeric](a, b *Matrix[T]) bool {
	if !a.SameShape(b) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// EqualApprox reports whether a and b have the same shape and every pair of
// elements differs by at most tol.
func EqualApprox[T Numeric](a, b *Matrix[T], tol float64) bool {
	if !a.SameShape(b) {
		return false
	}
	for i := range a.data {
		if math.Abs(float64(a.data[i])-float64(b.data[i])) > tol {
			return false
		}
	}
	return true
}
