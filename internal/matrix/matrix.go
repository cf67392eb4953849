package matrix

import (
	"fmt"
	"strings"
)

// Numeric is a constraint for supported element types.
type Numeric interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// Matrix is a rows×cols container stored in row-major order.
//
// The shape is immutable after construction; element values are not.
// Operations that "change" a matrix return a new instance instead.
type Matrix[T Numeric] struct {
	rows, cols int
	data       []T // len == rows*cols
}

// New creates a zero-filled rows×cols matrix.
//
// Zero-sized dimensions are allowed; negative ones return ErrInvalidDimensions.
func New[T Numeric](rows, cols int) (*Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}, nil
}

// MustNew is like New but panics on invalid dimensions.
//
// It is meant for shapes that are constants of the caller's architecture.
func MustNew[T Numeric](rows, cols int) *Matrix[T] {
	m, err := New[T](rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// FromRows creates a matrix by deep-copying a 2D slice.
//
// Every row must have the same length, otherwise ErrRagged is returned.
func FromRows[T Numeric](rows [][]T) (*Matrix[T], error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromRows: row %d has %d elements, want %d: %w", i, len(row), c, ErrRagged)
		}
	}

	m := &Matrix[T]{rows: r, cols: c, data: make([]T, r*c)}
	for i, row := range rows {
		copy(m.data[i*c:(i+1)*c], row)
	}
	return m, nil
}

// FromSlice creates a rows×cols matrix from row-major data (deep copy).
func FromSlice[T Numeric](rows, cols int, data []T) (*Matrix[T], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("FromSlice(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("FromSlice(%d,%d): got %d elements: %w", rows, cols, len(data), ErrDataLengthMismatch)
	}
	m := &Matrix[T]{rows: rows, cols: cols, data: make([]T, len(data))}
	copy(m.data, data)
	return m, nil
}

// Vector creates an n×1 column vector holding a copy of values.
func Vector[T Numeric](values []T) *Matrix[T] {
	m := &Matrix[T]{rows: len(values), cols: 1, data: make([]T, len(values))}
	copy(m.data, values)
	return m
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int { return m.cols }

// Len returns the number of elements.
func (m *Matrix[T]) Len() int { return len(m.data) }

// SameShape reports whether m and other have identical dimensions.
func (m *Matrix[T]) SameShape(other *Matrix[T]) bool {
	return m.rows == other.rows && m.cols == other.cols
}

// At returns the element at (row, col). It panics if the index is out of range.
func (m *Matrix[T]) At(row, col int) T {
	return m.data[m.offset(row, col)]
}

// Set assigns v at (row, col). It panics if the index is out of range.
func (m *Matrix[T]) Set(row, col int, v T) {
	m.data[m.offset(row, col)] = v
}

func (m *Matrix[T]) offset(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d,%d) out of range for %dx%d", row, col, m.rows, m.cols))
	}
	return row*m.cols + col
}

// Row returns a copy of row i.
func (m *Matrix[T]) Row(i int) []T {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("matrix: row %d out of range for %dx%d", i, m.rows, m.cols))
	}
	out := make([]T, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// Data returns a row-major copy of all elements.
func (m *Matrix[T]) Data() []T {
	out := make([]T, len(m.data))
	copy(out, m.data)
	return out
}

// ToRows returns the contents as a freshly allocated 2D slice.
func (m *Matrix[T]) ToRows() [][]T {
	out := make([][]T, m.rows)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// Clone returns a deep copy.
func (m *Matrix[T]) Clone() *Matrix[T] {
	return &Matrix[T]{rows: m.rows, cols: m.cols, data: m.Data()}
}

// Shape returns "RxC", used in error messages.
func (m *Matrix[T]) Shape() string {
	return fmt.Sprintf("%dx%d", m.rows, m.cols)
}

// String implements fmt.Stringer.
func (m *Matrix[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%v", m.data[i*m.cols+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
