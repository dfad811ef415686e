package matrix

import (
	"github.com/pkg/errors"
)

// Transpose returns the cols x rows matrix with [j, i] = m[i, j].
func (m *Matrix) Transpose() *Matrix {
	res := &Matrix{rows: m.cols, cols: m.rows, data: make([]float64, len(m.data))}
	for i := 1; i <= m.rows; i++ {
		for j := 1; j <= m.cols; j++ {
			res.set(j, i, m.at(i, j))
		}
	}
	return res
}

// Scale returns k*m.
func (m *Matrix) Scale(k float64) *Matrix {
	res := m.Clone()
	for idx := range res.data {
		res.data[idx] *= k
	}
	return res
}

func (m *Matrix) Add(b *Matrix) (*Matrix, error) {
	return m.addSigned(b, 1, "add")
}

func (m *Matrix) Sub(b *Matrix) (*Matrix, error) {
	return m.addSigned(b, -1, "subtract")
}

func (m *Matrix) addSigned(b *Matrix, sign float64, op string) (*Matrix, error) {
	if m.rows != b.rows || m.cols != b.cols {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%s %dx%d and %dx%d", op, m.rows, m.cols, b.rows, b.cols)
	}

	res := m.Clone()
	for idx := range res.data {
		res.data[idx] += sign * b.data[idx]
	}
	return res, nil
}

// Mul returns the row-by-column product m*b.
func (m *Matrix) Mul(b *Matrix) (*Matrix, error) {
	if m.cols != b.rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "multiply %dx%d by %dx%d", m.rows, m.cols, b.rows, b.cols)
	}

	res := &Matrix{rows: m.rows, cols: b.cols, data: make([]float64, m.rows*b.cols)}
	for i := 1; i <= m.rows; i++ {
		for j := 1; j <= b.cols; j++ {
			sum := 0.0
			for k := 1; k <= m.cols; k++ {
				sum += m.at(i, k) * b.at(k, j)
			}
			res.set(i, j, sum)
		}
	}
	return res, nil
}

// Equal reports whether m and b have the same shape and exactly the same elements.
func (m *Matrix) Equal(b *Matrix) bool {
	if m.rows != b.rows || m.cols != b.cols {
		return false
	}
	for idx, v := range m.data {
		if v != b.data[idx] {
			return false
		}
	}
	return true
}

func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

func (m *Matrix) IsIdentity() bool {
	if !m.IsSquare() {
		return false
	}
	id, _ := Identity(m.rows)
	return m.Equal(id)
}

// HasNegative reports whether any element is < 0.
func (m *Matrix) HasNegative() bool {
	for _, v := range m.data {
		if v < 0 {
			return true
		}
	}
	return false
}

// Complementary returns m without row i and column j.
func (m *Matrix) Complementary(i, j int) (*Matrix, error) {
	if !m.inRange(i, j) {
		return nil, errors.Wrapf(ErrOutOfRange, "complementary of [%d, %d] in a %dx%d matrix", i, j, m.rows, m.cols)
	}
	if m.rows == 1 || m.cols == 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "complementary of a %dx%d matrix", m.rows, m.cols)
	}

	res := &Matrix{rows: m.rows - 1, cols: m.cols - 1, data: make([]float64, 0, (m.rows-1)*(m.cols-1))}
	for r := 1; r <= m.rows; r++ {
		if r == i {
			continue
		}
		for c := 1; c <= m.cols; c++ {
			if c == j {
				continue
			}
			res.data = append(res.data, m.at(r, c))
		}
	}
	return res, nil
}

// SubmatrixByColumns returns the named columns of m, in the given order.
func (m *Matrix) SubmatrixByColumns(columns []int) (*Matrix, error) {
	if len(columns) == 0 || len(columns) > m.cols {
		return nil, errors.Wrapf(ErrInvalidDimensions, "extract %d columns from a %dx%d matrix", len(columns), m.rows, m.cols)
	}

	seen := make(map[int]bool, len(columns))
	for _, c := range columns {
		if c < 1 || c > m.cols {
			return nil, errors.Wrapf(ErrOutOfRange, "column index %d in a %dx%d matrix", c, m.rows, m.cols)
		}
		if seen[c] {
			return nil, errors.Wrapf(ErrDuplicateIndex, "column %d", c)
		}
		seen[c] = true
	}

	res := &Matrix{rows: m.rows, cols: len(columns), data: make([]float64, m.rows*len(columns))}
	for i := 1; i <= m.rows; i++ {
		for k, c := range columns {
			res.set(i, k+1, m.at(i, c))
		}
	}
	return res, nil
}

// HConcat returns [m | b].
func (m *Matrix) HConcat(b *Matrix) (*Matrix, error) {
	if m.rows != b.rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "concatenate %dx%d and %dx%d", m.rows, m.cols, b.rows, b.cols)
	}

	res := &Matrix{rows: m.rows, cols: m.cols + b.cols, data: make([]float64, 0, m.rows*(m.cols+b.cols))}
	for i := 1; i <= m.rows; i++ {
		res.data = append(res.data, m.data[(i-1)*m.cols:i*m.cols]...)
		res.data = append(res.data, b.data[(i-1)*b.cols:i*b.cols]...)
	}
	return res, nil
}
