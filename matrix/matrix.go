// Package matrix is a small dense matrix engine with 1-based indexing.
//
// A *Matrix is never shared between results: every operation allocates a new
// matrix, and accessors that expose the backing data return copies.
package matrix

import (
	"github.com/pkg/errors"
)

type Matrix struct {
	rows int
	cols int
	data []float64
}

// New returns a zero-initialized rows x cols matrix.
func New(rows, cols int) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "new %dx%d", rows, cols)
	}

	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}, nil
}

// NewFromSlice returns a rows x cols matrix holding a copy of data in row-major order.
func NewFromSlice(rows, cols int, data []float64) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, errors.Wrapf(ErrBadLength, "got %d values for %dx%d", len(data), rows, cols)
	}
	copy(m.data, data)

	return m, nil
}

// NewColumn returns a len(values) x 1 column vector.
func NewColumn(values ...float64) (*Matrix, error) {
	return NewFromSlice(len(values), 1, values)
}

// NewRow returns a 1 x len(values) row vector.
func NewRow(values ...float64) (*Matrix, error) {
	return NewFromSlice(1, len(values), values)
}

// Identity returns the dim x dim identity matrix.
func Identity(dim int) (*Matrix, error) {
	id, err := New(dim, dim)
	if err != nil {
		return nil, err
	}
	for i := 1; i <= dim; i++ {
		id.set(i, i, 1)
	}

	return id, nil
}

func (m *Matrix) Rows() int    { return m.rows }
func (m *Matrix) Columns() int { return m.cols }

func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// Data returns a row-major copy of the elements.
func (m *Matrix) Data() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

func (m *Matrix) Clone() *Matrix {
	return &Matrix{
		rows: m.rows,
		cols: m.cols,
		data: m.Data(),
	}
}

func (m *Matrix) inRange(i, j int) bool {
	return i >= 1 && i <= m.rows && j >= 1 && j <= m.cols
}

func (m *Matrix) at(i, j int) float64 {
	return m.data[(i-1)*m.cols+(j-1)]
}

func (m *Matrix) set(i, j int, v float64) {
	m.data[(i-1)*m.cols+(j-1)] = v
}

// At returns the element in row i, column j.
func (m *Matrix) At(i, j int) (float64, error) {
	if !m.inRange(i, j) {
		return 0, errors.Wrapf(ErrOutOfRange, "get [%d, %d] of a %dx%d matrix", i, j, m.rows, m.cols)
	}
	return m.at(i, j), nil
}

// Set stores v in row i, column j.
func (m *Matrix) Set(i, j int, v float64) error {
	if !m.inRange(i, j) {
		return errors.Wrapf(ErrOutOfRange, "set [%d, %d] to %v of a %dx%d matrix", i, j, v, m.rows, m.cols)
	}
	m.set(i, j, v)
	return nil
}

// Fill sets every element to v.
func (m *Matrix) Fill(v float64) {
	for k := range m.data {
		m.data[k] = v
	}
}

// Row returns row i as a 1 x cols matrix.
func (m *Matrix) Row(i int) (*Matrix, error) {
	if i < 1 || i > m.rows {
		return nil, errors.Wrapf(ErrOutOfRange, "row %d of a %dx%d matrix", i, m.rows, m.cols)
	}

	res := &Matrix{rows: 1, cols: m.cols, data: make([]float64, m.cols)}
	copy(res.data, m.data[(i-1)*m.cols:i*m.cols])
	return res, nil
}

// Column returns column j as a rows x 1 matrix.
func (m *Matrix) Column(j int) (*Matrix, error) {
	if j < 1 || j > m.cols {
		return nil, errors.Wrapf(ErrOutOfRange, "column %d of a %dx%d matrix", j, m.rows, m.cols)
	}

	res := &Matrix{rows: m.rows, cols: 1, data: make([]float64, m.rows)}
	for i := 1; i <= m.rows; i++ {
		res.data[i-1] = m.at(i, j)
	}
	return res, nil
}
