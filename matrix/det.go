package matrix

import (
	"math"

	"github.com/pkg/errors"
)

// SingularityThreshold scales with the dimension: Inverse rejects |det| < SingularityThreshold * dim.
const SingularityThreshold = 1e-6

// Det computes the determinant by Laplace expansion along the first row.
// The cost is factorial in the dimension, which is fine for the basis sizes
// this engine is meant for.
func (m *Matrix) Det() (float64, error) {
	if !m.IsSquare() {
		return 0, errors.Wrapf(ErrNonSquare, "determinant of a %dx%d matrix", m.rows, m.cols)
	}
	return m.det(), nil
}

func (m *Matrix) det() float64 {
	switch m.rows {
	case 1:
		return m.at(1, 1)
	case 2:
		return m.at(1, 1)*m.at(2, 2) - m.at(1, 2)*m.at(2, 1)
	}

	det := 0.0
	for j := 1; j <= m.cols; j++ {
		a := m.at(1, j)
		if a == 0 {
			continue
		}
		comp, _ := m.Complementary(1, j)
		det += cofactorSign(1, j) * a * comp.det()
	}
	return det
}

// Inverse returns adj(m) / det(m), the transposed cofactor matrix scaled by 1/det.
func (m *Matrix) Inverse() (*Matrix, error) {
	if !m.IsSquare() {
		return nil, errors.Wrapf(ErrNonSquare, "inverse of a %dx%d matrix", m.rows, m.cols)
	}

	dim := m.rows
	det := m.det()
	if math.Abs(det) < SingularityThreshold*float64(dim) {
		return nil, errors.Wrapf(ErrNearSingular, "det = %g for a %dx%d matrix", det, dim, dim)
	}

	if dim == 1 {
		return &Matrix{rows: 1, cols: 1, data: []float64{1 / det}}, nil
	}

	cof := &Matrix{rows: dim, cols: dim, data: make([]float64, dim*dim)}
	for i := 1; i <= dim; i++ {
		for j := 1; j <= dim; j++ {
			comp, _ := m.Complementary(i, j)
			cof.set(i, j, cofactorSign(i, j)*comp.det())
		}
	}

	return cof.Transpose().Scale(1 / det), nil
}

func cofactorSign(i, j int) float64 {
	if (i+j)%2 == 0 {
		return 1
	}
	return -1
}
