package model

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"q.log/twophase/matrix"
)

// Builder assembles a problem row by row and column by column before it is
// frozen into a Problem. Indexes used by its methods are 0-based, as in gonum.
type Builder struct {
	//C objective function coefficients, 1 x NumCols
	C *mat.Dense

	//A constraints matrix
	A *mat.Dense

	//B constraints rhs
	B *mat.Dense

	//Basis optional user supplied basis (1-based variable numbers)
	Basis []int

	//SlackIndexes 0-based columns added as slack or surplus variables
	SlackIndexes []int

	NumRows int
	NumCols int
}

func NewBuilder(numRows, numCols int) (*Builder, error) {
	if numRows < 1 || numCols < 1 {
		return nil, errors.Wrapf(ErrShape, "builder with %d rows and %d columns", numRows, numCols)
	}

	return &Builder{
		C:       mat.NewDense(1, numCols, nil),
		A:       mat.NewDense(numRows, numCols, nil),
		B:       mat.NewDense(numRows, 1, nil),
		NumRows: numRows,
		NumCols: numCols,
	}, nil
}

func (b *Builder) SetC(cVec []float64) error {
	if len(cVec) != b.NumCols {
		return errors.Wrap(ErrShape, "mismatch number of variables")
	}

	b.C = mat.NewDense(1, b.NumCols, cVec)

	return nil
}

func (b *Builder) SetA(aVec []float64) error {
	if len(aVec) != b.NumCols*b.NumRows {
		return errors.Wrap(ErrShape, "mismatch number of variables and/or constraints")
	}

	b.A = mat.NewDense(b.NumRows, b.NumCols, aVec)

	return nil
}

func (b *Builder) SetB(bVec []float64) error {
	if len(bVec) != b.NumRows {
		return errors.Wrap(ErrShape, "mismatch number of constraints")
	}

	b.B = mat.NewDense(b.NumRows, 1, bVec)

	return nil
}

// AddCol appends a variable with constraint column cVec and cost coef.
func (b *Builder) AddCol(cVec []float64, coef float64) error {
	if len(cVec) != b.NumRows {
		return errors.Wrap(ErrShape, "mismatch number of rows, i.e. wrong len of cVec")
	}

	b.A = mat.DenseCopyOf(b.A.Grow(0, 1))
	b.A.SetCol(b.NumCols, cVec)

	b.C = mat.DenseCopyOf(b.C.Grow(0, 1))
	b.C.Set(0, b.NumCols, coef)

	b.NumCols++
	return nil
}

// AddRow appends the constraint rVec x = rhs.
func (b *Builder) AddRow(rVec []float64, rhs float64) error {
	if len(rVec) != b.NumCols {
		return errors.Wrap(ErrShape, "mismatch number of columns, i.e. wrong len of rVec")
	}

	b.A = mat.DenseCopyOf(b.A.Grow(1, 0))
	b.A.SetRow(b.NumRows, rVec)

	b.B = mat.DenseCopyOf(b.B.Grow(1, 0))
	b.B.Set(b.NumRows, 0, rhs)

	b.NumRows++
	return nil
}

// RemoveRow deletes constraint r; the last remaining row cannot be removed.
func (b *Builder) RemoveRow(r int) error {
	if r < 0 || r >= b.NumRows {
		return errors.Wrap(ErrShape, "row does not exists")
	}
	if b.NumRows == 1 {
		return errors.Wrap(ErrShape, "cannot remove the last row")
	}

	auxA := mat.NewDense(b.NumRows-1, b.NumCols, nil)
	auxB := mat.NewDense(b.NumRows-1, 1, nil)
	dst := 0
	for row := 0; row < b.NumRows; row++ {
		if row == r {
			continue
		}
		for col := 0; col < b.NumCols; col++ {
			auxA.Set(dst, col, b.A.At(row, col))
		}
		auxB.Set(dst, 0, b.B.At(row, 0))
		dst++
	}

	b.A = auxA
	b.B = auxB
	b.NumRows--

	return nil
}

// MultiplyConstraint scales row (coefficients and rhs) by mul.
func (b *Builder) MultiplyConstraint(row int, mul float64) error {
	if row < 0 || row >= b.NumRows {
		return errors.Wrap(ErrShape, "row does not exists")
	}

	for col := 0; col < b.NumCols; col++ {
		b.A.Set(row, col, b.A.At(row, col)*mul)
	}
	b.B.Set(row, 0, b.B.At(row, 0)*mul)
	return nil
}

// Build freezes the builder into a Problem. When Basis is set the problem is
// built in user-supplied basis mode.
func (b *Builder) Build() (*Problem, error) {
	cost, err := matrix.FromDense(b.C.T())
	if err != nil {
		return nil, err
	}
	tech, err := matrix.FromDense(b.A)
	if err != nil {
		return nil, err
	}
	rhs, err := matrix.FromDense(b.B)
	if err != nil {
		return nil, err
	}

	if b.Basis != nil {
		return NewWithBasis(cost, tech, rhs, b.Basis)
	}
	return New(cost, tech, rhs)
}
