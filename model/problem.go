package model

import (
	"math"
	"slices"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"q.log/twophase/matrix"
)

var log = logging.Logger("model")

// Tolerance is the magnitude under which a negative basic value is taken as zero
// before the basic solution is checked for feasibility.
const Tolerance = 1e-9

// Problem is a linear program in standard form,
//
//	min c'x  s.t.  Ax = b, x >= 0
//
// together with the state derived from its current basis. Variables are
// numbered from 1 to NumVariables.
type Problem struct {
	n int
	m int

	//cost n x 1
	cost *matrix.Matrix
	//tech constraint matrix, m x n
	tech *matrix.Matrix
	//rhs m x 1
	rhs *matrix.Matrix

	basis    []int
	outBasis []int

	basisMatrix  *matrix.Matrix
	basisInverse *matrix.Matrix
	costBasis    *matrix.Matrix
	xBasis       *matrix.Matrix
	objective    float64
}

// New validates cost (n x 1), tech (m x n) and rhs (m x 1) and returns a
// problem without a basis. The basis is established later by the two-phase
// solver or by SetBasis.
func New(cost, tech, rhs *matrix.Matrix) (*Problem, error) {
	if cost == nil || tech == nil || rhs == nil {
		return nil, errors.Wrap(ErrShape, "nil input")
	}

	m, n := tech.Dims()
	if cost.Rows() != n || cost.Columns() != 1 {
		return nil, errors.Wrapf(ErrShape, "cost is %dx%d, want %dx1", cost.Rows(), cost.Columns(), n)
	}
	if rhs.Rows() != m || rhs.Columns() != 1 {
		return nil, errors.Wrapf(ErrShape, "rhs is %dx%d, want %dx1", rhs.Rows(), rhs.Columns(), m)
	}
	if m > n {
		return nil, errors.Wrapf(ErrShape, "%d constraints and only %d variables", m, n)
	}
	if rhs.HasNegative() {
		return nil, errors.Wrapf(ErrNegativeRHS, "rhs = %v", rhs.Data())
	}

	return &Problem{
		n:    n,
		m:    m,
		cost: cost.Clone(),
		tech: tech.Clone(),
		rhs:  rhs.Clone(),
	}, nil
}

// NewWithBasis builds a problem and immediately establishes the given basis.
func NewWithBasis(cost, tech, rhs *matrix.Matrix, basis []int) (*Problem, error) {
	p, err := New(cost, tech, rhs)
	if err != nil {
		return nil, err
	}
	if err := p.SetBasis(basis); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Problem) NumVariables() int   { return p.n }
func (p *Problem) NumConstraints() int { return p.m }

func (p *Problem) Cost() *matrix.Matrix { return p.cost.Clone() }
func (p *Problem) Tech() *matrix.Matrix { return p.tech.Clone() }
func (p *Problem) RHS() *matrix.Matrix  { return p.rhs.Clone() }

func (p *Problem) HasBasis() bool { return p.basis != nil }

// BasisIndices returns the basis variables in slot order; slot i pairs with row i.
func (p *Problem) BasisIndices() []int { return slices.Clone(p.basis) }

// OutBasisIndices returns the non-basic variables in ascending order.
func (p *Problem) OutBasisIndices() []int { return slices.Clone(p.outBasis) }

func (p *Problem) BasisMatrix() *matrix.Matrix { return cloneOrNil(p.basisMatrix) }
func (p *Problem) CostBasis() *matrix.Matrix   { return cloneOrNil(p.costBasis) }
func (p *Problem) XBasis() *matrix.Matrix      { return cloneOrNil(p.xBasis) }
func (p *Problem) Objective() float64          { return p.objective }

func cloneOrNil(m *matrix.Matrix) *matrix.Matrix {
	if m == nil {
		return nil
	}
	return m.Clone()
}

// Solution returns the full vector x (length n); non-basic variables are 0.
func (p *Problem) Solution() []float64 {
	x := make([]float64, p.n)
	if p.xBasis == nil {
		return x
	}
	for slot, idx := range p.basis {
		v, _ := p.xBasis.At(slot+1, 1)
		x[idx-1] = v
	}
	return x
}

// Clone returns a deep copy of p, basis state included.
func (p *Problem) Clone() *Problem {
	return &Problem{
		n:            p.n,
		m:            p.m,
		cost:         p.cost.Clone(),
		tech:         p.tech.Clone(),
		rhs:          p.rhs.Clone(),
		basis:        slices.Clone(p.basis),
		outBasis:     slices.Clone(p.outBasis),
		basisMatrix:  cloneOrNil(p.basisMatrix),
		basisInverse: cloneOrNil(p.basisInverse),
		costBasis:    cloneOrNil(p.costBasis),
		xBasis:       cloneOrNil(p.xBasis),
		objective:    p.objective,
	}
}

func (p *Problem) checkIndex(index int) error {
	if index < 1 || index > p.n {
		return errors.Wrapf(ErrIndex, "x%d in a problem with variables x1..x%d", index, p.n)
	}
	return nil
}

func (p *Problem) validateBasis(basis []int) error {
	if len(basis) != p.m {
		return errors.Wrapf(ErrInvalidBasis, "%d indices for %d constraints", len(basis), p.m)
	}
	seen := make(map[int]bool, len(basis))
	for slot, idx := range basis {
		if idx < 1 || idx > p.n {
			return errors.Wrapf(ErrInvalidBasis, "slot %d holds x%d, variables are x1..x%d", slot+1, idx, p.n)
		}
		if seen[idx] {
			return errors.Wrapf(ErrInvalidBasis, "x%d appears twice", idx)
		}
		seen[idx] = true
	}
	return nil
}

// SetBasis replaces the whole basis and rebuilds the derived state. On error
// the previous basis is kept.
func (p *Problem) SetBasis(basis []int) error {
	if err := p.validateBasis(basis); err != nil {
		return err
	}

	prev := p.basis
	p.basis = slices.Clone(basis)
	if err := p.Rebuild(); err != nil {
		p.basis = prev
		return err
	}
	return nil
}

// Rebuild recomputes the basis matrix, the out-of-basis indices, the cost
// basis, the basic solution and the objective from the basis indices.
// The state is only replaced when every step succeeds.
func (p *Problem) Rebuild() error {
	if p.basis == nil {
		return ErrNoBasis
	}

	basisMatrix, err := p.tech.SubmatrixByColumns(p.basis)
	if err != nil {
		return errors.Wrapf(ErrInvalidBasis, "basis %v: %v", p.basis, err)
	}
	inv, err := basisMatrix.Inverse()
	if err != nil {
		return errors.Wrapf(ErrSingularBasis, "basis %v: %v", p.basis, err)
	}

	outBasis := make([]int, 0, p.n-p.m)
	for idx := 1; idx <= p.n; idx++ {
		if !slices.Contains(p.basis, idx) {
			outBasis = append(outBasis, idx)
		}
	}

	costBasis, err := p.cost.Transpose().SubmatrixByColumns(p.basis)
	if err != nil {
		return errors.Wrapf(ErrInvalidBasis, "basis %v: %v", p.basis, err)
	}
	costBasis = costBasis.Transpose()

	xBasis, err := inv.Mul(p.rhs)
	if err != nil {
		return err
	}
	for i := 1; i <= p.m; i++ {
		v, _ := xBasis.At(i, 1)
		if v < 0 && v > -Tolerance {
			_ = xBasis.Set(i, 1, 0)
		}
	}
	if xBasis.HasNegative() {
		return errors.Wrapf(ErrInfeasibleBasis, "basis %v gives x = %v", p.basis, xBasis.Data())
	}

	z, err := costBasis.Transpose().Mul(xBasis)
	if err != nil {
		return err
	}

	p.basisMatrix = basisMatrix
	p.basisInverse = inv
	p.outBasis = outBasis
	p.costBasis = costBasis
	p.xBasis = xBasis
	p.objective, _ = z.At(1, 1)

	log.Debugf("basis %v: x_B = %v, z = %v", p.basis, xBasis.Data(), p.objective)
	return nil
}

// IsInBasis reports whether x_index is currently basic.
func (p *Problem) IsInBasis(index int) (bool, error) {
	if err := p.checkIndex(index); err != nil {
		return false, err
	}
	return slices.Contains(p.basis, index), nil
}

// Direction returns y = B^-1 * A_index.
func (p *Problem) Direction(index int) (*matrix.Matrix, error) {
	if err := p.checkIndex(index); err != nil {
		return nil, err
	}
	if p.basisInverse == nil {
		return nil, ErrNoBasis
	}

	col, err := p.tech.Column(index)
	if err != nil {
		return nil, err
	}
	return p.basisInverse.Mul(col)
}

// ReducedCost returns z_index - c_index with z_index = c_B' * B^-1 * A_index.
// The sign is the opposite of c_j - z_j: the basis is optimal when every
// non-basic value is <= 0.
func (p *Problem) ReducedCost(index int) (float64, error) {
	in, err := p.IsInBasis(index)
	if err != nil {
		return 0, err
	}
	if p.basisInverse == nil {
		return 0, ErrNoBasis
	}
	if in {
		return 0, errors.Wrapf(ErrInBasis, "reduced cost of x%d", index)
	}

	y, err := p.Direction(index)
	if err != nil {
		return 0, err
	}
	z, err := p.costBasis.Transpose().Mul(y)
	if err != nil {
		return 0, err
	}

	zj, _ := z.At(1, 1)
	cj, _ := p.cost.At(index, 1)
	return zj - cj, nil
}

// Exchange puts entering in the slot held by exiting and rebuilds the basis
// state. On error the basis is left unchanged.
func (p *Problem) Exchange(entering, exiting int) error {
	if p.basis == nil {
		return ErrNoBasis
	}
	in, err := p.IsInBasis(entering)
	if err != nil {
		return err
	}
	if in {
		return errors.Wrapf(ErrInBasis, "x%d cannot enter", entering)
	}
	in, err = p.IsInBasis(exiting)
	if err != nil {
		return err
	}
	if !in {
		return errors.Wrapf(ErrNotInBasis, "x%d cannot exit", exiting)
	}

	slot := slices.Index(p.basis, exiting)
	p.basis[slot] = entering
	if err := p.Rebuild(); err != nil {
		p.basis[slot] = exiting
		return err
	}
	return nil
}

// Value returns the current value of x_index.
func (p *Problem) Value(index int) (float64, error) {
	if err := p.checkIndex(index); err != nil {
		return math.NaN(), err
	}
	return p.Solution()[index-1], nil
}
