package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"q.log/twophase/matrix"
)

func vec(t *testing.T, values ...float64) *matrix.Matrix {
	t.Helper()
	v, err := matrix.NewColumn(values...)
	require.NoError(t, err)
	return v
}

func mat2(t *testing.T, rows, cols int, data ...float64) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewFromSlice(rows, cols, data)
	require.NoError(t, err)
	return m
}

// min -x1 - x2  s.t.  x1 + 2x2 + x3 = 4,  3x1 + x2 + x4 = 6
func slackProblem(t *testing.T) *Problem {
	t.Helper()
	p, err := New(
		vec(t, -1, -1, 0, 0),
		mat2(t, 2, 4,
			1, 2, 1, 0,
			3, 1, 0, 1,
		),
		vec(t, 4, 6),
	)
	require.NoError(t, err)
	return p
}

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name string
		cost *matrix.Matrix
		tech *matrix.Matrix
		rhs  *matrix.Matrix
		want error
	}{
		{"negative rhs", vec(t, 1, 1), mat2(t, 1, 2, 1, 1), vec(t, -1), ErrNegativeRHS},
		{"cost length", vec(t, 1), mat2(t, 1, 2, 1, 1), vec(t, 1), ErrShape},
		{"rhs length", vec(t, 1, 1), mat2(t, 1, 2, 1, 1), vec(t, 1, 2), ErrShape},
		{"more constraints than variables", vec(t, 1), mat2(t, 2, 1, 1, 1), vec(t, 1, 1), ErrShape},
		{"nil", nil, mat2(t, 1, 1, 1), vec(t, 1), ErrShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cost, tt.tech, tt.rhs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewWithBasisSingleConstraint(t *testing.T) {
	p, err := NewWithBasis(vec(t, 1, 1), mat2(t, 1, 2, 1, 1), vec(t, 1), []int{1})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, p.BasisIndices())
	assert.Equal(t, []int{2}, p.OutBasisIndices())
	assert.Equal(t, []float64{1}, p.XBasis().Data())
	assert.Equal(t, 1.0, p.Objective())
	assert.Equal(t, []float64{1, 0}, p.Solution())

	rc, err := p.ReducedCost(2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rc)

	_, err = p.ReducedCost(1)
	assert.ErrorIs(t, err, ErrInBasis)
	_, err = p.ReducedCost(3)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestSetBasisValidation(t *testing.T) {
	p := slackProblem(t)

	tests := []struct {
		name  string
		basis []int
		want  error
	}{
		{"too short", []int{3}, ErrInvalidBasis},
		{"out of range", []int{3, 5}, ErrInvalidBasis},
		{"zero", []int{0, 3}, ErrInvalidBasis},
		{"duplicate", []int{3, 3}, ErrInvalidBasis},
		{"infeasible", []int{2, 3}, ErrInfeasibleBasis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, p.SetBasis(tt.basis), tt.want)
			assert.False(t, p.HasBasis())
		})
	}

	require.NoError(t, p.SetBasis([]int{1, 2}))
	assert.InDeltaSlice(t, []float64{1.6, 1.2}, p.XBasis().Data(), 1e-12)
	assert.InDelta(t, -2.8, p.Objective(), 1e-12)
	assert.Equal(t, []int{3, 4}, p.OutBasisIndices())
	assert.Equal(t, []float64{-1, -1}, p.CostBasis().Data())
}

func TestSingularBasis(t *testing.T) {
	p, err := New(
		vec(t, 1, 1, 0),
		mat2(t, 2, 3,
			1, 2, 1,
			2, 4, 0,
		),
		vec(t, 1, 2),
	)
	require.NoError(t, err)

	assert.ErrorIs(t, p.SetBasis([]int{1, 2}), ErrSingularBasis)
}

func TestReducedCostsAtSlackBasis(t *testing.T) {
	p := slackProblem(t)
	require.NoError(t, p.SetBasis([]int{3, 4}))

	assert.Equal(t, []float64{4, 6}, p.XBasis().Data())
	assert.Equal(t, 0.0, p.Objective())
	assert.True(t, p.BasisMatrix().IsIdentity())

	for _, j := range []int{1, 2} {
		rc, err := p.ReducedCost(j)
		require.NoError(t, err)
		assert.Equal(t, 1.0, rc, "x%d", j)
	}

	y, err := p.Direction(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, y.Data())
}

func TestRebuildIsIdempotent(t *testing.T) {
	p := slackProblem(t)
	require.NoError(t, p.SetBasis([]int{2, 1}))

	require.NoError(t, p.Rebuild())
	first := p.Clone()
	require.NoError(t, p.Rebuild())

	assert.Equal(t, first.BasisIndices(), p.BasisIndices())
	assert.Equal(t, first.OutBasisIndices(), p.OutBasisIndices())
	assert.True(t, first.BasisMatrix().Equal(p.BasisMatrix()))
	assert.True(t, first.CostBasis().Equal(p.CostBasis()))
	assert.True(t, first.XBasis().Equal(p.XBasis()))
	assert.Equal(t, first.Objective(), p.Objective())
}

func TestRebuildWithoutBasis(t *testing.T) {
	p := slackProblem(t)
	assert.ErrorIs(t, p.Rebuild(), ErrNoBasis)
	_, err := p.ReducedCost(1)
	assert.ErrorIs(t, err, ErrNoBasis)
}

func TestExchange(t *testing.T) {
	p := slackProblem(t)
	require.NoError(t, p.SetBasis([]int{3, 4}))

	// x1 replacing x3 would make x4 negative
	assert.ErrorIs(t, p.Exchange(1, 3), ErrInfeasibleBasis)
	assert.Equal(t, []int{3, 4}, p.BasisIndices())
	assert.Equal(t, []float64{4, 6}, p.XBasis().Data())

	require.NoError(t, p.Exchange(1, 4))
	assert.Equal(t, []int{3, 1}, p.BasisIndices())
	assert.Equal(t, []int{2, 4}, p.OutBasisIndices())
	assert.InDeltaSlice(t, []float64{2, 2}, p.XBasis().Data(), 1e-12)
	assert.InDelta(t, -2, p.Objective(), 1e-12)

	assert.ErrorIs(t, p.Exchange(1, 2), ErrInBasis)
	assert.ErrorIs(t, p.Exchange(2, 4), ErrNotInBasis)
	assert.ErrorIs(t, p.Exchange(9, 1), ErrIndex)
}

func TestIsInBasis(t *testing.T) {
	p := slackProblem(t)
	require.NoError(t, p.SetBasis([]int{4, 3}))

	in, err := p.IsInBasis(3)
	require.NoError(t, err)
	assert.True(t, in)

	in, err = p.IsInBasis(1)
	require.NoError(t, err)
	assert.False(t, in)

	_, err = p.IsInBasis(0)
	assert.ErrorIs(t, err, ErrIndex)
}

func TestCloneIsDeep(t *testing.T) {
	p := slackProblem(t)
	require.NoError(t, p.SetBasis([]int{3, 4}))

	c := p.Clone()
	require.NoError(t, c.Exchange(1, 4))

	assert.Equal(t, []int{3, 4}, p.BasisIndices())
	assert.Equal(t, []int{3, 1}, c.BasisIndices())
}

func TestScanIdentityColumns(t *testing.T) {
	tech := mat2(t, 3, 6,
		0, 1, 1, 0, 2, 0,
		1, 0, 0, 0, 0, 1,
		0, 0, 0, 1, 0, 1,
	)

	got := ScanIdentityColumns(tech)
	assert.Equal(t, []IdentityColumn{
		{Column: 2, Unit: 1},
		{Column: 1, Unit: 2},
		{Column: 4, Unit: 3},
	}, got)

	partial := mat2(t, 2, 3,
		1, 1, 2,
		0, 1, 0,
	)
	assert.Equal(t, []IdentityColumn{{Column: 1, Unit: 1}}, ScanIdentityColumns(partial))

	p, err := New(vec(t, 0, 0, 0), partial, vec(t, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, p.MissingUnits())
}

func TestRebuildSnapsRoundoff(t *testing.T) {
	tech := mat2(t, 2, 3,
		1, 1, 1,
		0, 1, 0,
	)

	// x1 = b1 - b2 comes out around -1e-12 and is taken as 0
	p, err := NewWithBasis(vec(t, 1, 1, 0), tech, vec(t, 1, 1+1e-12), []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.XBasis().Data()[0])

	x1, err := p.Value(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, x1)
	x2, err := p.Value(2)
	require.NoError(t, err)
	assert.InDelta(t, 1, x2, 1e-9)
	x3, err := p.Value(3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, x3)
	_, err = p.Value(4)
	assert.ErrorIs(t, err, ErrIndex)

	// a real negative value is still rejected
	_, err = NewWithBasis(vec(t, 1, 1, 0), tech, vec(t, 1, 1+1e-6), []int{1, 2})
	assert.ErrorIs(t, err, ErrInfeasibleBasis)
}
