package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"q.log/twophase/model"
	"q.log/twophase/simplex"
)

func TestConstructProblem(t *testing.T) {
	p, err := NewReader("testdata/small.mps").ConstructProblem()
	require.NoError(t, err)

	assert.Equal(t, 3, p.NumConstraints())
	assert.Equal(t, 5, p.NumVariables())
	assert.Equal(t, []float64{1, 2, 0, 0, 0}, p.Cost().Data())
	assert.Equal(t, []float64{
		1, 1, 1, 0, 0,
		-1, 1, 0, 1, 0,
		1, 1, 0, 0, -1,
	}, p.Tech().Data())
	assert.Equal(t, []float64{4, 2, 1}, p.RHS().Data())
}

func TestConstructProblemBoundsAndEmptyRows(t *testing.T) {
	p, err := NewReader("testdata/bounded.mps").ConstructProblem()
	require.NoError(t, err)

	// EMPTY (0 = 0) is dropped, x1 >= 1 and x2 <= 1 become rows after LIM1
	assert.Equal(t, 3, p.NumConstraints())
	assert.Equal(t, 5, p.NumVariables())
	assert.Equal(t, []float64{-1, -1, 0, 0, 0}, p.Cost().Data())
	assert.Equal(t, []float64{
		1, 1, 1, 0, 0,
		1, 0, 0, -1, 0,
		0, 1, 0, 0, 1,
	}, p.Tech().Data())
	assert.Equal(t, []float64{4, 1, 1}, p.RHS().Data())

	res, err := simplex.Solve(p.Clone())
	require.NoError(t, err)
	require.Equal(t, simplex.Optimal, res.Status)
	assert.InDelta(t, -4, res.Objective, 1e-9)
	assert.GreaterOrEqual(t, res.X[0], 1-1e-9)
	assert.LessOrEqual(t, res.X[1], 1+1e-9)
}

func TestTrivialRow(t *testing.T) {
	tests := []struct {
		name string
		row  []float64
		rhs  float64
		s    rowSignal
		want bool
	}{
		{"zero equality", []float64{0, 0}, 0, equal, true},
		{"unsatisfiable equality", []float64{0, 0}, 2, equal, false},
		{"zero less equal", []float64{0, 0}, 3, lessEqual, true},
		{"negative less equal", []float64{0, 0}, -1, lessEqual, false},
		{"zero greater equal", []float64{0, 0}, -1, greaterEqual, true},
		{"positive greater equal", []float64{0, 0}, 1, greaterEqual, false},
		{"coefficients", []float64{0, 1}, 0, equal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trivialRow(tt.row, tt.rhs, tt.s))
		})
	}
}

func TestConstructProblemMissingFile(t *testing.T) {
	_, err := NewReader("testdata/missing.mps").ConstructProblem()
	assert.Error(t, err)
}

func TestCrossCheckAgreesWithSolver(t *testing.T) {
	p, err := NewReader("testdata/small.mps").ConstructProblem()
	require.NoError(t, err)

	res, err := simplex.Solve(p.Clone())
	require.NoError(t, err)
	require.Equal(t, simplex.Optimal, res.Status)
	assert.InDelta(t, 1, res.Objective, 1e-9)
	assert.InDeltaSlice(t, []float64{1, 0, 3, 3, 0}, res.X, 1e-9)

	status, obj, err := CrossCheck(p)
	require.NoError(t, err)
	assert.Equal(t, simplex.Optimal, status)
	assert.InDelta(t, res.Objective, obj, 1e-7)
}

func TestCrossCheckInfeasible(t *testing.T) {
	b, err := model.NewBuilder(2, 2)
	require.NoError(t, err)
	require.NoError(t, b.SetC([]float64{1, 1}))
	require.NoError(t, b.SetA([]float64{1, 1, 1, 1}))
	require.NoError(t, b.SetB([]float64{1, 2}))
	p, err := b.Build()
	require.NoError(t, err)

	status, _, err := CrossCheck(p)
	require.NoError(t, err)
	assert.Equal(t, simplex.Infeasible, status)
}
