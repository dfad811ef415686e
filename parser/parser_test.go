package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"q.log/twophase/model"
)

func TestParse(t *testing.T) {
	src := `min 2x1 + 3x2 -x4
x1 + x2 + x3 = 4
2.5x1 - x2 -1e1x4 = 2
`
	p, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 4, p.NumVariables())
	assert.Equal(t, 2, p.NumConstraints())
	assert.Equal(t, []float64{2, 3, 0, -1}, p.Cost().Data())
	assert.Equal(t, []float64{
		1, 1, 1, 0,
		2.5, -1, 0, -10,
	}, p.Tech().Data())
	assert.Equal(t, []float64{4, 2}, p.RHS().Data())
	assert.False(t, p.HasBasis())
}

func TestParseBasis(t *testing.T) {
	p, err := ParseFile("testdata/with_basis.txt")
	require.NoError(t, err)

	assert.True(t, p.HasBasis())
	assert.Equal(t, []int{1}, p.BasisIndices())
	assert.Equal(t, 1.0, p.Objective())
}

func TestParseFile(t *testing.T) {
	p, err := ParseFile("testdata/two_phase.txt")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, p.Cost().Data())
	assert.Equal(t, []float64{1, 1, 1, -1}, p.Tech().Data())

	_, err = ParseFile("testdata/missing.txt")
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "\n# nothing\n", ErrSyntax},
		{"no min", "max x1\nx1 = 1\n", ErrSyntax},
		{"empty goal", "min\nx1 = 1\n", ErrSyntax},
		{"duplicate in goal", "min x1 + 4x1\nx1 = 1\n", ErrSyntax},
		{"unknown token", "min x1 + y2\nx1 = 1\n", ErrSyntax},
		{"dangling sign", "min x1 +\nx1 = 1\n", ErrSyntax},
		{"x0", "min x0\nx1 = 1\n", ErrSyntax},
		{"no constraints", "min x1\n", ErrSyntax},
		{"inequality", "min x1\nx1 <= 1\n", ErrSyntax},
		{"two equals", "min x1\nx1 = 1 = 2\n", ErrSyntax},
		{"bad rhs", "min x1\nx1 = one\n", ErrSyntax},
		{"basis size", "min x1 + x2\nx1 + x2 = 1\nB = {1, 2}\n", ErrSyntax},
		{"basis range", "min x1 + x2\nx1 + x2 = 1\nB = {3}\n", ErrSyntax},
		{"basis token", "min x1 + x2\nx1 + x2 = 1\nB = {a}\n", ErrSyntax},
		{"basis not last", "min x1 + x2\nB = {1}\nx1 + x2 = 1\n", ErrSyntax},
		{"negative rhs", "min x1\nx1 = -1\n", model.ErrNegativeRHS},
		{"duplicate basis", "min x1 + x2 + x3\nx1 + x3 = 1\nx2 + x3 = 1\nB = {1, 1}\n", model.ErrInvalidBasis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
