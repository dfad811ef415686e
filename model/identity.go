package model

import (
	"q.log/twophase/matrix"
)

// IdentityColumn is a column of the constraint matrix equal to the unit vector e_Unit.
type IdentityColumn struct {
	Column int
	Unit   int
}

// ScanIdentityColumns finds the columns of tech that are exactly a unit vector.
// Only the first column realizing each unit vector is kept; the result is
// ordered by unit.
func ScanIdentityColumns(tech *matrix.Matrix) []IdentityColumn {
	m, n := tech.Dims()
	byUnit := make([]int, m+1)

	for j := 1; j <= n; j++ {
		col, _ := tech.Column(j)
		u := unitOf(col)
		if u == 0 || byUnit[u] != 0 {
			continue
		}
		byUnit[u] = j
	}

	var found []IdentityColumn
	for u := 1; u <= m; u++ {
		if byUnit[u] != 0 {
			found = append(found, IdentityColumn{Column: byUnit[u], Unit: u})
		}
	}
	return found
}

// unitOf returns u when col equals e_u, 0 otherwise.
func unitOf(col *matrix.Matrix) int {
	unit := 0
	for i, v := range col.Data() {
		switch v {
		case 0:
		case 1:
			if unit != 0 {
				return 0
			}
			unit = i + 1
		default:
			return 0
		}
	}
	return unit
}

// IdentityColumns scans the problem's own constraint matrix.
func (p *Problem) IdentityColumns() []IdentityColumn {
	return ScanIdentityColumns(p.tech)
}

// MissingUnits returns, in ascending order, the unit vectors of dimension m
// that no column of the constraint matrix realizes.
func (p *Problem) MissingUnits() []int {
	have := make(map[int]bool)
	for _, ic := range p.IdentityColumns() {
		have[ic.Unit] = true
	}

	var missing []int
	for u := 1; u <= p.m; u++ {
		if !have[u] {
			missing = append(missing, u)
		}
	}
	return missing
}
