package simplex

import (
	"math"

	"github.com/pkg/errors"
	"q.log/twophase/matrix"
	"q.log/twophase/model"
)

// Solve solves p with the default solver.
func Solve(p *model.Problem, opts ...Option) (*Result, error) {
	return New(opts...).Solve(p)
}

// Solve brings p to an optimal basis and reports the outcome.
//
// A problem built with a basis is optimized from that basis. Otherwise, when
// the constraint matrix already contains every unit vector, those columns are
// the starting basis; failing that, phase 1 finds one on an artificial problem.
func (s *Solver) Solve(p *model.Problem) (*Result, error) {
	res := &Result{}

	switch {
	case p.HasBasis():
		s.log.Infof("starting from the supplied basis %v", p.BasisIndices())

	case len(p.IdentityColumns()) == p.NumConstraints():
		basis := make([]int, 0, p.NumConstraints())
		for _, ic := range p.IdentityColumns() {
			basis = append(basis, ic.Column)
		}
		s.log.Infof("constraint matrix contains the %dx%d identity, starting from basis %v",
			p.NumConstraints(), p.NumConstraints(), basis)
		if err := p.SetBasis(basis); err != nil {
			return nil, err
		}

	default:
		res.PhaseOne = true
		basis, feasible, err := s.phaseOne(p, res)
		if err != nil {
			return nil, errors.Wrap(err, "phase 1")
		}
		if !feasible {
			res.Status = Infeasible
			return res, nil
		}
		s.log.Infof("starting phase 2 from basis %v", basis)
		if err := p.SetBasis(basis); err != nil {
			return nil, errors.Wrap(err, "phase 2 basis")
		}
	}

	status, iters, entering, err := s.Run(p)
	res.Iterations[1] = iters
	if err != nil {
		return nil, errors.Wrap(err, "phase 2")
	}

	res.Status = status
	res.Entering = entering
	res.Objective = p.Objective()
	res.Basis = p.BasisIndices()
	res.X = p.Solution()
	res.Values = make(map[int]float64, len(res.Basis))
	for _, j := range res.Basis {
		res.Values[j] = res.X[j-1]
	}
	return res, nil
}

// BuildArtificialProblem returns the phase 1 problem of p: the original
// variables with cost 0, one artificial variable with cost 1 per unit vector
// missing from the constraint matrix, and a basis made of the identity columns
// already present followed by the artificial columns.
func BuildArtificialProblem(p *model.Problem) (*model.Problem, error) {
	n, m := p.NumVariables(), p.NumConstraints()
	present := p.IdentityColumns()
	missing := p.MissingUnits()
	if len(missing) == 0 {
		return nil, errors.New("simplex: constraint matrix already contains the identity")
	}

	costs := make([]float64, n+len(missing))
	for j := n; j < len(costs); j++ {
		costs[j] = 1
	}
	cost, err := matrix.NewColumn(costs...)
	if err != nil {
		return nil, err
	}

	id, err := matrix.Identity(m)
	if err != nil {
		return nil, err
	}
	artificial, err := id.SubmatrixByColumns(missing)
	if err != nil {
		return nil, err
	}
	tech, err := p.Tech().HConcat(artificial)
	if err != nil {
		return nil, err
	}

	basis := make([]int, 0, m)
	for _, ic := range present {
		basis = append(basis, ic.Column)
	}
	for k := range missing {
		basis = append(basis, n+k+1)
	}

	return model.NewWithBasis(cost, tech, p.RHS(), basis)
}

// phaseOne minimizes the sum of the artificial variables and returns the
// optimal basis when no artificial variable is left in it.
func (s *Solver) phaseOne(p *model.Problem, res *Result) ([]int, bool, error) {
	n := p.NumVariables()
	art, err := BuildArtificialProblem(p)
	if err != nil {
		return nil, false, err
	}
	s.log.Infof("starting phase 1 with %d artificial variables, basis %v",
		art.NumVariables()-n, art.BasisIndices())

	status, iters, _, err := s.Run(art)
	res.Iterations[0] = iters
	if err != nil {
		return nil, false, err
	}
	if status != Optimal {
		return nil, false, errors.Errorf("simplex: phase 1 ended %v", status)
	}

	res.ArtificialObjective = art.Objective()
	if s.driveOut && math.Abs(res.ArtificialObjective) <= s.tolerance {
		if err := s.driveOutArtificials(art, n); err != nil {
			return nil, false, err
		}
	}

	res.Basis = art.BasisIndices()
	for _, j := range res.Basis {
		if j > n {
			s.log.Infof("artificial variable x%d is still in the optimal phase 1 basis, the problem is infeasible", j)
			return nil, false, nil
		}
	}
	return res.Basis, true, nil
}

// driveOutArtificials pivots each zero-valued artificial variable out of the
// basis against an original column with a nonzero entry in its row of
// B^-1 A. Rows where no such column exists keep their artificial variable.
func (s *Solver) driveOutArtificials(art *model.Problem, n int) error {
	for slot := 0; slot < art.NumConstraints(); slot++ {
		a := art.BasisIndices()[slot]
		if a <= n {
			continue
		}

		for _, j := range art.OutBasisIndices() {
			if j > n {
				continue
			}
			y, err := art.Direction(j)
			if err != nil {
				return err
			}
			v, _ := y.At(slot+1, 1)
			if math.Abs(v) <= s.tolerance {
				continue
			}
			if err := s.Pivot(art, j, a); err != nil {
				return err
			}
			s.log.Debugf("drove artificial x%d out of the basis, x%d enters", a, j)
			break
		}
	}
	return nil
}
