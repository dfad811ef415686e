package simplex

import (
	"math"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
	"q.log/twophase/model"
)

var log = logging.Logger("simplex")

// ErrIterationLimit is returned when a run reaches the iteration cap, most
// likely because the pivots cycle on a degenerate basis.
var ErrIterationLimit = errors.New("simplex: iteration limit reached")

// Solver runs the revised simplex method on a model.Problem.
type Solver struct {
	maxIterations int
	tolerance     float64
	driveOut      bool
	log           *logging.ZapEventLogger
}

func New(opts ...Option) *Solver {
	s := &Solver{
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
		log:           log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OptimalityTest prices every non-basic variable, in ascending order, and
// returns the one with the largest z_j - c_j (first one on ties). The basis
// is optimal when that largest value is <= tolerance.
func (s *Solver) OptimalityTest(p *model.Problem) (entering int, optimal bool, err error) {
	maxReduced := math.Inf(-1)
	entering = -1
	for _, j := range p.OutBasisIndices() {
		rc, err := p.ReducedCost(j)
		if err != nil {
			return -1, false, err
		}
		s.log.Debugf("z%d - c%d = %v", j, j, rc)
		if rc > maxReduced {
			maxReduced = rc
			entering = j
		}
	}

	if entering == -1 || maxReduced <= s.tolerance {
		return -1, true, nil
	}
	return entering, false, nil
}

// RatioTest computes y = B^-1 * A_entering and returns the basic variable at
// the slot minimizing x_i / y_i over y_i > tolerance (first slot on ties),
// with that ratio. unbounded is true when no slot qualifies.
func (s *Solver) RatioTest(p *model.Problem, entering int) (exiting int, ratio float64, unbounded bool, err error) {
	in, err := p.IsInBasis(entering)
	if err != nil {
		return -1, 0, false, err
	}
	if in {
		return -1, 0, false, errors.Wrapf(model.ErrInBasis, "ratio test for x%d", entering)
	}

	y, err := p.Direction(entering)
	if err != nil {
		return -1, 0, false, err
	}
	xb := p.XBasis().Data()
	yv := y.Data()
	basis := p.BasisIndices()

	minRatio := math.Inf(1)
	exiting = -1
	for i := range basis {
		s.log.Debugf("y%d,%d = %v", i+1, entering, yv[i])
		if yv[i] <= s.tolerance {
			continue
		}
		r := xb[i] / yv[i]
		if r < minRatio {
			minRatio = r
			exiting = basis[i]
		}
	}

	if exiting == -1 {
		return -1, 0, true, nil
	}
	return exiting, minRatio, false, nil
}

// Pivot swaps entering into the slot of exiting and rebuilds the basis state.
func (s *Solver) Pivot(p *model.Problem, entering, exiting int) error {
	if err := p.Exchange(entering, exiting); err != nil {
		return errors.Wrapf(err, "pivot x%d -> x%d", exiting, entering)
	}
	return nil
}

// Run iterates optimality test, ratio test and pivot until the basis is
// optimal or the problem is found unbounded. p must already have a basis.
// It returns the number of pivots performed and, for Unbounded, the
// entering variable that triggered it.
func (s *Solver) Run(p *model.Problem) (status Status, iterations int, entering int, err error) {
	if !p.HasBasis() {
		return Optimal, 0, -1, model.ErrNoBasis
	}

	for iterations = 0; ; iterations++ {
		s.log.Debugf("iteration %d: basis %v, z = %v", iterations+1, p.BasisIndices(), p.Objective())

		entering, optimal, err := s.OptimalityTest(p)
		if err != nil {
			return Optimal, iterations, -1, err
		}
		if optimal {
			s.log.Debugf("basis %v is optimal, z = %v", p.BasisIndices(), p.Objective())
			return Optimal, iterations, -1, nil
		}

		exiting, ratio, unbounded, err := s.RatioTest(p, entering)
		if err != nil {
			return Optimal, iterations, -1, err
		}
		if unbounded {
			s.log.Infof("unbounded: x%d has no positive entry in B^-1 A_%d", entering, entering)
			return Unbounded, iterations, entering, nil
		}

		if iterations == s.maxIterations {
			return Optimal, iterations, -1, errors.Wrapf(ErrIterationLimit, "%d pivots", iterations)
		}

		s.log.Debugf("x%d leaves, x%d enters with value %v", exiting, entering, ratio)
		if err := s.Pivot(p, entering, exiting); err != nil {
			return Optimal, iterations, -1, err
		}
	}
}
