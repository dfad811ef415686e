package simplex

import (
	logging "github.com/ipfs/go-log/v2"
)

const (
	// DefaultMaxIterations bounds the pivots of a single simplex run.
	DefaultMaxIterations = 10000

	// DefaultTolerance is used by the optimality test (max reduced cost <= tol)
	// and by the ratio test (only y_i > tol rows take part).
	DefaultTolerance = 1e-9
)

type Option func(*Solver)

func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

func WithTolerance(eps float64) Option {
	return func(s *Solver) {
		if eps >= 0 {
			s.tolerance = eps
		}
	}
}

// WithDriveOut lets the two-phase solver pivot zero-valued artificial
// variables out of the phase 1 basis instead of reporting infeasibility.
func WithDriveOut(enabled bool) Option {
	return func(s *Solver) {
		s.driveOut = enabled
	}
}

func WithLogger(l *logging.ZapEventLogger) Option {
	return func(s *Solver) {
		if l != nil {
			s.log = l
		}
	}
}
