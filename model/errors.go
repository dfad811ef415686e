package model

import "github.com/pkg/errors"

var (
	ErrShape           = errors.New("model: inconsistent problem dimensions")
	ErrNegativeRHS     = errors.New("model: rhs vector has a negative component")
	ErrInvalidBasis    = errors.New("model: invalid basis indices")
	ErrSingularBasis   = errors.New("model: basis matrix is singular")
	ErrInfeasibleBasis = errors.New("model: basic solution has a negative component")
	ErrIndex           = errors.New("model: variable index out of range")
	ErrInBasis         = errors.New("model: variable is in basis")
	ErrNotInBasis      = errors.New("model: variable is not in basis")
	ErrNoBasis         = errors.New("model: no basis has been established")
)
