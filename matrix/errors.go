package matrix

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned when a matrix would have less than one row or column.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be >= 1")

	// ErrOutOfRange is returned for any 1-based index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare is returned by Det and Inverse on non-square input.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNearSingular is returned by Inverse when |det| < 1e-6 * dim.
	ErrNearSingular = errors.New("matrix: matrix is (almost) singular")

	// ErrDuplicateIndex is returned when a column selection names a column twice.
	ErrDuplicateIndex = errors.New("matrix: duplicate column index")

	// ErrBadLength is returned when a backing slice does not match rows*cols.
	ErrBadLength = errors.New("matrix: data length does not match dimensions")
)
