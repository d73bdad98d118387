package l1math

import "errors"

// Error kinds shared by all vision layers. Callers wrap them with context
// using fmt.Errorf("...: %w", ErrX) and test them with errors.Is.
var (
	// ErrInvalidArgument reports a rejected constructor or setter input:
	// non-positive dimensions, a reduction factor outside (0, 1), a buffer
	// of the wrong channel layout, or a coordinate outside the grid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSizeMismatch reports merge operands whose grids or masks do not
	// share the same shape. The merge is not applied.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrDegenerate reports a computation that has no meaningful result
	// for the given geometry, such as inverting a singular covariance.
	ErrDegenerate = errors.New("degenerate geometry")
)
