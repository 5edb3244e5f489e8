package sensitivity

import "errors"

var (
	// ErrNonDifferentiable is returned when the solved state went through a
	// clamped branch, or carries no data, so its analytic partials are invalid.
	ErrNonDifferentiable = errors.New("sensitivity: solved state is not differentiable")

	// ErrInvalidCorrelation is returned for a correlation matrix that is not
	// a 17x17 symmetric positive semidefinite matrix with a unit diagonal.
	ErrInvalidCorrelation = errors.New("sensitivity: invalid correlation matrix")

	// ErrInvalidStdDev is returned for negative or non-finite standard deviations.
	ErrInvalidStdDev = errors.New("sensitivity: invalid standard deviation")
)
