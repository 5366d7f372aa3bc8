package plane

import (
	"errors"
	"fmt"
)

// Domain errors for plotting operations.
var (
	// ErrOutOfDomain indicates an initial point outside the horizontal bounds.
	ErrOutOfDomain = errors.New("plane: initial point outside domain")

	// ErrInvalidStep indicates a step size that is zero, negative or not finite.
	ErrInvalidStep = errors.New("plane: step size must be positive and finite")

	// ErrInvalidBounds indicates min >= max on an axis.
	ErrInvalidBounds = errors.New("plane: invalid bounds")
)

// BoundsError wraps ErrInvalidBounds with the offending axis.
type BoundsError struct {
	Axis     string
	Min, Max float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %s range [%g, %g]", ErrInvalidBounds, e.Axis, e.Min, e.Max)
}

func (e *BoundsError) Unwrap() error {
	return ErrInvalidBounds
}
