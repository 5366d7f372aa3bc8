package ode2

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerate indicates initial conditions that do not determine C1, C2.
	ErrDegenerate = errors.New("ode2: degenerate initial conditions")

	// ErrInvalidInput indicates a NaN or infinite coefficient or condition.
	ErrInvalidInput = errors.New("ode2: coefficients and conditions must be finite")
)

// DegenerateError reports a singular or ill-conditioned 2x2 system.
type DegenerateError struct {
	Case Case
	Cond float64
	Err  error
}

func (e *DegenerateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s, cond=%.3g): %v", ErrDegenerate, e.Case, e.Cond, e.Err)
	}
	return fmt.Sprintf("%s (%s, cond=%.3g)", ErrDegenerate, e.Case, e.Cond)
}

func (e *DegenerateError) Unwrap() error {
	return ErrDegenerate
}
