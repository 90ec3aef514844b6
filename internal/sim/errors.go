package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates NaN or Inf entered the state vector.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive timestep collapsed below
	// its minimum without meeting the tolerance.
	ErrStepTooSmall = errors.New("sim: adaptive timestep below minimum")
)

// StepError wraps an error with the step it occurred on.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
