package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptySample   = fmt.Errorf("%w: empty sample", ErrInvalidInput)
	ErrSimulations   = fmt.Errorf("%w: simulation count must be at least 1", ErrInvalidInput)
	ErrInvalidNumber = fmt.Errorf("%w: sample value is not a finite number", ErrInvalidInput)

	// Numeric errors
	ErrDegenerateVariance = errors.New("degenerate variance")
)

// Error constructors with context
func NewEmptySampleError(name string) error {
	return fmt.Errorf("%w: %s", ErrEmptySample, name)
}

func NewSimulationCountError(n int) error {
	return fmt.Errorf("%w: got %d", ErrSimulations, n)
}

func NewInvalidNumberError(name string, index int, value float64) error {
	return fmt.Errorf("%w: %s[%d] = %v", ErrInvalidNumber, name, index, value)
}

func NewDegenerateVarianceError(p1, pHat float64) error {
	return fmt.Errorf("%w: p_1=%.6f pooled=%.6f", ErrDegenerateVariance, p1, pHat)
}

// Error checking helpers
func IsInvalidInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsDegenerateVarianceError(err error) bool {
	return errors.Is(err, ErrDegenerateVariance)
}
