package interpolate

import (
	"errors"
	"fmt"
)

var (
	// ErrDivision is returned when a bracketing segment has two identical
	// independent breakpoints.
	ErrDivision = errors.New("division by zero: segment has duplicate breakpoints")
	// ErrAxis is returned when the axis argument of NewTwice is not 0 or 1.
	ErrAxis = errors.New("axis must be 0 or 1")
)

// InterpolationError is returned when a value does not fall between any pair
// of adjacent breakpoints.
type InterpolationError struct {
	Value float64
	// Lo and Hi are the smallest and largest breakpoints of the curve.
	Lo, Hi float64
}

func (e *InterpolationError) Error() string {
	return fmt.Sprintf(
		"Value %g does not fall in any of the ranges of [%g, %g].",
		e.Value, e.Lo, e.Hi,
	)
}

// LengthError is returned when sequences which must be parallel have
// different lengths, or when a curve has fewer than two breakpoints.
type LengthError struct {
	Msg string
}

func (e *LengthError) Error() string { return e.Msg }

func lengthErrorf(format string, args ...interface{}) error {
	return &LengthError{fmt.Sprintf(format, args...)}
}
