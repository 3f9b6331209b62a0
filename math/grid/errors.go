package grid

import (
	"fmt"
)

// ShapeError is returned when arrays have incompatible dimensions.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string { return e.Msg }

// StrictDivisionError is returned when a broadcast factor is not an integer.
type StrictDivisionError struct {
	Num, Den int
}

func (e *StrictDivisionError) Error() string {
	return fmt.Sprintf(
		"Modulo operation resulted in a remainder: %d is not divisible by %d.",
		e.Num, e.Den,
	)
}

// StrictDiv returns num / den, failing if the division leaves a remainder.
func StrictDiv(num, den int) (int, error) {
	if den == 0 || num%den != 0 {
		return 0, &StrictDivisionError{num, den}
	}
	return num / den, nil
}
