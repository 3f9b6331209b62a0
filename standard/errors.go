package standard

import (
	"fmt"
)

// AxisCountError is returned when a table is given an unsupported number of
// independent axes.
type AxisCountError struct {
	N int
}

func (e *AxisCountError) Error() string {
	return fmt.Sprintf("Only 1 or 2 indexes supported, but %d were given.", e.N)
}

// LabelError is returned for duplicate, missing, or unknown labels.
type LabelError struct {
	Label  string
	Reason string
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("Label '%s' is %s.", e.Label, e.Reason)
}

// ArityError is returned when an Interpolant is called with the wrong number
// of coordinates.
type ArityError struct {
	Want, Got int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf(
		"Interpolant takes %d coordinate(s), but %d were given.", e.Want, e.Got,
	)
}
