/*package standard builds lookups for the parameters that building codes
publish as figures and tables.

Codes often present a figure as several charts, or several tables, each with
several curves or series. The charts are intended to be interpolated between
each other, and a second interpolation happens along the curve or series.
*/
package standard

import (
	"github.com/phil-mansfield/asce7/math/interpolate"
)

// Interpolant evaluates one labelled series. It takes one coordinate for
// tables with a single independent axis and two for tables with two.
type Interpolant func(coords ...float64) (float64, error)

// EvalAll evaluates the Interpolant at every point given by the parallel
// coordinate slices and returns a slice of the same length.
func (f Interpolant) EvalAll(coords ...[]float64) ([]float64, error) {
	if len(coords) == 0 {
		return []float64{}, nil
	}
	n := len(coords[0])
	for _, c := range coords {
		if len(c) != n {
			return nil, &interpolate.LengthError{
				Msg: "Coordinate slices given to EvalAll have different lengths.",
			}
		}
	}

	out := make([]float64, n)
	point := make([]float64, len(coords))
	for i := range out {
		for j := range coords {
			point[j] = coords[j][i]
		}
		v, err := f(point...)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func linearInterpolant(lin *interpolate.Linear) Interpolant {
	return func(coords ...float64) (float64, error) {
		if len(coords) != 1 {
			return 0, &ArityError{1, len(coords)}
		}
		return lin.Eval(coords[0])
	}
}

func twiceInterpolant(tw *interpolate.Twice) Interpolant {
	return func(coords ...float64) (float64, error) {
		if len(coords) != 2 {
			return 0, &ArityError{2, len(coords)}
		}
		return tw.Eval(coords[0], coords[1])
	}
}
