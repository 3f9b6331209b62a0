package interpolate

import (
	"math"
)

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a piecewise-linear interpolator.
type Linear struct {
	xs, vals []float64
	bounds   Bounds
}

// NewLinear creates a linear interpolator for the points xs, which take on
// the values given by vals. xs and vals must have the same length, and that
// length must be at least two.
//
// The breakpoints are not otherwise checked: they may be increasing,
// decreasing, or not ordered at all, but a value is only found if some pair of
// adjacent breakpoints brackets it.
//
// xs and vals must not be modified throughout the lifetime of the Linear.
func NewLinear(xs, vals []float64, opts ...Option) (*Linear, error) {
	if len(xs) != len(vals) {
		return nil, lengthErrorf(
			"Length of input slices are not equal: len(xs) = %d, but "+
				"len(vals) = %d.", len(xs), len(vals),
		)
	} else if len(xs) < 2 {
		return nil, lengthErrorf(
			"A piecewise-linear curve needs at least two points, but %d "+
				"were given.", len(xs),
		)
	}

	return &Linear{xs: xs, vals: vals, bounds: NewBounds(opts...)}, nil
}

// Xs returns the independent breakpoints of the interpolator.
func (lin *Linear) Xs() []float64 { return lin.xs }

// Vals returns the dependent breakpoints of the interpolator.
func (lin *Linear) Vals() []float64 { return lin.vals }

// Bounds returns the out-of-range policy of the interpolator.
func (lin *Linear) Bounds() Bounds { return lin.bounds }

// Eval returns the interpolated value at x.
//
// The segment used is the first pair of adjacent breakpoints, in storage
// order, which contains x; breakpoints themselves count as inside. A
// breakpoint evaluates to exactly its own value.
func (lin *Linear) Eval(x float64) (float64, error) {
	i, ok := lin.bracket(x)
	if !ok {
		return lin.outside(x)
	}

	x1, x2 := lin.xs[i], lin.xs[i+1]
	v1, v2 := lin.vals[i], lin.vals[i+1]

	switch {
	case x1 == x2:
		return 0, ErrDivision
	case x == x1:
		return v1, nil
	case x == x2:
		return v2, nil
	}

	return v1 + (x-x1)*(v2-v1)/(x2-x1), nil
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) ([]float64, error) {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		v, err := lin.Eval(x)
		if err != nil {
			return nil, err
		}
		out[0][i] = v
	}
	return out[0], nil
}

// bracket returns the index of the first segment whose endpoints have x as
// their median.
func (lin *Linear) bracket(x float64) (int, bool) {
	for i := 0; i < len(lin.xs)-1; i++ {
		x1, x2 := lin.xs[i], lin.xs[i+1]
		if (x1 <= x && x <= x2) || (x2 <= x && x <= x1) {
			return i, true
		}
	}
	return -1, false
}

func (lin *Linear) outside(x float64) (float64, error) {
	switch lin.bounds.mode {
	case fill:
		return lin.bounds.fill, nil
	case nearest:
		if math.IsNaN(x) {
			return math.NaN(), nil
		}
		best := 0
		for i := range lin.xs {
			if math.Abs(x-lin.xs[i]) < math.Abs(x-lin.xs[best]) {
				best = i
			}
		}
		return lin.vals[best], nil
	}

	lo, hi := lin.xs[0], lin.xs[0]
	for _, xi := range lin.xs {
		lo, hi = math.Min(lo, xi), math.Max(hi, xi)
	}
	return 0, &InterpolationError{Value: x, Lo: lo, Hi: hi}
}
