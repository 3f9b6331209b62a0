package interpolate

import (
	"fmt"

	"github.com/phil-mansfield/asce7/math/grid"
)

//////////////////////////
// Twice Implementation //
//////////////////////////

// Twice interpolates a function of two variables, z = f(x, y), which is
// published as a family of curves. Each curve is a row: a piecewise-linear
// function of the column variable drawn at one value of the row variable.
// Evaluating interpolates every row at the column coordinate, then
// interpolates those results along the row breakpoints.
//
// The rows do not need to share column breakpoints, so charts drawn as
// overlapping curves (jagged grids) are handled the same way as rectangular
// tables.
type Twice struct {
	rowBreaks []float64
	rows      []*Linear
	// rowIsX is true when x is the row coordinate and y the column coordinate.
	rowIsX bool
	bounds Bounds
}

// NewTwice creates a Twice interpolator from three arrays. Exactly one of
// x, y, and z must be 2d and the other two must be 1d.
//
//   - If z is 2d, the rows of z vary along x when axis is 0 (so z has shape
//     (len(x), len(y))) and along y when axis is 1 (shape (len(y), len(x))).
//   - If y is 2d, the row variable is x and each row maps that row's own y
//     breakpoints onto z. axis is 0 if the rows of y vary along x (shape
//     (len(x), len(z))) and 1 if its columns do (shape (len(z), len(x))).
//   - If x is 2d, the same holds with x and y swapped: the row variable is y
//     and each row maps its own x breakpoints onto z.
//
// The bounds options apply independently to both interpolation passes.
func NewTwice(x, y, z grid.Array, axis int, opts ...Option) (*Twice, error) {
	if axis != 0 && axis != 1 {
		return nil, ErrAxis
	}

	n2d := 0
	for _, a := range []grid.Array{x, y, z} {
		if a.Dims() == 2 {
			n2d++
		}
	}
	if n2d == 0 {
		return nil, &grid.ShapeError{Msg: "A 2d sequence or array is required."}
	} else if n2d > 1 {
		return nil, &grid.ShapeError{Msg: "Two 1d sequences or arrays are required."}
	}

	var (
		rowArr, colArr []float64
		inner          grid.Array
		dependent2d    bool
		rowIsX         bool
	)

	switch {
	case z.Dims() == 2:
		if x.Dims() != 1 || y.Dims() != 1 {
			return nil, &grid.ShapeError{Msg: "Two 1d sequences or arrays are required."}
		}
		inner, dependent2d = z, true
		if axis == 0 {
			rowArr, colArr, rowIsX = x.Values(), y.Values(), true
		} else {
			rowArr, colArr, rowIsX = y.Values(), x.Values(), false
		}
	case y.Dims() == 2:
		if x.Dims() != 1 || z.Dims() != 1 {
			return nil, &grid.ShapeError{Msg: "Two 1d sequences or arrays are required."}
		}
		inner, rowArr, colArr, rowIsX = y, x.Values(), z.Values(), true
		if axis == 1 {
			inner = inner.Transpose()
		}
	default:
		if y.Dims() != 1 || z.Dims() != 1 {
			return nil, &grid.ShapeError{Msg: "Two 1d sequences or arrays are required."}
		}
		inner, rowArr, colArr, rowIsX = x, y.Values(), z.Values(), false
		if axis == 1 {
			inner = inner.Transpose()
		}
	}

	if nr, nc := inner.Shape(); nr != len(rowArr) || nc != len(colArr) {
		return nil, &grid.ShapeError{Msg: fmt.Sprintf(
			"Shape of inner 2d array, (%d, %d), does not match sizes of "+
				"outer arrays, (%d, %d), with first dependent at axis %d.",
			nr, nc, len(rowArr), len(colArr), axis,
		)}
	}

	bounds := NewBounds(opts...)
	rows := make([]*Linear, len(rowArr))
	for i, row := range inner.Rows() {
		var err error
		if dependent2d {
			rows[i], err = NewLinear(colArr, row, bounds.Option())
		} else {
			rows[i], err = NewLinear(row, colArr, bounds.Option())
		}
		if err != nil {
			return nil, fmt.Errorf("Row %d: %w", i, err)
		}
	}

	return newTwice(rowArr, rows, rowIsX, bounds)
}

// NewJaggedTwice creates a Twice interpolator from a family of curves with
// their own column breakpoints. Row i is the curve mapping ys[i] onto zs[i] at
// x = xs[i], so that Eval(x, y) interpolates along y first and along x second.
func NewJaggedTwice(
	xs []float64, ys, zs [][]float64, opts ...Option,
) (*Twice, error) {
	if len(xs) != len(ys) || len(xs) != len(zs) {
		return nil, lengthErrorf(
			"len(xs) = %d, but len(ys) = %d and len(zs) = %d.",
			len(xs), len(ys), len(zs),
		)
	}

	bounds := NewBounds(opts...)
	rows := make([]*Linear, len(xs))
	for i := range xs {
		var err error
		rows[i], err = NewLinear(ys[i], zs[i], bounds.Option())
		if err != nil {
			return nil, fmt.Errorf("Curve at x = %g: %w", xs[i], err)
		}
	}

	return newTwice(xs, rows, true, bounds)
}

func newTwice(
	rowBreaks []float64, rows []*Linear, rowIsX bool, bounds Bounds,
) (*Twice, error) {
	if len(rowBreaks) < 2 {
		return nil, lengthErrorf(
			"A family of curves needs at least two rows, but %d were given.",
			len(rowBreaks),
		)
	}
	return &Twice{rowBreaks, rows, rowIsX, bounds}, nil
}

// Rows returns the number of curves in the family.
func (tw *Twice) Rows() int { return len(tw.rows) }

// RowBreaks returns the breakpoints of the row variable.
func (tw *Twice) RowBreaks() []float64 { return tw.rowBreaks }

// RowIsX returns true if x is the row variable.
func (tw *Twice) RowIsX() bool { return tw.rowIsX }

// Eval returns the interpolated value at (x, y).
func (tw *Twice) Eval(x, y float64) (float64, error) {
	rowV, colV := y, x
	if tw.rowIsX {
		rowV, colV = x, y
	}

	temp := make([]float64, len(tw.rows))
	for i, row := range tw.rows {
		v, err := row.Eval(colV)
		if err != nil {
			return 0, err
		}
		temp[i] = v
	}

	lin := &Linear{xs: tw.rowBreaks, vals: temp, bounds: tw.bounds}
	return lin.Eval(rowV)
}

// EvalAll evaluates the interpolator at all the given (x, y) pairs. If an
// output array is given, the output is written to that array (the array is
// still returned as a convenience).
func (tw *Twice) EvalAll(xs, ys []float64, out ...[]float64) ([]float64, error) {
	if len(xs) != len(ys) {
		return nil, lengthErrorf(
			"len(xs) = %d, but len(ys) = %d.", len(xs), len(ys),
		)
	}
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		v, err := tw.Eval(xs[i], ys[i])
		if err != nil {
			return nil, err
		}
		out[0][i] = v
	}
	return out[0], nil
}

// EvalAllX evaluates the interpolator at a fixed x for every value in ys.
func (tw *Twice) EvalAllX(x float64, ys []float64, out ...[]float64) ([]float64, error) {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(ys))}
	}
	for i, y := range ys {
		v, err := tw.Eval(x, y)
		if err != nil {
			return nil, err
		}
		out[0][i] = v
	}
	return out[0], nil
}

// EvalAllY evaluates the interpolator at a fixed y for every value in xs.
func (tw *Twice) EvalAllY(xs []float64, y float64, out ...[]float64) ([]float64, error) {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		v, err := tw.Eval(x, y)
		if err != nil {
			return nil, err
		}
		out[0][i] = v
	}
	return out[0], nil
}
