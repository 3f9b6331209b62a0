package interpolate

import (
	"fmt"

	"github.com/phil-mansfield/asce7/units"
)

// Axis is a sequence of breakpoints along one independent or dependent
// variable, together with the transforms which move values into and out of
// the space the curve is drawn in. Nil transforms are the identity.
type Axis struct {
	Values    []float64
	ToCurve   func(float64) float64
	FromCurve func(float64) float64
}

// NewAxis returns an Axis with identity transforms.
func NewAxis(values ...float64) Axis { return Axis{Values: values} }

// UnitAxis returns an Axis whose transforms convert between the raw unit k
// and curve space, e.g. from an area to its log10.
func UnitAxis(k units.Kind, values ...float64) Axis {
	return Axis{Values: values, ToCurve: k.Forward, FromCurve: k.Inverse}
}

// To moves x into curve space.
func (ax Axis) To(x float64) float64 {
	if ax.ToCurve == nil {
		return x
	}
	return ax.ToCurve(x)
}

// From moves x out of curve space.
func (ax Axis) From(x float64) float64 {
	if ax.FromCurve == nil {
		return x
	}
	return ax.FromCurve(x)
}

// CurveValues returns the breakpoints of the axis in curve space.
func (ax Axis) CurveValues() []float64 {
	out := make([]float64, len(ax.Values))
	for i, x := range ax.Values {
		out[i] = ax.To(x)
	}
	return out
}

// Len returns the number of breakpoints.
func (ax Axis) Len() int { return len(ax.Values) }

///////////
// Curve //
///////////

// Curve is a single piecewise-linear function drawn between an independent and
// a dependent Axis. Both axes are transformed into curve space before
// interpolating and results are transformed back out of it.
type Curve struct {
	Independent, Dependent Axis
	lin                    *Linear
}

// NewCurve creates a Curve. The two axes must have the same length, which
// must be at least two.
func NewCurve(independent, dependent Axis, opts ...Option) (*Curve, error) {
	lin, err := NewLinear(
		independent.CurveValues(), dependent.CurveValues(), opts...,
	)
	if err != nil {
		return nil, err
	}
	return &Curve{independent, dependent, lin}, nil
}

// Eval returns the value of the dependent variable at x.
func (c *Curve) Eval(x float64) (float64, error) {
	v, err := c.lin.Eval(c.Independent.To(x))
	if err != nil {
		return 0, err
	}
	return c.Dependent.From(v), nil
}

// EvalAll evaluates the curve at every value in xs. If an output array is
// given, the output is written to that array.
func (c *Curve) EvalAll(xs []float64, out ...[]float64) ([]float64, error) {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		v, err := c.Eval(x)
		if err != nil {
			return nil, err
		}
		out[0][i] = v
	}
	return out[0], nil
}

func (c *Curve) String() string {
	return fmt.Sprintf("(%g, %g)", c.Independent.Values, c.Dependent.Values)
}
