/*package interpolate contains piecewise-linear interpolators for curves and
families of curves read off published tables and figures.

Every interpolator is immutable after construction and may be evaluated from
multiple goroutines at once.
*/
package interpolate

import (
	"fmt"
	"strings"
)

type Interpolator interface {
	Eval(x float64) (float64, error)
	EvalAll(xs []float64, out ...[]float64) ([]float64, error)
}

var (
	_ Interpolator = &Linear{}
	_ Interpolator = &Curve{}
)

type BiInterpolator interface {
	Eval(x, y float64) (float64, error)
	EvalAll(xs, ys []float64, out ...[]float64) ([]float64, error)

	EvalAllX(x float64, ys []float64, out ...[]float64) ([]float64, error)
	EvalAllY(xs []float64, y float64, out ...[]float64) ([]float64, error)
}

var (
	_ BiInterpolator = &Twice{}
)

///////////////////
// Bounds policy //
///////////////////

type boundsMode int

const (
	raise boundsMode = iota
	fill
	nearest
)

// Bounds controls what an interpolator does with a value that falls outside
// of its breakpoints. The zero value returns an InterpolationError.
type Bounds struct {
	mode boundsMode
	fill float64
}

// Option modifies the Bounds of an interpolator.
type Option func(*Bounds)

// BoundsError makes out-of-range values return an InterpolationError. This is
// the default.
func BoundsError() Option { return func(b *Bounds) { b.mode = raise } }

// Fill makes out-of-range values evaluate to v.
func Fill(v float64) Option {
	return func(b *Bounds) { b.mode, b.fill = fill, v }
}

// Extrapolate makes out-of-range values evaluate to the value at the nearest
// breakpoint.
func Extrapolate() Option { return func(b *Bounds) { b.mode = nearest } }

// NewBounds applies opts, in order, to the default Bounds.
func NewBounds(opts ...Option) Bounds {
	b := Bounds{}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Option returns an Option which reproduces b.
func (b Bounds) Option() Option {
	return func(dst *Bounds) { *dst = b }
}

func (b Bounds) String() string {
	switch b.mode {
	case fill:
		return fmt.Sprintf("fill(%g)", b.fill)
	case nearest:
		return "extrapolate"
	}
	return "error"
}

// ParseBounds returns the Option named by mode: "error", "extrapolate" or
// "fill". fillValue is only used by "fill".
func ParseBounds(mode string, fillValue float64) (Option, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "error":
		return BoundsError(), nil
	case "extrapolate", "nearest":
		return Extrapolate(), nil
	case "fill":
		return Fill(fillValue), nil
	}
	return nil, fmt.Errorf(
		"Unrecognized bounds mode '%s'. Recognized modes are 'error', "+
			"'extrapolate', and 'fill'.", mode,
	)
}
