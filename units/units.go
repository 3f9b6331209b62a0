/*package units contains tagged values for the unit conventions used by
building-code figures (angles in degrees, roof slopes as rise over 12 inches,
areas plotted on logarithmic axes) and the conversions which move them into
the space a curve is interpolated in.
*/
package units

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies how a raw value is converted into curve space.
type Kind int

const (
	// Linear values are interpolated as given.
	Linear Kind = iota
	// Deg values are angles in degrees, interpolated in radians.
	Deg
	// SlopeIn12 values are a rise in inches over a 12 inch run, interpolated
	// as the corresponding angle in radians.
	SlopeIn12
	// Log10 values are interpolated as their base-10 logarithm.
	Log10
)

var kindNames = []string{"Linear", "Deg", "SlopeIn12", "Log"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind with the given name. Matching is case insensitive
// and accepts a few common spellings ("degrees", "log10", "slope").
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear", "none":
		return Linear, nil
	case "deg", "degree", "degrees":
		return Deg, nil
	case "slopein12", "slope", "slope_in_12":
		return SlopeIn12, nil
	case "log", "log10":
		return Log10, nil
	}
	return Linear, fmt.Errorf("Unrecognized unit kind '%s'.", name)
}

// Forward converts a raw value into curve space.
func (k Kind) Forward(x float64) float64 {
	switch k {
	case Deg:
		return x * math.Pi / 180
	case SlopeIn12:
		return math.Atan(x / 12)
	case Log10:
		return math.Log10(x)
	}
	return x
}

// Inverse converts a curve space value back into the raw unit.
func (k Kind) Inverse(x float64) float64 {
	switch k {
	case Deg:
		return x * 180 / math.Pi
	case SlopeIn12:
		return 12 * math.Tan(x)
	case Log10:
		return math.Pow(10, x)
	}
	return x
}

// Value is a raw number tagged with the unit convention it was published in.
type Value struct {
	Raw  float64
	Kind Kind
}

// Canonical returns the value in curve space: radians for angles and slopes,
// log10 for logarithmic quantities.
func (v Value) Canonical() float64 { return v.Kind.Forward(v.Raw) }

func (v Value) String() string {
	if v.Kind == Linear {
		return fmt.Sprintf("%g", v.Raw)
	}
	return fmt.Sprintf("%s(%g)", v.Kind, v.Raw)
}

// Convenience constructors.

func DegValue(x float64) Value       { return Value{x, Deg} }
func SlopeIn12Value(x float64) Value { return Value{x, SlopeIn12} }
func LogValue(x float64) Value       { return Value{x, Log10} }

// Canonicals converts a sequence of raw values of the same kind into curve
// space. If out is given, the result is written there.
func Canonicals(k Kind, xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = k.Forward(x)
	}
	return out[0]
}
