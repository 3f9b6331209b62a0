package standard

import (
	"fmt"
	"sort"

	"github.com/phil-mansfield/asce7/math/grid"
	"github.com/phil-mansfield/asce7/math/interpolate"
)

// Param is an argument to InterpDict: either a Uniform array shared by every
// key, or a Keyed set of arrays with one entry per key.
type Param interface {
	at(key string) grid.Array
	keys() []string
}

// Uniform is a Param which is the same for every key.
type Uniform struct {
	Value grid.Array
}

// Keyed is a Param with a separate array for every key.
type Keyed map[string]grid.Array

func (u Uniform) at(string) grid.Array { return u.Value }
func (u Uniform) keys() []string       { return nil }

func (k Keyed) at(key string) grid.Array { return k[key] }
func (k Keyed) keys() []string {
	out := make([]string, 0, len(k))
	for key := range k {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// InterpDict builds one Interpolant per key from parameters which may differ
// between keys, e.g. one grid of coefficients per roof zone on shared tilt and
// area axes.
//
// At least one of x, y, and z must be Keyed, and every Keyed argument must
// have the same keys. If z is nil, each key gets a one-coordinate curve of y
// against x. Otherwise each key gets a Twice interpolator built from x, y, z
// and axis (see interpolate.NewTwice).
func InterpDict(
	x, y, z Param, axis int, opts ...interpolate.Option,
) (map[string]Interpolant, error) {
	var keys []string
	for _, p := range []Param{x, y, z} {
		if p == nil {
			continue
		}
		pk := p.keys()
		if pk == nil {
			continue
		}
		if keys == nil {
			keys = pk
		} else if !sameKeys(keys, pk) {
			return nil, &LabelError{
				fmt.Sprint(pk), "not the same key set as the other mappings",
			}
		}
	}
	if keys == nil {
		return nil, &LabelError{"", "missing: at least one mapping argument is required"}
	}
	if x == nil || y == nil {
		return nil, fmt.Errorf("Both x and y must be given to InterpDict.")
	}

	out := make(map[string]Interpolant, len(keys))
	for _, key := range keys {
		var (
			f   Interpolant
			err error
		)
		if z == nil {
			f, err = dictCurve(x.at(key), y.at(key), opts)
		} else {
			var tw *interpolate.Twice
			tw, err = interpolate.NewTwice(x.at(key), y.at(key), z.at(key), axis, opts...)
			if err == nil {
				f = twiceInterpolant(tw)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("Key '%s': %w", key, err)
		}
		out[key] = f
	}
	return out, nil
}

func dictCurve(x, y grid.Array, opts []interpolate.Option) (Interpolant, error) {
	if x.Kind() != grid.Vector || y.Kind() != grid.Vector {
		return nil, &grid.ShapeError{
			Msg: "Curves without z need 1d x and y sequences.",
		}
	}
	lin, err := interpolate.NewLinear(x.Values(), y.Values(), opts...)
	if err != nil {
		return nil, err
	}
	return linearInterpolant(lin), nil
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
