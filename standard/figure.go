package standard

import (
	"fmt"
	"strings"

	"github.com/phil-mansfield/asce7/math/interpolate"
)

// CurveDef describes one named curve of a Figure.
type CurveDef struct {
	Name                   string
	Independent, Dependent interpolate.Axis
}

// Figure is a building code figure made up of named piecewise curves, each
// with its own axes.
type Figure struct {
	Title  string
	names  []string
	curves map[string]*interpolate.Curve
}

// NewFigure builds a Figure from its curves. Names must be unique.
func NewFigure(title string, defs []CurveDef, opts ...interpolate.Option) (*Figure, error) {
	fig := &Figure{
		Title:  title,
		names:  make([]string, 0, len(defs)),
		curves: make(map[string]*interpolate.Curve, len(defs)),
	}
	for _, def := range defs {
		if _, ok := fig.curves[def.Name]; ok {
			return nil, &LabelError{def.Name, "duplicated"}
		}
		c, err := interpolate.NewCurve(def.Independent, def.Dependent, opts...)
		if err != nil {
			return nil, fmt.Errorf("Curve '%s': %w", def.Name, err)
		}
		fig.names = append(fig.names, def.Name)
		fig.curves[def.Name] = c
	}
	return fig, nil
}

// Names returns the curve names in declaration order.
func (fig *Figure) Names() []string { return fig.names }

// Curve returns the curve with the given name.
func (fig *Figure) Curve(name string) (*interpolate.Curve, error) {
	c, ok := fig.curves[name]
	if !ok {
		return nil, &LabelError{name, "not a curve of this figure"}
	}
	return c, nil
}

// Lookup evaluates the named curve at x.
func (fig *Figure) Lookup(name string, x float64) (float64, error) {
	c, err := fig.Curve(name)
	if err != nil {
		return 0, err
	}
	return c.Eval(x)
}

// Interpolant returns the named curve as an Interpolant of one coordinate.
func (fig *Figure) Interpolant(name string) (Interpolant, error) {
	c, err := fig.Curve(name)
	if err != nil {
		return nil, err
	}
	return func(coords ...float64) (float64, error) {
		if len(coords) != 1 {
			return 0, &ArityError{1, len(coords)}
		}
		return c.Eval(coords[0])
	}, nil
}

func (fig *Figure) String() string {
	parts := make([]string, len(fig.names))
	for i, name := range fig.names {
		parts[i] = fmt.Sprintf("%s=%s", name, fig.curves[name])
	}
	return fmt.Sprintf("Figure(%s)", strings.Join(parts, ", "))
}
