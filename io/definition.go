package io

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/asce7/math/grid"
	"github.com/phil-mansfield/asce7/math/interpolate"
	"github.com/phil-mansfield/asce7/standard"
	"github.com/phil-mansfield/asce7/units"
)

// Recognized values of the kind field of a definition file.
const (
	KindStandard = "standard"
	KindFigure   = "figure"
	KindDict     = "dict"
	KindLookup   = "lookup"
)

// ExampleDefinitionFile is a definition file for a two-chart figure with log
// scaled area axis.
const ExampleDefinitionFile = `name: Fig. 30.3-2A GCp
kind: standard
bounds: extrapolate

labels:
  name: zone
  values: [1, 2, 3]

# One chart per tilt, one series per zone, one point per area.
index:
  - name: tilt
    unit: deg
    values: [0, 7]
  - name: area
    unit: log
    values: [1, 10, 100]

data:
  - [[-1.0, -1.0, -0.9], [-1.8, -1.8, -1.1], [-2.8, -2.8, -1.1]]
  - [[-1.0, -0.9, -0.8], [-1.8, -1.6, -1.1], [-2.8, -2.5, -1.1]]
`

// LabelsDefinition names the labels of a standard table.
type LabelsDefinition struct {
	Name   string        `yaml:"name"`
	Values []interface{} `yaml:"values"`
}

// AxisDefinition is one independent axis of a standard table.
type AxisDefinition struct {
	Name   string    `yaml:"name"`
	Unit   string    `yaml:"unit"`
	Values []float64 `yaml:"values"`
}

// Definition is the decoded contents of a table definition file. Which
// fields are used depends on Kind.
type Definition struct {
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"`
	Bounds string  `yaml:"bounds"`
	Fill   float64 `yaml:"fill"`

	// standard
	Labels LabelsDefinition `yaml:"labels"`
	Index  []AxisDefinition `yaml:"index"`
	Data   interface{}      `yaml:"data"`

	// dict and lookup. x, y, and z are numbers or nested sequences. For
	// dict they may also be mappings from label to such values.
	X     interface{}   `yaml:"x"`
	Y     interface{}   `yaml:"y"`
	Z     interface{}   `yaml:"z"`
	Axis  int           `yaml:"axis"`
	Units []string      `yaml:"units"`
	Rows  []interface{} `yaml:"rows"`

	// figure
	Text            string `yaml:"text"`
	IndependentUnit string `yaml:"independent_unit"`
	DependentUnit   string `yaml:"dependent_unit"`
}

// ReadDefinition reads and builds the definition file fname. opts override
// the bounds policy of the file.
func ReadDefinition(fname string, opts ...interpolate.Option) (*Table, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	t, err := ParseDefinition(b, opts...)
	if err != nil {
		return nil, fmt.Errorf("Definition file %s: %w", fname, err)
	}
	return t, nil
}

// ParseDefinition decodes and builds a definition from YAML text.
func ParseDefinition(text []byte, opts ...interpolate.Option) (*Table, error) {
	def := &Definition{}
	if err := yaml.Unmarshal(text, def); err != nil {
		return nil, err
	}
	return def.Build(opts...)
}

// Build constructs the Table described by def. opts override the bounds
// policy of the definition.
func (def *Definition) Build(opts ...interpolate.Option) (*Table, error) {
	bounds, err := overrideBounds(def.Bounds, def.Fill, opts)
	if err != nil {
		return nil, err
	}

	switch def.Kind {
	case KindStandard:
		return def.buildStandard(bounds)
	case KindFigure:
		return def.buildFigure(bounds)
	case KindDict:
		return def.buildDict(bounds)
	case KindLookup:
		return def.buildLookup(bounds)
	case "":
		return nil, fmt.Errorf("Definition '%s' does not set a kind.", def.Name)
	}
	return nil, fmt.Errorf(
		"Definition '%s' has unrecognized kind '%s'. Recognized kinds are "+
			"'%s', '%s', '%s', and '%s'.", def.Name, def.Kind,
		KindStandard, KindFigure, KindDict, KindLookup,
	)
}

func overrideBounds(
	mode string, fill float64, opts []interpolate.Option,
) (interpolate.Option, error) {
	bounds, err := interpolate.ParseBounds(mode, fill)
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		return bounds, nil
	}
	all := append([]interpolate.Option{bounds}, opts...)
	return interpolate.NewBounds(all...).Option(), nil
}

///// Standard Tables /////

func (def *Definition) buildStandard(bounds interpolate.Option) (*Table, error) {
	labels, err := toStrings(def.Labels.Values)
	if err != nil {
		return nil, fmt.Errorf("Labels: %w", err)
	}

	index := make([]standard.Index, len(def.Index))
	for i, ax := range def.Index {
		k, err := units.ParseKind(ax.Unit)
		if err != nil {
			return nil, fmt.Errorf("Axis '%s': %w", ax.Name, err)
		}
		index[i] = standard.Index{Name: ax.Name, Axis: interpolate.UnitAxis(k, ax.Values...)}
	}

	data, err := toCharts(def.Data)
	if err != nil {
		return nil, fmt.Errorf("Data: %w", err)
	}

	ps, err := standard.New(
		data, index, standard.Labels{Name: def.Labels.Name, Values: labels},
		standard.WithBounds(bounds),
	)
	if err != nil {
		return nil, err
	}
	return standardTable(def.Name, ps), nil
}

// toCharts converts decoded data into [chart][label][point] order. A single
// 2d array is a table with one chart.
func toCharts(v interface{}) ([][][]float64, error) {
	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil, err
	}

	arrays := make([]grid.Array, len(items))
	vectors := 0
	for i := range items {
		if arrays[i], err = grid.FromAny(items[i]); err != nil {
			return nil, fmt.Errorf("Element %d: %w", i, err)
		}
		switch arrays[i].Kind() {
		case grid.Vector:
			vectors++
		case grid.Matrix:
		default:
			return nil, &grid.ShapeError{
				Msg: fmt.Sprintf("Element %d of data is not a sequence.", i),
			}
		}
	}

	if vectors == len(arrays) {
		chart := make([][]float64, len(arrays))
		for i := range arrays {
			chart[i] = arrays[i].Values()
		}
		return [][][]float64{chart}, nil
	} else if vectors > 0 {
		return nil, &grid.ShapeError{
			Msg: "Data mixes 1d and 2d elements.",
		}
	}

	charts := make([][][]float64, len(arrays))
	for i := range arrays {
		charts[i] = arrays[i].Rows()
	}
	return charts, nil
}

///// Figures /////

func (def *Definition) buildFigure(bounds interpolate.Option) (*Table, error) {
	ind, err := units.ParseKind(def.IndependentUnit)
	if err != nil {
		return nil, err
	}
	dep, err := units.ParseKind(def.DependentUnit)
	if err != nil {
		return nil, err
	}

	fig, xLabel, _, err := ParseFigureText(def.Text, ind, dep, bounds)
	if err != nil {
		return nil, err
	}
	name := def.Name
	if name == "" {
		name = fig.Title
	}
	return figureTable(name, fig, xLabel), nil
}

///// Dicts and Lookups /////

func (def *Definition) coordUnits(arity int) ([]units.Kind, error) {
	ks := make([]units.Kind, arity)
	if len(def.Units) == 0 {
		return ks, nil
	} else if len(def.Units) != arity {
		return nil, fmt.Errorf(
			"Definition '%s' gives %d units, but its tables take %d coordinate(s).",
			def.Name, len(def.Units), arity,
		)
	}
	for i := range ks {
		var err error
		if ks[i], err = units.ParseKind(def.Units[i]); err != nil {
			return nil, err
		}
	}
	return ks, nil
}

func (def *Definition) buildDict(bounds interpolate.Option) (*Table, error) {
	arity := 2
	if def.Z == nil {
		arity = 1
	}
	ks, err := def.coordUnits(arity)
	if err != nil {
		return nil, err
	}

	x, err := toParam(def.X, ks[0])
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	yUnit := units.Linear
	if arity == 2 {
		yUnit = ks[1]
	}
	y, err := toParam(def.Y, yUnit)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}
	z, err := toParam(def.Z, units.Linear)
	if err != nil {
		return nil, fmt.Errorf("z: %w", err)
	}

	fs, err := standard.InterpDict(x, y, z, def.Axis, bounds)
	if err != nil {
		return nil, err
	}
	for key := range fs {
		fs[key] = inUnits(fs[key], ks)
	}
	return dictTable(def.Name, arity, fs), nil
}

func (def *Definition) buildLookup(bounds interpolate.Option) (*Table, error) {
	rows, err := toStrings(def.Rows)
	if err != nil {
		return nil, fmt.Errorf("Rows: %w", err)
	}

	arrays := [3]grid.Array{}
	for i, v := range []interface{}{def.X, def.Y, def.Z} {
		if arrays[i], err = grid.FromAny(v); err != nil {
			return nil, fmt.Errorf("%c: %w", "xyz"[i], err)
		}
	}
	arity := 2
	if arrays[1].Absent() {
		arity = 1
	}
	ks, err := def.coordUnits(arity)
	if err != nil {
		return nil, err
	}
	for i := 0; i < arity; i++ {
		arrays[i] = arrays[i].Map(ks[i].Forward)
	}

	lk, err := standard.NewLookup(arrays[0], arrays[1], arrays[2], rows, bounds)
	if err != nil {
		return nil, err
	}

	t := lookupTable(def.Name, arity, lk)
	lookup := t.lookup
	t.lookup = func(label string) (standard.Interpolant, error) {
		f, err := lookup(label)
		if err != nil {
			return nil, err
		}
		return inUnits(f, ks), nil
	}
	return t, nil
}

// toParam converts a decoded value into a standard.Param, with every element
// moved into the curve space of k. Mappings become Keyed and anything else
// Uniform. nil stays nil.
func toParam(v interface{}, k units.Kind) (standard.Param, error) {
	var m map[string]interface{}
	switch x := v.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		m = x
	case map[interface{}]interface{}:
		m = make(map[string]interface{}, len(x))
		for key, val := range x {
			s, err := cast.ToStringE(key)
			if err != nil {
				return nil, err
			}
			m[s] = val
		}
	default:
		a, err := grid.FromAny(v)
		if err != nil {
			return nil, err
		}
		return standard.Uniform{Value: a.Map(k.Forward)}, nil
	}

	keyed := make(standard.Keyed, len(m))
	for key, val := range m {
		a, err := grid.FromAny(val)
		if err != nil {
			return nil, fmt.Errorf("Key '%s': %w", key, err)
		}
		keyed[key] = a.Map(k.Forward)
	}
	return keyed, nil
}

// inUnits returns an Interpolant which moves its coordinates into the curve
// space of ks before calling f.
func inUnits(f standard.Interpolant, ks []units.Kind) standard.Interpolant {
	linear := true
	for _, k := range ks {
		linear = linear && k == units.Linear
	}
	if linear {
		return f
	}

	return func(coords ...float64) (float64, error) {
		if len(coords) != len(ks) {
			return f(coords...)
		}
		conv := make([]float64, len(coords))
		for i := range coords {
			conv[i] = ks[i].Forward(coords[i])
		}
		return f(conv...)
	}
}

func toStrings(vs []interface{}) ([]string, error) {
	out := make([]string, len(vs))
	for i := range vs {
		var err error
		if out[i], err = cast.ToStringE(vs[i]); err != nil {
			return nil, fmt.Errorf("Element %d: %w", i, err)
		}
	}
	return out, nil
}
