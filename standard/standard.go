package standard

import (
	"fmt"
	"strings"

	"github.com/phil-mansfield/asce7/math/grid"
	"github.com/phil-mansfield/asce7/math/interpolate"
)

// Index is a named independent axis of a ParameterStandard.
type Index struct {
	Name string
	Axis interpolate.Axis
}

// Labels names the series of a ParameterStandard.
type Labels struct {
	Name   string
	Values []string
}

// Option configures a ParameterStandard.
type Option func(*options)

type options struct {
	in     func(coords ...float64) []float64
	out    func(float64) float64
	bounds []interpolate.Option
}

// AdjustInput sets a function applied to the coordinates of every lookup
// before interpolating, e.g. to move a linear coordinate into log space.
func AdjustInput(f func(coords ...float64) []float64) Option {
	return func(o *options) { o.in = f }
}

// AdjustOutput sets a function applied to every interpolated value before it
// is returned.
func AdjustOutput(f func(float64) float64) Option {
	return func(o *options) { o.out = f }
}

// WithBounds sets the out-of-range policy of the underlying interpolators.
func WithBounds(opts ...interpolate.Option) Option {
	return func(o *options) { o.bounds = append(o.bounds, opts...) }
}

// ParameterStandard is the definition of a parameter published as a figure or
// table: a set of labelled series which share one or two index axes. For
// example,
//
//	data = [                  // one chart per value of index[0]
//	    [[1, 2, 3],           // series "a" at index[0] = 100
//	     [4, 5, 6]],          // series "b" at index[0] = 100
//	    [[10, 20, 30],        // series "a" at index[0] = 200
//	     [40, 50, 60]],       // series "b" at index[0] = 200
//	]
//	index = [{x, [100, 200]}, {y, [5, 15, 25]}]
//	labels = {label, [a, b]}
//
// A ParameterStandard is immutable and may be used from multiple goroutines.
type ParameterStandard struct {
	index  []Index
	labels Labels
	data   [][][]float64
	lookup map[string]Interpolant
}

// Row is one point of the Cartesian product of a ParameterStandard's index
// axes, together with the value of every series at that point.
type Row struct {
	Index  []float64
	Values []float64
}

// New builds a ParameterStandard. data is indexed as data[chart][label][point].
// With one index axis there is a single chart and each series has one value
// per breakpoint of the axis. With two, there is one chart per breakpoint of
// index[0] and each series has one value per breakpoint of index[1].
func New(
	data [][][]float64, index []Index, labels Labels, opts ...Option,
) (*ParameterStandard, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if len(index) != 1 && len(index) != 2 {
		return nil, &AxisCountError{len(index)}
	}
	if err := checkLabels(labels.Values); err != nil {
		return nil, err
	}
	if err := checkData(data, index, labels); err != nil {
		return nil, err
	}

	ps := &ParameterStandard{
		index:  index,
		labels: labels,
		data:   data,
		lookup: make(map[string]Interpolant, len(labels.Values)),
	}

	for k, label := range labels.Values {
		var (
			f   Interpolant
			err error
		)
		if len(index) == 1 {
			f, err = ps.build1d(k, o)
		} else {
			f, err = ps.build2d(k, o)
		}
		if err != nil {
			return nil, fmt.Errorf("Series '%s': %w", label, err)
		}
		ps.lookup[label] = ps.adjust(f, o)
	}

	return ps, nil
}

func checkLabels(labels []string) error {
	if len(labels) == 0 {
		return &LabelError{"", "missing: at least one label is required"}
	}
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if seen[label] {
			return &LabelError{label, "duplicated"}
		}
		seen[label] = true
	}
	return nil
}

func checkData(data [][][]float64, index []Index, labels Labels) error {
	charts := 1
	if len(index) == 2 {
		charts = index[0].Axis.Len()
	}
	points := index[len(index)-1].Axis.Len()

	if len(data) != charts {
		return &interpolate.LengthError{Msg: fmt.Sprintf(
			"Expected %d chart(s) of data, but got %d.", charts, len(data),
		)}
	}
	for i := range data {
		if len(data[i]) != len(labels.Values) {
			return &interpolate.LengthError{Msg: fmt.Sprintf(
				"Chart %d has %d series, but there are %d labels.",
				i, len(data[i]), len(labels.Values),
			)}
		}
		for k := range data[i] {
			if len(data[i][k]) != points {
				return &interpolate.LengthError{Msg: fmt.Sprintf(
					"Series '%s' of chart %d has %d values, but index '%s' "+
						"has %d breakpoints.", labels.Values[k], i,
					len(data[i][k]), index[len(index)-1].Name, points,
				)}
			}
		}
	}
	return nil
}

func (ps *ParameterStandard) build1d(k int, o *options) (Interpolant, error) {
	ax := ps.index[0].Axis
	lin, err := interpolate.NewLinear(ax.CurveValues(), ps.data[0][k], o.bounds...)
	if err != nil {
		return nil, err
	}
	f := linearInterpolant(lin)
	return func(coords ...float64) (float64, error) {
		if len(coords) != 1 {
			return 0, &ArityError{1, len(coords)}
		}
		return f(ax.To(coords[0]))
	}, nil
}

func (ps *ParameterStandard) build2d(k int, o *options) (Interpolant, error) {
	ax0, ax1 := ps.index[0].Axis, ps.index[1].Axis
	rows := make([][]float64, len(ps.data))
	for i := range ps.data {
		rows[i] = ps.data[i][k]
	}
	z, err := grid.NewMatrix(rows)
	if err != nil {
		return nil, err
	}

	tw, err := interpolate.NewTwice(
		grid.NewVector(ax0.CurveValues()...),
		grid.NewVector(ax1.CurveValues()...),
		z, 0, o.bounds...,
	)
	if err != nil {
		return nil, err
	}
	f := twiceInterpolant(tw)
	return func(coords ...float64) (float64, error) {
		if len(coords) != 2 {
			return 0, &ArityError{2, len(coords)}
		}
		return f(ax0.To(coords[0]), ax1.To(coords[1]))
	}, nil
}

func (ps *ParameterStandard) adjust(f Interpolant, o *options) Interpolant {
	if o.in == nil && o.out == nil {
		return f
	}
	in, out := o.in, o.out
	return func(coords ...float64) (float64, error) {
		if in != nil {
			coords = in(coords...)
		}
		v, err := f(coords...)
		if err != nil {
			return 0, err
		}
		if out != nil {
			v = out(v)
		}
		return v, nil
	}
}

// Lookup returns the Interpolant for the series with the given label.
func (ps *ParameterStandard) Lookup(label string) (Interpolant, error) {
	f, ok := ps.lookup[label]
	if !ok {
		return nil, &LabelError{label, "not a label of this standard"}
	}
	return f, nil
}

// MustLookup is Lookup for labels known to exist. It panics otherwise.
func (ps *ParameterStandard) MustLookup(label string) Interpolant {
	f, err := ps.Lookup(label)
	if err != nil {
		panic(err.Error())
	}
	return f
}

// Labels returns the series labels in declaration order.
func (ps *ParameterStandard) Labels() []string { return ps.labels.Values }

// LabelName returns the name of the label set.
func (ps *ParameterStandard) LabelName() string { return ps.labels.Name }

// Index returns the index axes.
func (ps *ParameterStandard) Index() []Index { return ps.index }

// Rows returns the Cartesian product of the index breakpoints, in index[0]
// major order, along with the published value of every series at each point.
func (ps *ParameterStandard) Rows() []Row {
	rows := []Row{}
	for i := range ps.data {
		for j := 0; j < ps.index[len(ps.index)-1].Axis.Len(); j++ {
			r := Row{Values: make([]float64, len(ps.labels.Values))}
			if len(ps.index) == 2 {
				r.Index = []float64{ps.index[0].Axis.Values[i], ps.index[1].Axis.Values[j]}
			} else {
				r.Index = []float64{ps.index[0].Axis.Values[j]}
			}
			for k := range ps.labels.Values {
				r.Values[k] = ps.data[i][k][j]
			}
			rows = append(rows, r)
		}
	}
	return rows
}

func (ps *ParameterStandard) String() string {
	names := make([]string, len(ps.index))
	for i := range ps.index {
		names[i] = fmt.Sprintf("%s=%g", ps.index[i].Name, ps.index[i].Axis.Values)
	}
	return fmt.Sprintf(
		"ParameterStandard(index=(%s), %s=[%s])", strings.Join(names, ", "),
		ps.labels.Name, strings.Join(ps.labels.Values, ", "),
	)
}
