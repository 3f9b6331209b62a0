package standard

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/asce7/math/interpolate"
	"github.com/phil-mansfield/asce7/units"
)

func example1d(t *testing.T, opts ...Option) *ParameterStandard {
	ps, err := New(
		[][][]float64{{{1, 2, 3}, {4, 5, 6}}},
		[]Index{{"x", interpolate.NewAxis(5, 15, 25)}},
		Labels{"label", []string{"a", "b"}},
		opts...,
	)
	require.NoError(t, err)
	return ps
}

func example2d(t *testing.T, opts ...Option) *ParameterStandard {
	ps, err := New(
		[][][]float64{
			{{1, 2, 3}, {4, 5, 6}},
			{{10, 20, 30}, {40, 50, 60}},
		},
		[]Index{
			{"x", interpolate.NewAxis(100, 200)},
			{"y", interpolate.NewAxis(5, 15, 25)},
		},
		Labels{"label", []string{"a", "b"}},
		opts...,
	)
	require.NoError(t, err)
	return ps
}

func TestParameter1dLookup(t *testing.T) {
	ps := example1d(t)
	tests := []struct {
		label string
		x, z  float64
	}{
		{"a", 10, 1.5},
		{"b", 10, 4.5},
		{"a", 25, 3},
		{"b", 5, 4},
	}

	for _, test := range tests {
		v, err := ps.MustLookup(test.label)(test.x)
		require.NoError(t, err)
		assert.InDelta(t, test.z, v, 1e-12, "%s(%g)", test.label, test.x)
	}

	assert.Equal(t, []string{"a", "b"}, ps.Labels())
	assert.Equal(t, "label", ps.LabelName())
}

func TestParameter2dLookup(t *testing.T) {
	ps := example2d(t)
	tests := []struct {
		label   string
		x, y, z float64
	}{
		{"a", 100, 10, 1.5},
		{"b", 100, 10, 4.5},
		{"a", 150, 10, (1.5 + 15) / 2},
		{"b", 150, 10, (4.5 + 45) / 2},
		{"a", 200, 10, 15},
		{"b", 200, 10, 45},
	}

	for _, test := range tests {
		f, err := ps.Lookup(test.label)
		require.NoError(t, err)
		v, err := f(test.x, test.y)
		require.NoError(t, err)
		assert.InDelta(t, test.z, v, 1e-12, "%s(%g, %g)", test.label, test.x, test.y)

		// Repeated calls are deterministic.
		v2, err := f(test.x, test.y)
		require.NoError(t, err)
		assert.Equal(t, v, v2)
	}

	vs, err := ps.MustLookup("a").EvalAll([]float64{100, 150}, []float64{10, 10})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.5, 8.25}, vs, 1e-12)
}

func TestParameterRows(t *testing.T) {
	rows := example2d(t).Rows()
	require.Len(t, rows, 6)
	assert.Equal(t, []float64{100, 5}, rows[0].Index)
	assert.Equal(t, []float64{1, 4}, rows[0].Values)
	assert.Equal(t, []float64{200, 25}, rows[5].Index)
	assert.Equal(t, []float64{30, 60}, rows[5].Values)

	rows = example1d(t).Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []float64{15}, rows[1].Index)
	assert.Equal(t, []float64{2, 5}, rows[1].Values)

	assert.Equal(t,
		"ParameterStandard(index=(x=[100 200], y=[5 15 25]), label=[a, b])",
		example2d(t).String(),
	)
}

func TestParameterErrors(t *testing.T) {
	labels := Labels{"label", []string{"a", "b"}}
	ax := interpolate.NewAxis(5, 15, 25)

	_, err := New(nil, nil, labels)
	var ace *AxisCountError
	assert.True(t, errors.As(err, &ace))

	_, err = New(nil, []Index{{"x", ax}, {"y", ax}, {"z", ax}}, labels)
	assert.True(t, errors.As(err, &ace))

	var lbe *LabelError
	_, err = New(
		[][][]float64{{{1, 2, 3}, {4, 5, 6}}},
		[]Index{{"x", ax}}, Labels{"label", []string{"a", "a"}},
	)
	assert.True(t, errors.As(err, &lbe))

	var le *interpolate.LengthError
	_, err = New([][][]float64{{{1, 2, 3}, {4, 5}}}, []Index{{"x", ax}}, labels)
	assert.True(t, errors.As(err, &le), "short series")
	_, err = New([][][]float64{{{1, 2, 3}}}, []Index{{"x", ax}}, labels)
	assert.True(t, errors.As(err, &le), "missing series")
	_, err = New(
		[][][]float64{{{1, 2, 3}, {4, 5, 6}}},
		[]Index{{"x", interpolate.NewAxis(1, 2)}, {"y", ax}}, labels,
	)
	assert.True(t, errors.As(err, &le), "missing chart")

	ps := example1d(t)
	_, err = ps.Lookup("c")
	assert.True(t, errors.As(err, &lbe))
	assert.Panics(t, func() { ps.MustLookup("c") })

	var are *ArityError
	_, err = ps.MustLookup("a")(1, 2)
	assert.True(t, errors.As(err, &are))
	_, err = example2d(t).MustLookup("a")(150)
	assert.True(t, errors.As(err, &are))

	var ie *interpolate.InterpolationError
	_, err = ps.MustLookup("a")(30)
	assert.True(t, errors.As(err, &ie))
}

func TestParameterAdjusters(t *testing.T) {
	ps := example1d(t,
		AdjustInput(func(coords ...float64) []float64 {
			return []float64{coords[0] * 10}
		}),
		AdjustOutput(func(v float64) float64 { return -v }),
	)
	v, err := ps.MustLookup("a")(1)
	require.NoError(t, err)
	assert.InDelta(t, -1.5, v, 1e-12)

	ps = example2d(t, WithBounds(interpolate.Extrapolate()))
	v, err = ps.MustLookup("b")(1000, 25)
	require.NoError(t, err)
	assert.Equal(t, 60.0, v)
}

func TestParameterLogAxis(t *testing.T) {
	// Fig. 29.4-7: zones on tilt (linear) and area (log) axes.
	ps, err := New(
		[][][]float64{
			{{1.5, 0.35, 0.10}, {2.0, 0.45, 0.15}},
			{{1.5, 0.35, 0.10}, {2.0, 0.45, 0.15}},
			{{2.0, 0.56, 0.30}, {2.9, 0.65, 0.40}},
			{{2.0, 0.56, 0.30}, {2.9, 0.65, 0.40}},
		},
		[]Index{
			{"tilt", interpolate.NewAxis(0, 5, 15, 35)},
			{"area", interpolate.UnitAxis(units.Log10, 1, 500, 5000)},
		},
		Labels{"zone", []string{"1", "2"}},
	)
	require.NoError(t, err)

	f := ps.MustLookup("1")
	v, err := f(10, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.75, v, 1e-12)

	// Halfway between 500 and 5000 in log space.
	v, err = f(5, 500*math.Sqrt(10))
	require.NoError(t, err)
	assert.InDelta(t, (0.35+0.10)/2, v, 1e-9)
}

func TestFigure(t *testing.T) {
	fig, err := NewFigure("", nil)
	require.NoError(t, err)
	assert.Equal(t, "Figure()", fig.String())

	fig, err = NewFigure("0 deg to 7 deg Roof Slope", []CurveDef{
		{"Zone 1 Up", interpolate.UnitAxis(units.Log10, 1, 10, 500, 2000),
			interpolate.NewAxis(-1.7, -1.7, -1.0, -1.0)},
		{"Zone 3 Up", interpolate.UnitAxis(units.Log10, 1, 10, 500, 2000),
			interpolate.NewAxis(-3.2, -3.2, -1.4, -1.4)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zone 1 Up", "Zone 3 Up"}, fig.Names())

	v, err := fig.Lookup("Zone 3 Up", 5)
	require.NoError(t, err)
	assert.InDelta(t, -3.2, v, 1e-12)
	v, err = fig.Lookup("Zone 1 Up", 1000)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, v, 1e-12)

	f, err := fig.Interpolant("Zone 1 Up")
	require.NoError(t, err)
	v, err = f(2000)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, v, 1e-12)

	var lbe *LabelError
	_, err = fig.Lookup("Zone 2 Up", 10)
	assert.True(t, errors.As(err, &lbe))

	_, err = NewFigure("", []CurveDef{
		{"a", interpolate.NewAxis(1, 2), interpolate.NewAxis(1, 2)},
		{"a", interpolate.NewAxis(1, 2), interpolate.NewAxis(1, 2)},
	})
	assert.True(t, errors.As(err, &lbe))

	fig, err = NewFigure("", []CurveDef{
		{"a", interpolate.NewAxis(1, 2), interpolate.NewAxis(3, 4)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Figure(a=([1 2], [3 4]))", fig.String())
}
