package io

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/asce7/math/interpolate"
	"github.com/phil-mansfield/asce7/units"
)

func TestExampleConfigs(t *testing.T) {
	lw := DefaultLookupWrapper()
	require.NoError(t, gcfg.ReadStringInto(lw, ExampleLookupFile))
	con := &lw.Lookup
	assert.True(t, con.ValidDefinition())
	assert.True(t, con.ValidLabel())
	assert.True(t, con.ValidX())
	assert.True(t, con.ValidY())
	assert.True(t, con.ValidBounds())
	assert.False(t, con.ValidLogFile())
	assert.Equal(t, []float64{1, 50, 500}, con.X)
	assert.Equal(t, []string{"1"}, con.Label)
	_, ok := con.BoundsOption()
	assert.False(t, ok)

	pw := DefaultPlotWrapper()
	require.NoError(t, gcfg.ReadStringInto(pw, ExamplePlotFile))
	pcon := &pw.Plot
	assert.True(t, pcon.ValidOutput())
	assert.True(t, pcon.ValidRange())
	assert.True(t, pcon.ValidPoints())
	assert.Equal(t, 100, pcon.Points)
	assert.Empty(t, pcon.Label)

	cc := CurvesConfig{}
	require.NoError(t, gcfg.ReadStringInto(&cc, ExampleCurvesFile))
	assert.Equal(t, "0 deg to 7 deg Roof Slope", cc.Figure.Title)
	assert.Len(t, cc.Curve, 2)
}

func TestPlotConfigChecks(t *testing.T) {
	pw := DefaultPlotWrapper()
	require.NoError(t, gcfg.ReadStringInto(pw, `[Plot]
Definition = fig.yaml
Output = out.png
XMin = 0
XMax = 10
LogX = true
Points = 1
Y = 1
Y = 2
Bounds = fill
Fill = -1`))
	con := &pw.Plot
	assert.False(t, con.ValidRange(), "log axis from zero")
	assert.False(t, con.ValidPoints())
	assert.False(t, con.ValidY())

	opt, ok := con.BoundsOption()
	require.True(t, ok)
	assert.Equal(t, "fill(-1)", interpolate.NewBounds(opt).String())
}

func TestCurveConfigCheckInit(t *testing.T) {
	curve := &CurveConfig{File: "a.txt", XUnit: "log"}
	require.NoError(t, curve.CheckInit("Zone 1", "/data"))
	assert.Equal(t, filepath.Join("/data", "a.txt"), curve.File)
	assert.Equal(t, 0, curve.XColumn)
	assert.Equal(t, 1, curve.YColumn)
	assert.Equal(t, units.Log10, curve.xKind)
	assert.Equal(t, "Zone 1", curve.Name)

	assert.Error(t, (&CurveConfig{}).CheckInit("a", ""))
	assert.Error(t, (&CurveConfig{File: "a", XColumn: 2, YColumn: 2}).CheckInit("a", ""))
	assert.Error(t, (&CurveConfig{File: "a", XColumn: -1}).CheckInit("a", ""))
	assert.Error(t, (&CurveConfig{File: "a", YUnit: "furlongs"}).CheckInit("a", ""))
}

func writeFile(t *testing.T, dir, name, text string) string {
	fname := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestReadCurveColumns(t *testing.T) {
	dir := t.TempDir()
	fname := writeFile(t, dir, "zone1.txt", "0 1 -1.7\n0 10 -1.7\n0 500 -1.0\n0 2000 -1.0\n")

	ind, dep, err := ReadCurveColumns(fname, 1, 2, units.Log10, units.Linear)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 10, 500, 2000}, ind.Values)
	assert.Equal(t, []float64{-1.7, -1.7, -1.0, -1.0}, dep.Values)
	assert.InDeltaSlice(t,
		[]float64{0, 1, math.Log10(500), math.Log10(2000)}, ind.CurveValues(), 1e-12,
	)

	short := writeFile(t, dir, "short.txt", "1 2\n")
	_, _, err = ReadCurveColumns(short, 0, 1, units.Linear, units.Linear)
	assert.Error(t, err)
}

func TestReadCurvesConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zone1_up.txt", "1 -1.7\n10 -1.7\n500 -1.0\n2000 -1.0\n")
	writeFile(t, dir, "zone3_up.txt", "1 -3.2\n10 -3.2\n500 -1.4\n2000 -1.4\n")
	fname := writeFile(t, dir, "gable.ini", ExampleCurvesFile)

	tab, err := ReadCurvesConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, KindFigure, tab.Kind)
	assert.Equal(t, "0 deg to 7 deg Roof Slope", tab.Name)
	assert.Equal(t, []string{"Zone 1 Up", "Zone 3 Up"}, tab.Labels())

	f, err := tab.Lookup("Zone 3 Up")
	require.NoError(t, err)
	v, err := f(5)
	require.NoError(t, err)
	assert.InDelta(t, -3.2, v, 1e-12)

	_, err = f(5000)
	var ie *interpolate.InterpolationError
	assert.True(t, errors.As(err, &ie))

	tab, err = ReadCurvesConfig(fname, interpolate.Extrapolate())
	require.NoError(t, err)
	f, err = tab.Lookup("Zone 3 Up")
	require.NoError(t, err)
	v, err = f(5000)
	require.NoError(t, err)
	assert.InDelta(t, -1.4, v, 1e-12)
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	def := writeFile(t, dir, "gcp.yaml", ExampleDefinitionFile)

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	r := NewRegistry(log)

	tab, err := r.Load(def)
	require.NoError(t, err)
	again, err := r.Load(def)
	require.NoError(t, err)
	assert.Same(t, tab, again)
	assert.Equal(t, 1, r.Len())
	assert.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, def, hook.LastEntry().Data["file"])

	strict, err := r.Load(def, interpolate.BoundsError())
	require.NoError(t, err)
	assert.NotSame(t, tab, strict)
	assert.Equal(t, 2, r.Len())

	got, ok := r.Get(def)
	require.True(t, ok)
	assert.Same(t, tab, got)

	require.NoError(t, r.Add("gcp", tab))
	assert.Error(t, r.Add("gcp", tab))
	got, ok = r.Get("gcp")
	require.True(t, ok)
	assert.Same(t, tab, got)
	_, ok = r.Get("missing")
	assert.False(t, ok)

	_, err = r.Load(writeFile(t, dir, "gcp.json", "{}"))
	assert.Error(t, err)
	_, err = r.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRegistryConcurrentLoad(t *testing.T) {
	def := writeFile(t, t.TempDir(), "gcp.yaml", ExampleDefinitionFile)
	r := NewRegistry(nil)

	tabs := make([]*Table, 8)
	wg := sync.WaitGroup{}
	for i := range tabs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tab, err := r.Load(def)
			assert.NoError(t, err)
			tabs[i] = tab
		}(i)
	}
	wg.Wait()

	for i := range tabs {
		assert.Same(t, tabs[0], tabs[i])
	}
}
