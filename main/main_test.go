package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/asce7/io"
	"github.com/phil-mansfield/asce7/standard"
)

func TestGetModeName(t *testing.T) {
	a, b, c := "", "", ""
	vars := map[string]*string{"Lookup": &a, "Plot": &b, "Describe": &c}

	_, err := getModeName(vars)
	assert.Error(t, err)

	b = "plot.ini"
	name, err := getModeName(vars)
	require.NoError(t, err)
	assert.Equal(t, "Plot", name)

	a = "lookup.ini"
	_, err = getModeName(vars)
	assert.Error(t, err)
}

func TestSamplePoints(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0, 2.5, 5, 7.5, 10}, samplePoints(0, 10, 5, false), 1e-12)
	xs := samplePoints(1, 1000, 4, true)
	assert.InDeltaSlice(t, []float64{1, 10, 100, 1000}, xs, 1e-9)
	assert.Equal(t, 1000.0, xs[3])
}

func TestCoords(t *testing.T) {
	cs, err := coords(1, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, cs)

	cs, err = coords(2, 3, []float64{7})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, cs)

	var are *standard.ArityError
	_, err = coords(2, 3, nil)
	assert.True(t, errors.As(err, &are))
	_, err = coords(1, 3, []float64{7})
	assert.True(t, errors.As(err, &are))

	assert.Equal(t, "3\t7", formatCoords([]float64{3, 7}))
}

func TestSampleCurve(t *testing.T) {
	tab, err := io.ParseDefinition([]byte(io.ExampleDefinitionFile))
	require.NoError(t, err)
	f, err := tab.Lookup("1")
	require.NoError(t, err)

	// Tilt is the first coordinate, area is held at 10.
	xs, vs, skipped, err := sampleCurve(f, tab.Arity, []float64{0, 7}, []float64{10})
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, []float64{0, 7}, xs)
	assert.InDeltaSlice(t, []float64{-1.0, -0.9}, vs, 1e-12)

	// The example table extrapolates, so only a bad arity fails.
	_, _, _, err = sampleCurve(f, tab.Arity, []float64{1}, nil)
	assert.Error(t, err)

	strict, err := io.ParseDefinition([]byte(`
kind: standard
labels: {values: [a]}
index: [{name: x, values: [1, 2]}]
data: [[10, 20]]
`))
	require.NoError(t, err)
	g, err := strict.Lookup("a")
	require.NoError(t, err)
	xs, vs, skipped, err = sampleCurve(g, 1, []float64{0, 1, 1.5, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, []float64{1, 1.5}, xs)
	assert.InDeltaSlice(t, []float64{10, 15}, vs, 1e-12)
}

func TestFileGroup(t *testing.T) {
	fg := openFileGroup(&io.SharedConfig{})
	assert.Nil(t, fg.log)
	fg.Close()

	fname := filepath.Join(t.TempDir(), "log.out")
	fg = openFileGroup(&io.SharedConfig{LogFile: fname})
	require.NotNil(t, fg.log)
	log.Info("Written to the log file")
	fg.Close()
	assert.Nil(t, fg.log)
	// A second close, as from an exit handler, does nothing.
	fg.Close()

	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Written to the log file")
}

func TestPlotHelpers(t *testing.T) {
	// pyplot panics on options the matplotlib call does not accept.
	assert.NotPanics(t, func() {
		plotCurve(0, "Zone 1", []float64{1, 10}, []float64{-1.7, -1.0})
		plotCurve(len(colors), "Zone 2", []float64{1, 10}, []float64{-2.1, -1.4})
		decorate("Fig. 30.3-2A GCp", []string{"area"}, true)
	})
}
