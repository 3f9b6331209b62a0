package io

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/asce7/math/interpolate"
	"github.com/phil-mansfield/asce7/standard"
	"github.com/phil-mansfield/asce7/units"
)

// Fig. 30.3-2A, gable roofs with slopes up to 7 degrees.
const gableRoofText = `
0 deg to 7 deg Roof Slope

Zone 1' 1 2 3 Down
area (sq ft)    1       10      100     2000
GCp             0.3     0.3     0.2     0.2

Zone 1' Up
area (sq ft)    1       100     1000    2000
GCp             -0.9    -0.9    -0.4    -0.4

# Zones 1 and 2 share breakpoints.
Zone 1 Up
area (sq ft)    1       10      500     2000
GCp             -1.7    -1.7    -1.0    -1.0

Zone 2 Up
area (sq ft)    1       10      500     2000
GCp             -2.1    -2.1    -1.4    -1.4

Zone 3 Up
area (sq ft)    1       10      500     2000
GCp             -3.2    -3.2    -1.4    -1.4
`

func TestParseFigureText(t *testing.T) {
	fig, xLabel, yLabel, err := ParseFigureText(gableRoofText, units.Log10, units.Linear)
	require.NoError(t, err)

	assert.Equal(t, "0 deg to 7 deg Roof Slope", fig.Title)
	assert.Equal(t, "area (sq ft)", xLabel)
	assert.Equal(t, "GCp", yLabel)
	assert.Equal(t, []string{
		"Zone 1' 1 2 3 Down", "Zone 1' Up", "Zone 1 Up", "Zone 2 Up", "Zone 3 Up",
	}, fig.Names())

	tests := []struct {
		name    string
		area, v float64
	}{
		{"Zone 1' Up", 100, -0.9},
		{"Zone 1' 1 2 3 Down", 5, 0.3},
		{"Zone 2 Up", 2000, -1.4},
		{"Zone 3 Up", 1000, -1.4},
		{"Zone 1' Up", 1000, -0.4},
	}
	for _, test := range tests {
		v, err := fig.Lookup(test.name, test.area)
		require.NoError(t, err)
		assert.InDelta(t, test.v, v, 1e-12, "%s(%g)", test.name, test.area)
	}

	_, err = fig.Lookup("Zone 1 Up", 3000)
	var ie *interpolate.InterpolationError
	assert.True(t, errors.As(err, &ie))
}

func TestParseFigureTextOptions(t *testing.T) {
	fig, _, _, err := ParseFigureText(`
Zone 1 Up
area    1       10
GCp     -1.7    -1.0
`, units.Linear, units.Linear, interpolate.Fill(0))
	require.NoError(t, err)

	assert.Equal(t, "", fig.Title)
	v, err := fig.Lookup("Zone 1 Up", 5.5)
	require.NoError(t, err)
	assert.InDelta(t, -1.35, v, 1e-12)
	v, err = fig.Lookup("Zone 1 Up", 11)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestParseFigureTextErrors(t *testing.T) {
	tests := []struct {
		name, text string
	}{
		{"missing row", "Title\n\nZone 1\narea 1 10\n"},
		{"short row", "Zone 1\narea 1 10\nGCp -1.7\n"},
		{"unequal rows", "Zone 1\narea 1 10 100\nGCp -1.7 -1.0\n"},
	}
	for _, test := range tests {
		_, _, _, err := ParseFigureText(test.text, units.Linear, units.Linear)
		assert.Error(t, err, test.name)
	}

	_, _, _, err := ParseFigureText(
		"A\nx 1 2\ny 1 2\n\nA\nx 1 2\ny 3 4\n", units.Linear, units.Linear,
	)
	var lbe *standard.LabelError
	assert.True(t, errors.As(err, &lbe), "duplicated name")
}
