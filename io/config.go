package io

import (
	"fmt"
	"path/filepath"
	"sort"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/asce7/math/interpolate"
	"github.com/phil-mansfield/asce7/standard"
	"github.com/phil-mansfield/asce7/units"
)

const (
	ExampleLookupFile = `[Lookup]

#######################
# Required Parameters #
#######################

# Table definition file (.yaml) or curve config (.ini) to look values up in.
Definition = path/to/fig30p3d2A.yaml
# Label of the series, zone, or curve to evaluate.
Label = 1

# Coordinates to evaluate at. X may be given several times. Y is only used
# by tables with two independent axes.
X = 1
X = 50
X = 500
# Y = 7

#######################
# Optional Parameters #
#######################

# What to do with coordinates outside a table. Must be "error",
# "extrapolate", or "fill". Overrides the definition file when set.
# Bounds = error
# Fill = 0

# LogFile = log.out`

	ExamplePlotFile = `[Plot]

#######################
# Required Parameters #
#######################

Definition = path/to/fig30p3d2A.yaml
Output = plot.png

# Range of the first coordinate.
XMin = 1
XMax = 1000

#######################
# Optional Parameters #
#######################

# Labels to plot. Every label in the table is plotted if none are given.
# Label = 1
# Label = 2

# Fixed second coordinate for tables with two independent axes.
# Y = 7

# Points = 100
# LogX = true
# Bounds = extrapolate
# LogFile = log.out`

	ExampleCurvesFile = `[Figure]
Title = 0 deg to 7 deg Roof Slope
# Bounds = error

# One section per curve. Column files are whitespace-separated text and
# relative paths are relative to this file.
[Curve "Zone 1 Up"]
File = zone1_up.txt
XUnit = log

[Curve "Zone 3 Up"]
File = zone3_up.txt
XColumn = 0
YColumn = 1
XUnit = log`
)

type SharedConfig struct {
	// Required
	Definition string
	// Optional
	Label   []string
	Bounds  string
	Fill    float64
	LogFile string
}

func (con *SharedConfig) ValidDefinition() bool {
	return con.Definition != ""
}
func (con *SharedConfig) ValidBounds() bool {
	_, err := interpolate.ParseBounds(con.Bounds, con.Fill)
	return err == nil
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}

// BoundsOption returns the bounds policy requested by the config, if any.
func (con *SharedConfig) BoundsOption() (interpolate.Option, bool) {
	if con.Bounds == "" {
		return nil, false
	}
	opt, err := interpolate.ParseBounds(con.Bounds, con.Fill)
	return opt, err == nil
}

type LookupConfig struct {
	SharedConfig

	// Required
	X []float64
	// Optional
	Y []float64
}

func DefaultLookupWrapper() *LookupWrapper {
	return &LookupWrapper{LookupConfig{}}
}

func (con *LookupConfig) ValidLabel() bool {
	return len(con.Label) == 1
}
func (con *LookupConfig) ValidX() bool {
	return len(con.X) > 0
}
func (con *LookupConfig) ValidY() bool {
	return len(con.Y) <= 1
}

type PlotConfig struct {
	SharedConfig

	// Required
	Output     string
	XMin, XMax float64

	// Optional
	Y      []float64
	Points int
	LogX   bool
}

func DefaultPlotWrapper() *PlotWrapper {
	con := PlotConfig{}
	con.Points = 100
	return &PlotWrapper{con}
}

func (con *PlotConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *PlotConfig) ValidRange() bool {
	if con.LogX && con.XMin <= 0 {
		return false
	}
	return con.XMin < con.XMax
}
func (con *PlotConfig) ValidPoints() bool {
	return con.Points >= 2
}
func (con *PlotConfig) ValidY() bool {
	return len(con.Y) <= 1
}

type LookupWrapper struct {
	Lookup LookupConfig
}

type PlotWrapper struct {
	Plot PlotConfig
}

///// Curve Configs /////

type FigureConfig struct {
	// Optional
	Title  string
	Bounds string
	Fill   float64
}

type CurveConfig struct {
	// Required
	File string

	// Optional
	XColumn, YColumn int
	XUnit, YUnit     string

	Name         string
	xKind, yKind units.Kind
}

func (curve *CurveConfig) CheckInit(name, dir string) error {
	if curve.File == "" {
		return fmt.Errorf("Need to specify a File for Curve '%s'.", name)
	}
	if !filepath.IsAbs(curve.File) {
		curve.File = filepath.Join(dir, curve.File)
	}

	if curve.XColumn == 0 && curve.YColumn == 0 {
		curve.YColumn = 1
	} else if curve.XColumn < 0 || curve.YColumn < 0 {
		return fmt.Errorf(
			"Curve '%s' given negative columns (%d, %d).",
			name, curve.XColumn, curve.YColumn,
		)
	} else if curve.XColumn == curve.YColumn {
		return fmt.Errorf(
			"Curve '%s' reads both coordinates from column %d.",
			name, curve.XColumn,
		)
	}

	var err error
	if curve.xKind, err = units.ParseKind(curve.XUnit); err != nil {
		return fmt.Errorf("XUnit of Curve '%s': %w", name, err)
	}
	if curve.yKind, err = units.ParseKind(curve.YUnit); err != nil {
		return fmt.Errorf("YUnit of Curve '%s': %w", name, err)
	}

	curve.Name = name
	return nil
}

type CurvesConfig struct {
	Figure FigureConfig
	Curve  map[string]*CurveConfig
}

// ReadCurvesConfig reads a curve config and the column files it names into
// a figure table. Curves are ordered by name. opts override the bounds policy
// of the config.
func ReadCurvesConfig(fname string, opts ...interpolate.Option) (*Table, error) {
	cc := CurvesConfig{}
	if err := gcfg.ReadFileInto(&cc, fname); err != nil {
		return nil, err
	}
	fig, err := cc.build(filepath.Dir(fname), opts)
	if err != nil {
		return nil, fmt.Errorf("Curve config %s: %w", fname, err)
	}

	name := cc.Figure.Title
	if name == "" {
		name = filepath.Base(fname)
	}
	return figureTable(name, fig, "x"), nil
}

func (cc *CurvesConfig) build(
	dir string, opts []interpolate.Option,
) (*standard.Figure, error) {
	bounds, err := overrideBounds(cc.Figure.Bounds, cc.Figure.Fill, opts)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cc.Curve))
	for name := range cc.Curve {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]standard.CurveDef, len(names))
	for i, name := range names {
		curve := cc.Curve[name]
		if err := curve.CheckInit(name, dir); err != nil {
			return nil, err
		}
		ind, dep, err := ReadCurveColumns(
			curve.File, curve.XColumn, curve.YColumn, curve.xKind, curve.yKind,
		)
		if err != nil {
			return nil, err
		}
		defs[i] = standard.CurveDef{Name: name, Independent: ind, Dependent: dep}
	}

	return standard.NewFigure(cc.Figure.Title, defs, bounds)
}
