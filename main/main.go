package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	plt "github.com/phil-mansfield/pyplot"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/asce7/io"
	"github.com/phil-mansfield/asce7/math/interpolate"
	"github.com/phil-mansfield/asce7/standard"
)

var colors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// FileGroup contains the files opened for a run.
type FileGroup struct {
	log *os.File
}

// Close closes the files inside FileGroup and returns logging to stderr. It
// may be called more than once.
func (fg *FileGroup) Close() {
	if fg.log == nil {
		return
	}
	f := fg.log
	fg.log = nil
	log.SetOutput(os.Stderr)
	if err := f.Close(); err != nil {
		log.Fatal(err.Error())
	}
}

func main() {
	var (
		lookup, plot, describe string
		exampleConfig          string
		verbose                bool
	)
	vars := map[string]*string{
		"Lookup":        &lookup,
		"Plot":          &plot,
		"Describe":      &describe,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&lookup, "Lookup", "",
		"Configuration file for [Lookup] mode.",
	)
	flag.StringVar(
		&plot, "Plot", "",
		"Configuration file for [Plot] mode.",
	)
	flag.StringVar(
		&describe, "Describe", "",
		"Definition file or curve config to summarize.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Lookup', "+
			"'Plot', 'Curves', and 'Definition'.",
	)
	flag.BoolVar(&verbose, "Verbose", false, "Log debugging information.")

	flag.Parse()

	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	reg := io.NewRegistry(log.StandardLogger())

	switch modeName {
	case "Lookup":
		wrap := io.DefaultLookupWrapper()
		if err := gcfg.ReadFileInto(wrap, lookup); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Lookup

		if !con.ValidDefinition() {
			log.Fatal("Invalid/non-existent 'Definition' value.")
		} else if !con.ValidLabel() {
			log.Fatal("Exactly one 'Label' value must be given.")
		} else if !con.ValidX() {
			log.Fatal("Invalid/non-existent 'X' value.")
		} else if !con.ValidY() {
			log.Fatal("At most one 'Y' value may be given.")
		} else if !con.ValidBounds() {
			log.Fatal("Invalid 'Bounds' value.")
		}

		fg := openFileGroup(&con.SharedConfig)
		defer fg.Close()
		lookupMain(con, reg)

	case "Plot":
		wrap := io.DefaultPlotWrapper()
		if err := gcfg.ReadFileInto(wrap, plot); err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Plot

		if !con.ValidDefinition() {
			log.Fatal("Invalid/non-existent 'Definition' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidRange() {
			log.Fatal("'XMin' and 'XMax' must satisfy 0 < XMin < XMax for " +
				"log axes and XMin < XMax otherwise.")
		} else if !con.ValidPoints() {
			log.Fatal("'Points' must be at least 2.")
		} else if !con.ValidY() {
			log.Fatal("At most one 'Y' value may be given.")
		} else if !con.ValidBounds() {
			log.Fatal("Invalid 'Bounds' value.")
		}

		fg := openFileGroup(&con.SharedConfig)
		defer fg.Close()
		plotMain(con, reg)

	case "Describe":
		tab, err := reg.Load(describe)
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Println(tab)

	case "ExampleConfig":
		switch exampleConfig {
		case "Lookup":
			fmt.Println(io.ExampleLookupFile)
		case "Plot":
			fmt.Println(io.ExamplePlotFile)
		case "Curves":
			fmt.Println(io.ExampleCurvesFile)
		case "Definition":
			fmt.Print(io.ExampleDefinitionFile)
		default:
			log.Fatalf(
				"'%s' is not a valid config type. Accepted types are "+
					"'Lookup', 'Plot', 'Curves', and 'Definition'.",
				exampleConfig,
			)
		}
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but asce7 "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// openFileGroup redirects logging to the config's LogFile, if any. The file
// is also closed on log.Fatal, which exits without running deferred calls.
func openFileGroup(con *io.SharedConfig) *FileGroup {
	fg := &FileGroup{}
	if !con.ValidLogFile() {
		return fg
	}
	f, err := os.Create(con.LogFile)
	if err != nil {
		log.Fatal(err.Error())
	}
	fg.log = f
	log.SetOutput(f)
	log.RegisterExitHandler(fg.Close)
	return fg
}

func loadTable(con *io.SharedConfig, reg *io.Registry) *io.Table {
	opts := []interpolate.Option{}
	if opt, ok := con.BoundsOption(); ok {
		opts = append(opts, opt)
	}
	tab, err := reg.Load(con.Definition, opts...)
	if err != nil {
		log.Fatal(err.Error())
	}
	log.WithField("table", tab.Name).Debug(tab.String())
	return tab
}

// coords returns the coordinates a table with the given arity is evaluated
// at for first coordinate x.
func coords(arity int, x float64, y []float64) ([]float64, error) {
	switch {
	case arity == 1 && len(y) == 0:
		return []float64{x}, nil
	case arity == 2 && len(y) == 1:
		return []float64{x, y[0]}, nil
	}
	return nil, &standard.ArityError{Want: arity, Got: 1 + len(y)}
}

func lookupMain(con *io.LookupConfig, reg *io.Registry) {
	tab := loadTable(&con.SharedConfig, reg)
	f, err := tab.Lookup(con.Label[0])
	if err != nil {
		log.Fatal(err.Error())
	}

	for _, x := range con.X {
		cs, err := coords(tab.Arity, x, con.Y)
		if err != nil {
			log.Fatal(err.Error())
		}
		v, err := f(cs...)
		if err != nil {
			log.WithError(err).WithField("coords", cs).Error("Lookup failed")
			continue
		}
		fmt.Printf("%s\t%.6g\n", formatCoords(cs), v)
	}
}

func formatCoords(cs []float64) string {
	strs := make([]string, len(cs))
	for i := range cs {
		strs[i] = fmt.Sprintf("%g", cs[i])
	}
	return strings.Join(strs, "\t")
}

// samplePoints returns n points spanning [lo, hi], evenly spaced in log space
// if logX is set.
func samplePoints(lo, hi float64, n int, logX bool) []float64 {
	xs := make([]float64, n)
	if logX {
		lo, hi = math.Log10(lo), math.Log10(hi)
	}
	dx := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + dx*float64(i)
		if logX {
			xs[i] = math.Pow(10, xs[i])
		}
	}
	xs[n-1] = hi
	if logX {
		xs[n-1] = math.Pow(10, hi)
	}
	return xs
}

// sampleCurve evaluates f at every x and returns the points where it is
// defined, along with the number of points which were skipped.
func sampleCurve(
	f standard.Interpolant, arity int, xs, y []float64,
) (outX, outV []float64, skipped int, err error) {
	outX, outV = []float64{}, []float64{}
	for _, x := range xs {
		cs, err := coords(arity, x, y)
		if err != nil {
			return nil, nil, 0, err
		}
		v, err := f(cs...)
		if err != nil {
			skipped++
			continue
		}
		outX, outV = append(outX, x), append(outV, v)
	}
	return outX, outV, skipped, nil
}

func plotMain(con *io.PlotConfig, reg *io.Registry) {
	tab := loadTable(&con.SharedConfig, reg)
	labels := con.Label
	if len(labels) == 0 {
		labels = tab.Labels()
	}

	xs := samplePoints(con.XMin, con.XMax, con.Points, con.LogX)

	plt.Figure()
	for i, label := range labels {
		f, err := tab.Lookup(label)
		if err != nil {
			log.Fatal(err.Error())
		}
		px, pv, skipped, err := sampleCurve(f, tab.Arity, xs, con.Y)
		if err != nil {
			log.Fatal(err.Error())
		}
		if skipped > 0 {
			log.WithFields(log.Fields{
				"label": label, "skipped": skipped,
			}).Warn("Some points are outside the table")
		}
		plotCurve(i, label, px, pv)
	}

	decorate(tab.Name, tab.AxisNames, con.LogX)
	plt.SaveFig(con.Output)
	plt.Execute()

	log.WithField("output", con.Output).Info("Wrote plot")
}

// plotCurve draws the i-th labelled curve of a figure.
func plotCurve(i int, label string, xs, vs []float64) {
	plt.Plot(
		xs, vs, plt.LW(2), plt.C(colors[i%len(colors)]),
		plt.Label(label),
	)
}

// decorate titles the figure, labels its axes, and adds a legend naming each
// curve.
func decorate(title string, axisNames []string, logX bool) {
	plt.Title(title)
	if len(axisNames) > 0 {
		plt.XLabel(axisNames[0], plt.FontSize(16))
	}
	if logX {
		plt.XScale("log")
	}
	plt.Grid(plt.Axis("y"))
	plt.Grid(plt.Axis("x"), plt.Which("both"))
	plt.Legend(plt.Loc("best"), plt.FontSize(12))
}
