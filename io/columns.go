package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/asce7/math/interpolate"
	"github.com/phil-mansfield/asce7/units"
)

// ReadCurveColumns reads a digitized curve from two columns of a
// whitespace-separated text file and returns its axes in the given units.
func ReadCurveColumns(
	fname string, xCol, yCol int, xUnit, yUnit units.Kind,
) (ind, dep interpolate.Axis, err error) {
	cols, err := table.ReadTable(fname, []int{xCol, yCol}, nil)
	if err != nil {
		return ind, dep, err
	}

	xs, ys := cols[0], cols[1]
	if len(xs) < 2 {
		return ind, dep, fmt.Errorf(
			"Column file %s has %d row(s), but a curve needs at least two.",
			fname, len(xs),
		)
	}
	return interpolate.UnitAxis(xUnit, xs...), interpolate.UnitAxis(yUnit, ys...), nil
}
