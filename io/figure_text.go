package io

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/phil-mansfield/asce7/math/interpolate"
	"github.com/phil-mansfield/asce7/standard"
	"github.com/phil-mansfield/asce7/units"
)

// ParseFigureText parses a figure transcribed as text. Blocks are separated
// by blank lines. An optional first block with no numeric row is the title.
// Every other block is one curve: one or more name lines, then the row of
// independent values, then the row of dependent values. A row is a label
// followed by at least two numbers:
//
//	0 deg to 7 deg Roof Slope
//
//	Zone 1 Up
//	area (sq ft)    1       10      500     2000
//	GCp             -1.7    -1.7    -1.0    -1.0
//
// Lines starting with '#' are ignored. The returned labels are the row labels
// of the first curve. ind and dep give the units of the two rows.
func ParseFigureText(
	text string, ind, dep units.Kind, opts ...interpolate.Option,
) (fig *standard.Figure, xLabel, yLabel string, err error) {
	blocks := splitBlocks(text)

	title := ""
	if len(blocks) > 0 && !blocks[0].numeric() {
		title = strings.Join(blocks[0].text, " ")
		blocks = blocks[1:]
	}

	defs := make([]standard.CurveDef, len(blocks))
	for i, b := range blocks {
		if len(b.text) < 3 {
			return nil, "", "", fmt.Errorf(
				"Curve starting on line %d needs a name line and two rows, "+
					"but has %d line(s).", b.line, len(b.text),
			)
		}
		n := len(b.text)
		xl, xs, err := parseRow(b.text[n-2], b.line+n-2)
		if err != nil {
			return nil, "", "", err
		}
		yl, ys, err := parseRow(b.text[n-1], b.line+n-1)
		if err != nil {
			return nil, "", "", err
		}
		if i == 0 {
			xLabel, yLabel = xl, yl
		}

		defs[i] = standard.CurveDef{
			Name:        strings.Join(b.text[:n-2], " "),
			Independent: interpolate.UnitAxis(ind, xs...),
			Dependent:   interpolate.UnitAxis(dep, ys...),
		}
	}

	fig, err = standard.NewFigure(title, defs, opts...)
	if err != nil {
		return nil, "", "", err
	}
	return fig, xLabel, yLabel, nil
}

type textBlock struct {
	// line is the 1-indexed line number of the first line in the block.
	line int
	text []string
}

func (b textBlock) numeric() bool {
	_, xs := splitRow(b.text[len(b.text)-1])
	return len(xs) > 0
}

func splitBlocks(text string) []textBlock {
	blocks := []textBlock{}
	var curr *textBlock
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		} else if line == "" {
			curr = nil
			continue
		}

		if curr == nil {
			blocks = append(blocks, textBlock{line: i + 1})
			curr = &blocks[len(blocks)-1]
		}
		curr.text = append(curr.text, line)
	}
	return blocks
}

// splitRow splits a line into its label and its trailing numeric tokens.
func splitRow(line string) (string, []float64) {
	tok := strings.Fields(line)
	start := len(tok)
	for start > 0 {
		if _, err := cast.ToFloat64E(tok[start-1]); err != nil {
			break
		}
		start--
	}

	xs := make([]float64, len(tok)-start)
	for i := range xs {
		xs[i] = cast.ToFloat64(tok[start+i])
	}
	return strings.Join(tok[:start], " "), xs
}

func parseRow(line string, lineNum int) (string, []float64, error) {
	label, xs := splitRow(line)
	if len(xs) < 2 {
		return "", nil, fmt.Errorf(
			"Line %d, '%s', needs at least two trailing numbers.", lineNum, line,
		)
	}
	return label, xs, nil
}
