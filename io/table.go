/*package io loads table and figure definitions from files and reads the
configuration files of the asce7 command.
*/
package io

import (
	"fmt"
	"sort"

	"github.com/phil-mansfield/asce7/standard"
)

// Table is a loaded parameter definition: a set of labelled interpolants which
// all take the same number of coordinates.
type Table struct {
	Name string
	// Kind is the definition kind the table was loaded from.
	Kind string
	// Arity is the number of coordinates each interpolant takes.
	Arity int
	// AxisNames names each coordinate, if known.
	AxisNames []string

	labels []string
	lookup func(label string) (standard.Interpolant, error)
}

// Labels returns the labels of the table in declaration order.
func (t *Table) Labels() []string { return t.labels }

// Lookup returns the interpolant for label.
func (t *Table) Lookup(label string) (standard.Interpolant, error) {
	return t.lookup(label)
}

func (t *Table) String() string {
	return fmt.Sprintf(
		"%s '%s': %d coordinate(s) %v, labels %v",
		t.Kind, t.Name, t.Arity, t.AxisNames, t.labels,
	)
}

func standardTable(name string, ps *standard.ParameterStandard) *Table {
	names := []string{}
	for _, idx := range ps.Index() {
		names = append(names, idx.Name)
	}
	return &Table{
		Name: name, Kind: KindStandard, Arity: len(names), AxisNames: names,
		labels: ps.Labels(), lookup: ps.Lookup,
	}
}

func figureTable(name string, fig *standard.Figure, axis string) *Table {
	return &Table{
		Name: name, Kind: KindFigure, Arity: 1, AxisNames: []string{axis},
		labels: fig.Names(), lookup: fig.Interpolant,
	}
}

func dictTable(name string, arity int, fs map[string]standard.Interpolant) *Table {
	labels := make([]string, 0, len(fs))
	for label := range fs {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return &Table{
		Name: name, Kind: KindDict, Arity: arity, AxisNames: []string{"x", "y"}[:arity],
		labels: labels,
		lookup: func(label string) (standard.Interpolant, error) {
			f, ok := fs[label]
			if !ok {
				return nil, &standard.LabelError{Label: label, Reason: "not a key of this table"}
			}
			return f, nil
		},
	}
}

func lookupTable(name string, arity int, lk *standard.Lookup) *Table {
	return &Table{
		Name: name, Kind: KindLookup, Arity: arity, AxisNames: []string{"x", "y"}[:arity],
		labels: lk.Index(), lookup: lk.Lookup,
	}
}
