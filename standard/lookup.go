package standard

import (
	"fmt"
	"strings"

	"github.com/phil-mansfield/asce7/math/grid"
	"github.com/phil-mansfield/asce7/math/interpolate"
)

// Lookup is a table whose rows are labelled and each hold one complete
// interpolable function. The x, y, and z arrays are shape reconciled (see
// grid.Reconcile) with one row per index label, so values shared by every row
// only need to be given once.
//
// Without y, each row is a curve of z against x. With y, the columns of each
// row are grouped by their x value, in order of first appearance, into a
// family of curves of z against y, and the row is evaluated with
// interpolate.Twice.
type Lookup struct {
	index  []string
	table  *grid.Table
	lookup map[string]Interpolant
}

// NewLookup builds a Lookup with one row per label in index.
func NewLookup(
	x, y, z grid.Array, index []string, opts ...interpolate.Option,
) (*Lookup, error) {
	if err := checkLabels(index); err != nil {
		return nil, err
	}

	t, err := grid.Reconcile(x, y, z, len(index))
	if err != nil {
		return nil, err
	}

	lk := &Lookup{index, t, make(map[string]Interpolant, len(index))}
	for r, label := range index {
		var f Interpolant
		if t.Y == nil {
			var lin *interpolate.Linear
			lin, err = interpolate.NewLinear(t.X[r], t.Z[r], opts...)
			if err == nil {
				f = linearInterpolant(lin)
			}
		} else {
			f, err = groupedTwice(t.X[r], t.Y[r], t.Z[r], opts)
		}
		if err != nil {
			return nil, fmt.Errorf("Row '%s': %w", label, err)
		}
		lk.lookup[label] = f
	}

	return lk, nil
}

func groupedTwice(xs, ys, zs []float64, opts []interpolate.Option) (Interpolant, error) {
	rows := []float64{}
	group := map[float64]int{}
	curveYs, curveZs := [][]float64{}, [][]float64{}

	for j := range xs {
		g, ok := group[xs[j]]
		if !ok {
			g = len(rows)
			group[xs[j]] = g
			rows = append(rows, xs[j])
			curveYs, curveZs = append(curveYs, nil), append(curveZs, nil)
		}
		curveYs[g] = append(curveYs[g], ys[j])
		curveZs[g] = append(curveZs[g], zs[j])
	}

	tw, err := interpolate.NewJaggedTwice(rows, curveYs, curveZs, opts...)
	if err != nil {
		return nil, err
	}
	return twiceInterpolant(tw), nil
}

// Lookup returns the Interpolant for the row with the given label.
func (lk *Lookup) Lookup(label string) (Interpolant, error) {
	f, ok := lk.lookup[label]
	if !ok {
		return nil, &LabelError{label, "not an index label of this lookup"}
	}
	return f, nil
}

// Index returns the row labels.
func (lk *Lookup) Index() []string { return lk.index }

// Table returns the reconciled data.
func (lk *Lookup) Table() *grid.Table { return lk.table }

func (lk *Lookup) String() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Lookup(%d rows, %d columns)", lk.table.Rows, lk.table.Cols)
	for r, label := range lk.index {
		fmt.Fprintf(sb, "\n%s\tx=%g", label, lk.table.X[r])
		if lk.table.Y != nil {
			fmt.Fprintf(sb, " y=%g", lk.table.Y[r])
		}
		fmt.Fprintf(sb, " z=%g", lk.table.Z[r])
	}
	return sb.String()
}
