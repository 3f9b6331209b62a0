package grid

import (
	"fmt"
	"strings"
)

// Table is the rectangular form of a set of x, y and z arrays. Every non-nil
// field has shape (Rows, Cols). Y is nil for tables of a single independent
// variable.
type Table struct {
	Rows, Cols int
	X, Y, Z    [][]float64
}

type namedArray struct {
	name string
	arr  Array
}

// Reconcile broadcasts x, y and z into a Table with a consistent rectangular
// shape. rows is the required number of rows, or 0 if the rows should be
// taken from the 2d arguments. y may be absent, in which case every row of
// the table is a single curve of x against z.
//
// Scalars are broadcast to every cell. 1d arguments are tiled across the
// rows. If x and y are both 1d, the columns are the x-major Cartesian product
// of x and y and every 2d argument must have len(x)*len(y) columns. Otherwise
// a 1d argument is repeated along each row as many times as needed to fill
// the columns, and a StrictDivisionError is returned if that number is not an
// integer.
func Reconcile(x, y, z Array, rows int) (*Table, error) {
	if x.Absent() || z.Absent() {
		return nil, &ShapeError{"Both x and z must be supplied."}
	}
	if rows < 0 {
		return nil, &ShapeError{fmt.Sprintf("Invalid number of rows, %d.", rows)}
	}

	args := []namedArray{{"x", x}, {"y", y}, {"z", z}}
	present := make([]namedArray, 0, 3)
	for _, a := range args {
		if !a.arr.Absent() {
			present = append(present, a)
		}
	}

	maxDims := 0
	for _, a := range present {
		if a.arr.Dims() > maxDims {
			maxDims = a.arr.Dims()
		}
	}

	cols := 0
	if maxDims == 2 {
		var err error
		rows, cols, err = matrixShape(present, rows)
		if err != nil {
			return nil, err
		}
	} else if rows == 0 {
		return nil, &ShapeError{
			"Must provide number of rows if no argument is 2d.",
		}
	}

	// Work out the column count and the per-argument column layout.
	product := !y.Absent() && x.Kind() == Vector && y.Kind() == Vector
	switch {
	case product:
		n := x.Len() * y.Len()
		if maxDims == 2 && cols != n {
			return nil, &ShapeError{fmt.Sprintf(
				"x and y give %d x %d = %d columns, but the 2d arrays have %d.",
				x.Len(), y.Len(), n, cols,
			)}
		}
		cols = n
	case maxDims == 2:
	case maxDims == 1:
		for _, a := range present {
			if a.arr.Kind() == Vector && a.arr.Len() > cols {
				cols = a.arr.Len()
			}
		}
	default:
		cols = 1
	}

	t := &Table{Rows: rows, Cols: cols}
	out := map[string]*[][]float64{"x": &t.X, "y": &t.Y, "z": &t.Z}
	for _, a := range present {
		var (
			cells [][]float64
			err   error
		)
		switch {
		case product && a.name == "x":
			cells = repeatRows(x.Values(), y.Len(), rows)
		case product && a.name == "y":
			cells = tileRows(y.Values(), x.Len(), rows)
		default:
			cells, err = broadcast(a, rows, cols, !y.Absent())
		}
		if err != nil {
			return nil, err
		}
		*out[a.name] = cells
	}

	for _, a := range present {
		cells := *out[a.name]
		if len(cells) != rows || (rows > 0 && len(cells[0]) != cols) {
			return nil, &ShapeError{"The shapes of the arrays are incompatible."}
		}
	}

	return t, nil
}

// matrixShape checks that every 2d argument has the same shape and that the
// row count agrees with rows, if it was given.
func matrixShape(present []namedArray, rows int) (nr, nc int, err error) {
	names := []string{}
	nr, nc = -1, -1
	mismatch := false
	for _, a := range present {
		if a.arr.Dims() != 2 {
			continue
		}
		names = append(names, a.name)
		r, c := a.arr.Shape()
		if nr == -1 {
			nr, nc = r, c
		} else if r != nr || c != nc {
			mismatch = true
		}
	}

	if mismatch {
		return 0, 0, &ShapeError{fmt.Sprintf(
			"The shapes of the 2d arrays %s do not match.",
			strings.Join(names, " and "),
		)}
	}
	if rows != 0 && rows != nr {
		return 0, 0, &ShapeError{fmt.Sprintf(
			"The provided number of rows, %d, and the %s 2d array shape(s), "+
				"(%d, %d), do not match.", rows, strings.Join(names, ", "), nr, nc,
		)}
	}
	return nr, nc, nil
}

func broadcast(a namedArray, rows, cols int, tile bool) ([][]float64, error) {
	switch a.arr.Kind() {
	case Scalar:
		cells := make([][]float64, rows)
		for i := range cells {
			cells[i] = make([]float64, cols)
			for j := range cells[i] {
				cells[i][j] = a.arr.Value()
			}
		}
		return cells, nil
	case Vector:
		vals := a.arr.Values()
		if !tile {
			// One independent variable: each row is the whole sequence.
			return tileRows(vals, 1, rows), nil
		}
		n, err := StrictDiv(cols, len(vals))
		if err != nil {
			return nil, fmt.Errorf(
				"Cannot tile %s (length %d) across %d columns: %w",
				a.name, len(vals), cols, err,
			)
		}
		return tileRows(vals, n, rows), nil
	case Matrix:
		src := a.arr.Rows()
		cells := make([][]float64, len(src))
		for i := range src {
			cells[i] = append([]float64(nil), src[i]...)
		}
		return cells, nil
	}
	panic("Impossible")
}

// tileRows returns rows copies of xs repeated n times end to end.
func tileRows(xs []float64, n, rows int) [][]float64 {
	cells := make([][]float64, rows)
	for i := range cells {
		cells[i] = make([]float64, 0, n*len(xs))
		for k := 0; k < n; k++ {
			cells[i] = append(cells[i], xs...)
		}
	}
	return cells
}

// repeatRows returns rows copies of xs with every element repeated n times.
func repeatRows(xs []float64, n, rows int) [][]float64 {
	cells := make([][]float64, rows)
	for i := range cells {
		cells[i] = make([]float64, 0, n*len(xs))
		for _, x := range xs {
			for k := 0; k < n; k++ {
				cells[i] = append(cells[i], x)
			}
		}
	}
	return cells
}
