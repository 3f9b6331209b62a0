/*package grid handles the literal arrays that tables and figures are
transcribed as. An Array is a scalar, a 1D sequence or a rectangular 2D array;
Reconcile turns a set of them into one consistent rectangular Table.
*/
package grid

import (
	"fmt"

	"github.com/spf13/cast"
)

// Kind is the dimensionality tag of an Array.
type Kind int

const (
	// None is the zero Array: an argument which was not supplied.
	None Kind = iota
	Scalar
	Vector
	Matrix
)

// Array is a tagged scalar, 1D or 2D array of float64 values. The zero value
// is an absent array.
//
// Arrays are not copied on construction and must not be modified afterwards.
type Array struct {
	kind Kind
	val  float64
	vec  []float64
	mat  [][]float64
}

// NewScalar returns a 0D array.
func NewScalar(x float64) Array { return Array{kind: Scalar, val: x} }

// NewVector returns a 1D array.
func NewVector(xs ...float64) Array { return Array{kind: Vector, vec: xs} }

// NewMatrix returns a 2D array. Every row must have the same length.
func NewMatrix(rows [][]float64) (Array, error) {
	if len(rows) == 0 {
		return Array{}, &ShapeError{"A 2d array must have at least one row."}
	}
	for i := range rows {
		if len(rows[i]) != len(rows[0]) {
			return Array{}, &ShapeError{fmt.Sprintf(
				"Row %d of 2d array has length %d, but row 0 has length %d.",
				i, len(rows[i]), len(rows[0]),
			)}
		}
	}
	return Array{kind: Matrix, mat: rows}, nil
}

// MustMatrix is NewMatrix for literal data known to be rectangular. It panics
// otherwise.
func MustMatrix(rows [][]float64) Array {
	a, err := NewMatrix(rows)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// FromAny converts decoded literal data (numbers, []interface{} and nested
// []interface{} as produced by YAML or JSON decoders, or typed float slices)
// into an Array. nil becomes the absent array.
func FromAny(v interface{}) (Array, error) {
	switch x := v.(type) {
	case nil:
		return Array{}, nil
	case Array:
		return x, nil
	case []float64:
		return NewVector(x...), nil
	case [][]float64:
		return NewMatrix(x)
	case []interface{}:
		return fromSlice(x)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return Array{}, fmt.Errorf("Cannot convert %v to a number: %w", v, err)
	}
	return NewScalar(f), nil
}

func fromSlice(xs []interface{}) (Array, error) {
	if len(xs) == 0 {
		return NewVector(), nil
	}

	if _, nested := xs[0].([]interface{}); !nested {
		vec := make([]float64, len(xs))
		for i := range xs {
			f, err := cast.ToFloat64E(xs[i])
			if err != nil {
				return Array{}, fmt.Errorf(
					"Element %d of 1d array, %v, is not a number: %w", i, xs[i], err,
				)
			}
			vec[i] = f
		}
		return NewVector(vec...), nil
	}

	rows := make([][]float64, len(xs))
	for i := range xs {
		row, ok := xs[i].([]interface{})
		if !ok {
			return Array{}, &ShapeError{fmt.Sprintf(
				"Row %d of 2d array is not a sequence.", i,
			)}
		}
		rows[i] = make([]float64, len(row))
		for j := range row {
			if _, deeper := row[j].([]interface{}); deeper {
				return Array{}, &ShapeError{
					"Invalid max. argument dimensions: arrays may be at most 2d.",
				}
			}
			f, err := cast.ToFloat64E(row[j])
			if err != nil {
				return Array{}, fmt.Errorf(
					"Element (%d, %d) of 2d array, %v, is not a number: %w",
					i, j, row[j], err,
				)
			}
			rows[i][j] = f
		}
	}
	return NewMatrix(rows)
}

// Kind returns the dimensionality tag of the array.
func (a Array) Kind() Kind { return a.kind }

// Dims returns the number of dimensions of the array, or -1 if it is absent.
func (a Array) Dims() int { return int(a.kind) - 1 }

// Absent returns true for the zero Array.
func (a Array) Absent() bool { return a.kind == None }

// Shape returns the number of rows and columns. A vector is a single row.
func (a Array) Shape() (rows, cols int) {
	switch a.kind {
	case Scalar:
		return 1, 1
	case Vector:
		return 1, len(a.vec)
	case Matrix:
		return len(a.mat), len(a.mat[0])
	}
	return 0, 0
}

// Len returns the number of elements along the first dimension.
func (a Array) Len() int {
	switch a.kind {
	case Scalar:
		return 1
	case Vector:
		return len(a.vec)
	case Matrix:
		return len(a.mat)
	}
	return 0
}

// Value returns the value of a scalar.
func (a Array) Value() float64 { return a.val }

// Values returns the elements of a vector.
func (a Array) Values() []float64 { return a.vec }

// Rows returns the rows of a matrix.
func (a Array) Rows() [][]float64 { return a.mat }

// Transpose returns the transpose of a matrix. Other arrays are returned
// unchanged.
func (a Array) Transpose() Array {
	if a.kind != Matrix {
		return a
	}
	nr, nc := a.Shape()
	t := make([][]float64, nc)
	for j := range t {
		t[j] = make([]float64, nr)
		for i := range a.mat {
			t[j][i] = a.mat[i][j]
		}
	}
	return Array{kind: Matrix, mat: t}
}

func (a Array) String() string {
	switch a.kind {
	case Scalar:
		return fmt.Sprintf("%g", a.val)
	case Vector:
		return fmt.Sprintf("%g", a.vec)
	case Matrix:
		return fmt.Sprintf("%g", a.mat)
	}
	return "<absent>"
}

// Map returns a copy of the array with f applied to every element.
func (a Array) Map(f func(float64) float64) Array {
	switch a.kind {
	case Scalar:
		return NewScalar(f(a.val))
	case Vector:
		vec := make([]float64, len(a.vec))
		for i := range vec {
			vec[i] = f(a.vec[i])
		}
		return NewVector(vec...)
	case Matrix:
		mat := make([][]float64, len(a.mat))
		for i := range mat {
			mat[i] = make([]float64, len(a.mat[i]))
			for j := range mat[i] {
				mat[i][j] = f(a.mat[i][j])
			}
		}
		return Array{kind: Matrix, mat: mat}
	}
	return a
}
