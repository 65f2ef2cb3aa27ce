package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Table is a year-indexed multivariate series. Rows are chronologically
// sorted, years are unique and values carry no NaN once constructed.
type Table struct {
	Years []int
	Names []string
	Y     *mat.Dense
}

// NewTable validates the index and data before wrapping them.
func NewTable(years []int, names []string, y *mat.Dense) (*Table, error) {
	if y == nil {
		return nil, fmt.Errorf("table data not provided")
	}
	r, c := y.Dims()
	if len(years) != r {
		return nil, fmt.Errorf("year index has %d entries for %d rows", len(years), r)
	}
	if len(names) != c {
		return nil, fmt.Errorf("got %d variable names for %d columns", len(names), c)
	}
	for i := 1; i < r; i++ {
		if years[i] < years[i-1] {
			return nil, fmt.Errorf("year index not sorted at position %d (%d after %d)", i, years[i], years[i-1])
		}
		if years[i] == years[i-1] {
			return nil, fmt.Errorf("duplicate year %d in index", years[i])
		}
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(y.At(i, j)) {
				return nil, fmt.Errorf("NaN at row %d column %q", i, names[j])
			}
		}
	}
	return &Table{Years: years, Names: names, Y: y}, nil
}

// Rows returns the number of observations.
func (t *Table) Rows() int {
	r, _ := t.Y.Dims()
	return r
}

// NumVars returns the number of variables.
func (t *Table) NumVars() int {
	_, c := t.Y.Dims()
	return c
}

// Column copies out the series in column j.
func (t *Table) Column(j int) []float64 {
	r, _ := t.Y.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = t.Y.At(i, j)
	}
	return out
}

// LastRow copies out the last observed values, one per variable.
func (t *Table) LastRow() []float64 {
	r, c := t.Y.Dims()
	out := make([]float64, c)
	for j := 0; j < c; j++ {
		out[j] = t.Y.At(r-1, j)
	}
	return out
}

// Diff returns a new table of first differences. The leading row drops,
// so the result has one fewer observation than the receiver.
func (t *Table) Diff() *Table {
	r, c := t.Y.Dims()
	d := mat.NewDense(r-1, c, nil)
	for i := 1; i < r; i++ {
		for j := 0; j < c; j++ {
			d.Set(i-1, j, t.Y.At(i, j)-t.Y.At(i-1, j))
		}
	}
	years := make([]int, r-1)
	copy(years, t.Years[1:])
	names := make([]string, c)
	copy(names, t.Names)
	return &Table{Years: years, Names: names, Y: d}
}
