// core/grid/grid.go
package grid

import (
	"fmt"
	"math"
)

// Canonical column names shared by the model grid, the ages table and the
// isochrone-cloud table.
const (
	ColZ    = "Z"
	ColM    = "M"
	ColLogD = "logD"
	ColAov  = "aov"
	ColFov  = "fov"
	ColXc   = "Xc"
	ColAge  = "age"

	ColLogTeff = "logTeff"
	ColLogg    = "logg"
	ColLogL    = "logL"

	// Isochrone-cloud spelling of the same observables.
	ColStarAge = "star_age"
	ColIsoTeff = "log_Teff"
	ColIsoLogg = "log_g"
	ColIsoLogL = "log_L"
)

// Grid coordinates are stored with round-off, so equality is tolerance-based
// everywhere. Same defaults as numpy.isclose.
const (
	rtol = 1e-5
	atol = 1e-8
)

// Close reports whether two grid coordinates denote the same nominal value.
func Close(a, b float64) bool {
	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}

// Table is an ordered, column-named table of float64 rows. Filtering produces
// new tables; rows keep the index they were loaded with, so row identity
// survives any number of cuts.
type Table struct {
	cols []string
	idx  map[string]int
	rows []Row
}

// Row is one table row together with its original load-time index.
type Row struct {
	Index int
	idx   map[string]int
	vals  []float64
}

// New returns an empty table with the given column set.
func New(cols []string) (*Table, error) {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("grid: duplicate column %q", c)
		}
		idx[c] = i
	}
	return &Table{cols: append([]string(nil), cols...), idx: idx}, nil
}

// Append adds a row; its index is the current row count.
func (t *Table) Append(vals []float64) error {
	if len(vals) != len(t.cols) {
		return fmt.Errorf("grid: row has %d fields, table has %d columns", len(vals), len(t.cols))
	}
	t.rows = append(t.rows, Row{Index: len(t.rows), idx: t.idx, vals: vals})
	return nil
}

func (t *Table) Len() int          { return len(t.rows) }
func (t *Table) Columns() []string { return append([]string(nil), t.cols...) }
func (t *Table) Row(i int) Row     { return t.rows[i] }

// Col resolves a column name to its position.
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.idx[name]
	return i, ok
}

func (t *Table) Has(name string) bool {
	_, ok := t.idx[name]
	return ok
}

// Filter returns the subset of rows for which keep is true. Rows are shared,
// not copied; the receiver is left untouched.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{cols: t.cols, idx: t.idx}
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Select returns the subset of rows whose mask entry is true.
func (t *Table) Select(mask []bool) *Table {
	out := &Table{cols: t.cols, idx: t.idx}
	for i, r := range t.rows {
		if mask[i] {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// At returns the value in column position i (resolve with Col once, then use
// At in loops).
func (r Row) At(i int) float64 { return r.vals[i] }

// Value looks a cell up by column name.
func (r Row) Value(name string) (float64, bool) {
	i, ok := r.idx[name]
	if !ok {
		return 0, false
	}
	return r.vals[i], true
}

// Values exposes the raw cells, in column order.
func (r Row) Values() []float64 { return r.vals }

// LookupError reports a coordinate tuple that matched zero or several rows
// where the grid must contain exactly one.
type LookupError struct {
	Matches int
	Key     string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("grid lookup %s: %d rows matched, want exactly 1", e.Key, e.Matches)
}

// UniqueRow returns the single row satisfying match. Zero or multiple matches
// are a data-consistency fault, reported as *LookupError; never guessed around.
func (t *Table) UniqueRow(match func(Row) bool, key string) (Row, error) {
	found := -1
	n := 0
	for i, r := range t.rows {
		if match(r) {
			n++
			found = i
		}
	}
	if n != 1 {
		return Row{}, &LookupError{Matches: n, Key: key}
	}
	return t.rows[found], nil
}
