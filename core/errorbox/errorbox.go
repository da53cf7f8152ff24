// core/errorbox/errorbox.go
package errorbox

import (
	"fmt"
	"math"

	"specclip-core/grid"
)

// Interval is an open acceptance interval (Lo, Hi).
type Interval struct {
	Lo float64
	Hi float64
}

// Contains is strict: values exactly on a bound are rejected.
func (iv Interval) Contains(v float64) bool { return v > iv.Lo && v < iv.Hi }

// Bounds maps an observable column name to its acceptance interval.
// Observables not listed impose no restriction.
type Bounds map[string]Interval

// Box is the n-sigma acceptance interval around a measurement.
func Box(mean, sigma float64, nsigma int) Interval {
	d := float64(nsigma) * sigma
	return Interval{Lo: mean - d, Hi: mean + d}
}

// LogBox is the n-sigma box for a quantity observed in linear space but
// tabulated in log10. The uncertainty is linear, so the bounds are
// log10(mean ± n·sigma), not log10(mean) ± n·sigma.
func LogBox(mean, sigma float64, nsigma int) Interval {
	d := float64(nsigma) * sigma
	return Interval{Lo: math.Log10(mean - d), Hi: math.Log10(mean + d)}
}

// Filter keeps the rows of t whose value lies strictly inside the interval of
// every bounded column. Pure: t is never mutated, surviving rows are shared
// untouched. An empty result is a valid result.
func Filter(t *grid.Table, b Bounds) (*grid.Table, error) {
	type cut struct {
		col int
		iv  Interval
	}
	cuts := make([]cut, 0, len(b))
	for name, iv := range b {
		i, ok := t.Col(name)
		if !ok {
			return nil, fmt.Errorf("errorbox: table has no column %q", name)
		}
		cuts = append(cuts, cut{col: i, iv: iv})
	}
	return t.Filter(func(r grid.Row) bool {
		for _, c := range cuts {
			if !c.iv.Contains(r.At(c.col)) {
				return false
			}
		}
		return true
	}), nil
}
