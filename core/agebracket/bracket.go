// core/agebracket/bracket.go
package agebracket

import (
	"fmt"
	"math"

	"specclip-core/grid"
)

// Xc decreases with age along a track in steps of 0.01; endpoints are detected
// with a tighter tolerance than the step itself.
const (
	xcStep = 0.01
	xcTol  = 1e-4
)

var coordCols = []string{grid.ColZ, grid.ColM, grid.ColLogD, grid.ColAov, grid.ColFov}

// Bracket returns the admissible companion-age window for a candidate model:
// the ages of the evolutionary steps one step younger and one step older on
// the model's own track, in the (whole-unit) age units of the ages table.
//
// At the youngest step (maximum Xc on the metallicity) minAge is 0; at the
// oldest step there is no older neighbor to sample, so the younger-side age
// gap is mirrored forward: maxAge = age + (age - minAge).
func Bracket(model grid.Row, ages *grid.Table) (minAge, maxAge int, err error) {
	var coord [5]float64
	for i, c := range coordCols {
		v, ok := model.Value(c)
		if !ok {
			return 0, 0, fmt.Errorf("agebracket: model row has no %s", c)
		}
		coord[i] = v
	}
	xc, ok := model.Value(grid.ColXc)
	if !ok {
		return 0, 0, fmt.Errorf("agebracket: model row has no %s", grid.ColXc)
	}

	zc, ok := ages.Col(grid.ColZ)
	if !ok {
		return 0, 0, fmt.Errorf("agebracket: ages table has no %s", grid.ColZ)
	}
	xcc, ok := ages.Col(grid.ColXc)
	if !ok {
		return 0, 0, fmt.Errorf("agebracket: ages table has no %s", grid.ColXc)
	}

	// Xc extremes across the model's metallicity bin.
	xcMin, xcMax := math.Inf(1), math.Inf(-1)
	n := 0
	for i := 0; i < ages.Len(); i++ {
		r := ages.Row(i)
		if !grid.Close(r.At(zc), coord[0]) {
			continue
		}
		n++
		v := r.At(xcc)
		if v < xcMin {
			xcMin = v
		}
		if v > xcMax {
			xcMax = v
		}
	}
	if n == 0 {
		return 0, 0, &grid.LookupError{Matches: 0, Key: fmt.Sprintf("Z=%g", coord[0])}
	}

	switch {
	case math.Abs(xc-xcMax) < xcTol:
		// Youngest step on the track: no younger neighbor.
		older, err := ageAt(ages, coord, round2(xc-xcStep))
		if err != nil {
			return 0, 0, err
		}
		return 0, older, nil

	case math.Abs(xc-xcMin) < xcTol:
		// Oldest step: mirror the younger-side gap forward.
		younger, err := ageAt(ages, coord, round2(xc+xcStep))
		if err != nil {
			return 0, 0, err
		}
		own, err := ageAt(ages, coord, round2(xc))
		if err != nil {
			return 0, 0, err
		}
		return younger, own + own - younger, nil

	default:
		younger, err := ageAt(ages, coord, round2(xc+xcStep))
		if err != nil {
			return 0, 0, err
		}
		older, err := ageAt(ages, coord, round2(xc-xcStep))
		if err != nil {
			return 0, 0, err
		}
		return younger, older, nil
	}
}

// ageAt resolves the single ages-table row at the full coordinate tuple and
// returns its age truncated to whole units.
func ageAt(ages *grid.Table, coord [5]float64, xc float64) (int, error) {
	key := fmt.Sprintf("Z=%g M=%g logD=%g aov=%g fov=%g Xc=%g",
		coord[0], coord[1], coord[2], coord[3], coord[4], xc)

	cols := make([]int, len(coordCols))
	for i, c := range coordCols {
		ci, ok := ages.Col(c)
		if !ok {
			return 0, fmt.Errorf("agebracket: ages table has no %s", c)
		}
		cols[i] = ci
	}
	xcc, _ := ages.Col(grid.ColXc)
	ac, ok := ages.Col(grid.ColAge)
	if !ok {
		return 0, fmt.Errorf("agebracket: ages table has no %s", grid.ColAge)
	}

	row, err := ages.UniqueRow(func(r grid.Row) bool {
		for i, ci := range cols {
			if !grid.Close(r.At(ci), coord[i]) {
				return false
			}
		}
		return grid.Close(r.At(xcc), xc)
	}, key)
	if err != nil {
		return 0, err
	}
	return int(row.At(ac)), nil
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
