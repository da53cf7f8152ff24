// core/binary/binary.go
package binary

import (
	"fmt"
	"math"

	"specclip-core/agebracket"
	"specclip-core/errorbox"
	"specclip-core/grid"
	"specclip-core/obs"
)

// Spec describes the binary companion of the modelled star: the mass ratio
// with its uncertainty, which component pulsates (and is therefore the one in
// the model grid), and whatever companion observables were measured. Every
// observable is optional; an absent one imposes no constraint.
type Spec struct {
	Q               float64
	QErr            float64
	PrimaryPulsates bool
	Obs             obs.Observations
}

// Track is one companion evolutionary track at a fixed mass.
type Track struct {
	Mass float64
	Rows *grid.Table
}

// ZGroup holds the companion tracks of one metallicity bin.
type ZGroup struct {
	Z      float64
	Tracks []Track
}

// IsoCloud is the isochrone-cloud grid: metallicity bins, each mapping
// companion mass to its track. Metallicity binning is shared with the model
// grid, so lookups are tolerance-matched.
type IsoCloud []ZGroup

// ByZ returns the tracks of the metallicity bin matching z.
func (c IsoCloud) ByZ(z float64) ([]Track, bool) {
	for _, g := range c {
		if grid.Close(g.Z, z) {
			return g.Tracks, true
		}
	}
	return nil, false
}

// Group materializes an IsoCloud from a flat companion table, grouping rows by
// metallicity and then by mass in first-seen order. The per-track row order of
// the input is preserved.
func Group(t *grid.Table) (IsoCloud, error) {
	for _, c := range []string{grid.ColZ, grid.ColM, grid.ColStarAge} {
		if !t.Has(c) {
			return nil, fmt.Errorf("isocloud: table has no column %q", c)
		}
	}
	zc, _ := t.Col(grid.ColZ)
	mc, _ := t.Col(grid.ColM)

	var cloud IsoCloud
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		z, m := r.At(zc), r.At(mc)

		gi := -1
		for j := range cloud {
			if grid.Close(cloud[j].Z, z) {
				gi = j
				break
			}
		}
		if gi < 0 {
			cloud = append(cloud, ZGroup{Z: z})
			gi = len(cloud) - 1
		}

		ti := -1
		for j := range cloud[gi].Tracks {
			if grid.Close(cloud[gi].Tracks[j].Mass, m) {
				ti = j
				break
			}
		}
		if ti < 0 {
			sub, err := grid.New(t.Columns())
			if err != nil {
				return nil, err
			}
			cloud[gi].Tracks = append(cloud[gi].Tracks, Track{Mass: m, Rows: sub})
			ti = len(cloud[gi].Tracks) - 1
		}
		if err := cloud[gi].Tracks[ti].Rows.Append(r.Values()); err != nil {
			return nil, err
		}
	}
	return cloud, nil
}

// MassRange is the admissible companion mass interval for a pulsator of mass
// m, rounded to the 0.1 Msun resolution of the companion grid. Ties round to
// the even tenth. When the secondary pulsates the ratio divides instead of
// multiplying, so the bounds swap roles.
func MassRange(m float64, s Spec) (lo, hi float64) {
	if s.PrimaryPulsates {
		lo = m * (s.Q - s.QErr)
		hi = m * (s.Q + s.QErr)
	} else {
		lo = m / (s.Q + s.QErr)
		hi = m / (s.Q - s.QErr)
	}
	return round1(lo), round1(hi)
}

// Bounds converts the companion observables into error-box bounds on the
// isochrone-cloud columns at the given sigma level.
func (s Spec) Bounds(nsigma int) errorbox.Bounds {
	b := errorbox.Bounds{}
	if m, ok := s.Obs["Teff"]; ok {
		b[grid.ColIsoTeff] = errorbox.LogBox(m.Value, m.Err, nsigma)
	}
	if m, ok := s.Obs["logg"]; ok {
		b[grid.ColIsoLogg] = errorbox.Box(m.Value, m.Err, nsigma)
	}
	if m, ok := s.Obs["logL"]; ok {
		b[grid.ColIsoLogL] = errorbox.Box(m.Value, m.Err, nsigma)
	}
	return b
}

// Compatible reports whether any companion track admits the candidate model:
// mass within the ratio-derived range, some rows strictly inside the
// age-bracket window, and those rows inside every companion error box. The
// scan is read-only and stops at the first satisfying track; this predicate
// runs once per surviving model row, so the short-circuit carries the cost of
// the whole companion stage.
func Compatible(model grid.Row, s Spec, cloud IsoCloud, ages *grid.Table, nsigma int) (bool, error) {
	minAge, maxAge, err := agebracket.Bracket(model, ages)
	if err != nil {
		return false, err
	}

	m, ok := model.Value(grid.ColM)
	if !ok {
		return false, fmt.Errorf("binary: model row has no %s", grid.ColM)
	}
	z, ok := model.Value(grid.ColZ)
	if !ok {
		return false, fmt.Errorf("binary: model row has no %s", grid.ColZ)
	}
	lo, hi := MassRange(m, s)

	tracks, ok := cloud.ByZ(z)
	if !ok {
		return false, fmt.Errorf("binary: isochrone-cloud has no metallicity bin Z=%g", z)
	}

	ageWindow := errorbox.Bounds{
		grid.ColStarAge: {Lo: float64(minAge), Hi: float64(maxAge)},
	}
	boxes := s.Bounds(nsigma)

	for _, tr := range tracks {
		if tr.Mass < lo || tr.Mass > hi {
			continue
		}
		win, err := errorbox.Filter(tr.Rows, ageWindow)
		if err != nil {
			return false, err
		}
		if win.Len() == 0 {
			continue
		}
		kept, err := errorbox.Filter(win, boxes)
		if err != nil {
			return false, err
		}
		if kept.Len() > 0 {
			return true, nil
		}
	}
	return false, nil
}

func round1(x float64) float64 { return math.RoundToEven(x*10) / 10 }
