// core/constraint/constraint.go
package constraint

import (
	"errors"
	"fmt"

	"specclip-core/binary"
	"specclip-core/errorbox"
	"specclip-core/grid"
	"specclip-core/obs"
)

// ErrMissingCompanionInputs is returned when a companion spec is supplied
// without the isochrone-cloud grid or the ages table it needs. Fatal: no
// partial output is written in that case.
var ErrMissingCompanionInputs = errors.New(
	"companion constraints require an isochrone-cloud grid and an ages table")

// Config is the fixed run parameter set, passed explicitly rather than held as
// ambient state. Companion nil means a single-star run.
type Config struct {
	NSigma    int
	Companion *binary.Spec
}

// Engine applies the spectroscopic error-box constraint to a model grid.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine { return &Engine{cfg: cfg} }

// PrimaryBounds builds the n-sigma error boxes for the modelled star from its
// observations: Teff constrains logTeff in log space, logg and logL are
// linear. All three observables are required.
func PrimaryBounds(o obs.Observations, nsigma int) (errorbox.Bounds, error) {
	b := errorbox.Bounds{}
	teff, ok := o["Teff"]
	if !ok {
		return nil, fmt.Errorf("observations missing Teff/Teff_err")
	}
	b[grid.ColLogTeff] = errorbox.LogBox(teff.Value, teff.Err, nsigma)
	for _, name := range []string{grid.ColLogg, grid.ColLogL} {
		m, ok := o[name]
		if !ok {
			return nil, fmt.Errorf("observations missing %s/%s_err", name, name)
		}
		b[name] = errorbox.Box(m.Value, m.Err, nsigma)
	}
	return b, nil
}

// PrimaryCut keeps the models whose predicted observables fall inside the
// primary star's error boxes.
func (e *Engine) PrimaryCut(models *grid.Table, o obs.Observations) (*grid.Table, error) {
	b, err := PrimaryBounds(o, e.cfg.NSigma)
	if err != nil {
		return nil, err
	}
	return errorbox.Filter(models, b)
}

// CompanionKeep is the per-row survival predicate of the companion stage. It
// is independent across rows and safe to evaluate concurrently.
func (e *Engine) CompanionKeep(model grid.Row, cloud binary.IsoCloud, ages *grid.Table) (bool, error) {
	return binary.Compatible(model, *e.cfg.Companion, cloud, ages, e.cfg.NSigma)
}

// Run applies the full constraint serially: primary cut, then (for binary
// runs) the companion cut per surviving row. Filtering only ever removes rows;
// the output shares columns and row identity with the input.
func (e *Engine) Run(models *grid.Table, o obs.Observations, cloud binary.IsoCloud, ages *grid.Table) (*grid.Table, error) {
	kept, err := e.PrimaryCut(models, o)
	if err != nil {
		return nil, err
	}
	if e.cfg.Companion == nil {
		return kept, nil
	}
	if cloud == nil || ages == nil {
		return nil, ErrMissingCompanionInputs
	}

	mask := make([]bool, kept.Len())
	for i := 0; i < kept.Len(); i++ {
		ok, err := e.CompanionKeep(kept.Row(i), cloud, ages)
		if err != nil {
			return nil, err
		}
		mask[i] = ok
	}
	return kept.Select(mask), nil
}
