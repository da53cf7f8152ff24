// internal/appcore/core.go
package appcore

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"specclip-core/binary"
	"specclip-core/constraint"
	"specclip-core/grid"
	"specclip-core/obs"
	"specclip/internal/gridio"
	"specclip/internal/pipeline"
)

// Options is the full parameter set of one constraint run, shared by the CLI
// and the pipeline runner. Companion mode is enabled by Q > 0.
type Options struct {
	GridFile string
	ObsFile  string
	AgesFile string
	IsoFile  string

	NSigma int

	Q               float64
	QErr            float64
	PrimaryPulsates bool
	CompanionFile   string

	Threads int

	Output string // tsv | json
	OutDir string
}

// Result reports what one run did.
type Result struct {
	Path string // output file written
	In   int    // model rows loaded
	Out  int    // model rows surviving
}

// Run loads the inputs, applies the primary cut and (for binary runs) the
// parallel companion cut, and writes the tagged output file. Any failure
// aborts before an output file exists; an empty surviving set is still
// written.
func Run(ctx context.Context, log zerolog.Logger, o Options) (Result, error) {
	start := time.Now()

	in, err := gridio.LoadInputs(o.GridFile, o.ObsFile, o.AgesFile, o.IsoFile)
	if err != nil {
		return Result{}, err
	}

	cfg := constraint.Config{NSigma: o.NSigma}
	if o.Q > 0 {
		spec := &binary.Spec{Q: o.Q, QErr: o.QErr, PrimaryPulsates: o.PrimaryPulsates}
		if o.CompanionFile != "" {
			co, err := gridio.LoadObservations(o.CompanionFile)
			if err != nil {
				return Result{}, err
			}
			spec.Obs = co
		} else {
			spec.Obs = obs.Observations{}
		}
		cfg.Companion = spec
	}
	eng := constraint.New(cfg)

	kept, err := eng.PrimaryCut(in.Models, in.Obs)
	if err != nil {
		return Result{}, err
	}
	log.Info().Int("models", in.Models.Len()).Int("after_primary", kept.Len()).
		Int("nsigma", o.NSigma).Msg("primary error-box cut")

	if cfg.Companion != nil {
		if in.Cloud == nil || in.Ages == nil {
			return Result{}, constraint.ErrMissingCompanionInputs
		}
		kept, err = pipeline.FilterRows(ctx, pipeline.Config{Threads: o.Threads}, kept,
			func(r grid.Row) (bool, error) {
				return eng.CompanionKeep(r, in.Cloud, in.Ages)
			})
		if err != nil {
			return Result{}, err
		}
		log.Info().Int("after_companion", kept.Len()).Msg("companion isochrone-cloud cut")
	}

	path := filepath.Join(o.OutDir, gridio.OutputName(o.NSigma, o.GridFile, o.Output))
	if err := gridio.WriteTable(path, kept, o.Output, o.NSigma); err != nil {
		return Result{}, err
	}

	res := Result{Path: path, In: in.Models.Len(), Out: kept.Len()}
	log.Info().Str("path", path).Dur("elapsed", time.Since(start)).Msg("filtered grid written")
	return res, nil
}
