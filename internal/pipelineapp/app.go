// internal/pipelineapp/app.go
package pipelineapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"specclip/internal/appcore"
	"specclip/internal/config"
	"specclip/internal/logutil"
	"specclip/internal/version"
)

// RunContext drives one configured pipeline run: load and validate the TOML
// run file, pick the working directory (nested-grid runs get their own), then
// execute the spectro-constraint stage. Exit codes follow the CLI: 0 ok,
// 2 configuration, 3 runtime, 130 cancelled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("specclip-pipeline", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`specclip-pipeline: run the spectroscopic clipping stage from a TOML run file
Version: %s

Usage of specclip-pipeline:
`, version.Version)
		fs.PrintDefaults()
	}

	var (
		cfgPath  = fs.String("config", "run.toml", "TOML run configuration [run.toml]")
		quiet    = fs.Bool("quiet", false, "suppress progress logging [false]")
		showVer  = fs.Bool("version", false, "print version and exit [false]")
		showHelp = fs.Bool("h", false, "show this help message (shorthand) [false]")
	)
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}
	if *showHelp {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}
	if *showVer {
		fmt.Fprintf(stdout, "specclip-pipeline version %s\n", version.Version)
		return 0
	}

	log := logutil.New("specclip-pipeline", stderr, *quiet)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Error().Err(err).Msg("invalid run configuration")
		return 2
	}

	outDir := cfg.OutDir
	if nested := cfg.NestedGridDir(); nested != "" {
		outDir = filepath.Join(outDir, nested)
		log.Info().Str("dir", outDir).Msg("nested-grid run")
	}

	opts := appcore.Options{
		GridFile: cfg.Grid.Path,
		ObsFile:  cfg.Observations,
		AgesFile: cfg.Grid.Ages,

		NSigma:  cfg.NSigma,
		Threads: cfg.Threads,
		Output:  cfg.Output,
		OutDir:  outDir,
	}
	if co := cfg.Companion; co != nil {
		opts.Q = co.Q
		opts.QErr = co.QErr
		opts.PrimaryPulsates = co.Pulsator != "secondary"
		opts.CompanionFile = co.Observations
		opts.IsoFile = co.Isocloud
	}

	log.Info().Str("stage", "spectro-clip").Msg("stage start")
	res, err := appcore.Run(parent, log, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		log.Error().Err(err).Str("stage", "spectro-clip").Msg("stage failed")
		return 3
	}
	log.Info().Str("stage", "spectro-clip").Int("kept", res.Out).Msg("stage done")

	fmt.Fprintln(stdout, res.Path)
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
