// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"specclip/internal/appcore"
	"specclip/internal/cli"
	"specclip/internal/logutil"
	"specclip/internal/version"
)

// RunContext parses argv, runs one spectro-constraint pass and reports an
// exit code: 0 ok (an empty surviving set is ok), 2 usage or configuration,
// 3 runtime failure, 130 cancelled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("specclip")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "specclip version %s\n", version.Version)
		return 0
	}

	log := logutil.New("specclip", stderr, opts.Quiet)

	res, err := appcore.Run(parent, log, appcore.Options{
		GridFile: opts.GridFile,
		ObsFile:  opts.ObsFile,
		AgesFile: opts.AgesFile,
		IsoFile:  opts.IsoFile,

		NSigma: opts.NSigma,

		Q:               opts.Q,
		QErr:            opts.QErr,
		PrimaryPulsates: opts.Pulsator == cli.PulsatorPrimary,
		CompanionFile:   opts.CompanionFile,

		Threads: opts.Threads,
		Output:  opts.Output,
		OutDir:  opts.OutDir,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		log.Error().Err(err).Msg("run aborted")
		return 3
	}

	fmt.Fprintln(stdout, res.Path)
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
