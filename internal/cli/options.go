// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"specclip/internal/version"
)

// Pulsator selects which binary component the model grid describes.
const (
	PulsatorPrimary   = "primary"
	PulsatorSecondary = "secondary"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs
	GridFile string
	ObsFile  string
	AgesFile string
	IsoFile  string

	// Constraint
	NSigma int

	// Companion (binary runs; enabled by --q > 0)
	Q             float64
	QErr          float64
	Pulsator      string
	CompanionFile string

	// Performance
	Threads int

	// Output
	Output string
	OutDir string

	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: spectroscopic clipping of stellar model grids

Filters a theoretical model grid against observed spectroscopy (n-sigma error
boxes) and, for binaries, against isochrone-cloud companion tracks.
Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Inputs
	fs.StringVar(&opt.GridFile, "grid", "", "model grid table (.tsv/.tsv.gz or '-') [*]")
	fs.StringVar(&opt.ObsFile, "observations", "", "observation table, first data row used [*]")
	fs.StringVar(&opt.AgesFile, "ages", "", "grid spectroscopy+ages table (binary runs)")
	fs.StringVar(&opt.IsoFile, "isocloud", "", "isochrone-cloud companion table (binary runs)")

	// Constraint
	fs.IntVar(&opt.NSigma, "nsigma", 3, "half-width of the acceptance box in sigmas [3]")

	// Companion
	fs.Float64Var(&opt.Q, "q", 0, "binary mass ratio; 0 models a single star [0]")
	fs.Float64Var(&opt.QErr, "q-err", 0, "mass-ratio uncertainty [0]")
	fs.StringVar(&opt.Pulsator, "pulsator", PulsatorPrimary, "which component pulsates: primary | secondary ["+PulsatorPrimary+"]")
	fs.StringVar(&opt.CompanionFile, "companion", "", "companion observation table (optional)")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "tsv", "output format: tsv | json [tsv]")
	fs.StringVar(&opt.OutDir, "out-dir", ".", "directory for the filtered grid (created as needed) [.]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress logging [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	if opt.GridFile == "" {
		return opt, errors.New("--grid is required")
	}
	if opt.ObsFile == "" {
		return opt, errors.New("--observations is required")
	}
	if opt.NSigma < 1 {
		return opt, errors.New("--nsigma must be ≥ 1")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Output != "tsv" && opt.Output != "json" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.Q < 0 || opt.QErr < 0 {
		return opt, errors.New("--q and --q-err must be ≥ 0")
	}
	if opt.Pulsator != PulsatorPrimary && opt.Pulsator != PulsatorSecondary {
		return opt, fmt.Errorf("invalid --pulsator %q", opt.Pulsator)
	}
	if opt.Q > 0 {
		if opt.IsoFile == "" || opt.AgesFile == "" {
			return opt, errors.New("binary runs (--q) require --isocloud and --ages")
		}
		if opt.QErr >= opt.Q {
			return opt, errors.New("--q-err must be smaller than --q")
		}
	} else if opt.CompanionFile != "" {
		return opt, errors.New("--companion requires --q")
	}
	return opt, nil
}
