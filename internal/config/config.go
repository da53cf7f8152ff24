// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is one pipeline run description, loaded from a TOML file. The zero
// value of optional fields means "absent".
type Config struct {
	NSigma  int    `toml:"nsigma"`
	OutDir  string `toml:"out_dir"`
	Threads int    `toml:"threads"`
	Output  string `toml:"output"`

	Grid         Grid       `toml:"grid"`
	Observations string     `toml:"observations"`
	Companion    *Companion `toml:"companion"`
	Pipeline     Pipeline   `toml:"pipeline"`
}

// Grid points at the model grid and its spectroscopy+ages table.
type Grid struct {
	Path string `toml:"path"`
	Ages string `toml:"ages"`
}

// Companion describes the binary companion of the modelled star.
type Companion struct {
	Q            float64 `toml:"q"`
	QErr         float64 `toml:"q_err"`
	Pulsator     string  `toml:"pulsator"`
	Observations string  `toml:"observations"`
	Isocloud     string  `toml:"isocloud"`
}

// Pipeline carries the run bookkeeping shared by all stages: which observable
// sets later stages analyse, whether the observed data are periods or
// frequencies, and which grid parameters are held fixed.
type Pipeline struct {
	ObservableSets  [][]string         `toml:"observable_sets"`
	ObservedKind    string             `toml:"observed_kind"`
	FixedParameters map[string]float64 `toml:"fixed_parameters"`
	FreeParameters  []string           `toml:"free_parameters"`
}

// Load reads, defaults and validates a run configuration.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if cfg.NSigma == 0 {
		cfg.NSigma = 3
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.Output == "" {
		cfg.Output = "tsv"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations no stage could run with.
func (c Config) Validate() error {
	if c.Grid.Path == "" {
		return fmt.Errorf("grid.path is required")
	}
	if c.Observations == "" {
		return fmt.Errorf("observations is required")
	}
	if c.NSigma < 1 {
		return fmt.Errorf("nsigma must be ≥ 1")
	}
	if c.Output != "tsv" && c.Output != "json" {
		return fmt.Errorf("invalid output %q", c.Output)
	}
	if co := c.Companion; co != nil {
		if co.Q <= 0 {
			return fmt.Errorf("companion.q must be > 0")
		}
		if co.QErr < 0 || co.QErr >= co.Q {
			return fmt.Errorf("companion.q_err must be in [0, q)")
		}
		switch co.Pulsator {
		case "", "primary", "secondary":
		default:
			return fmt.Errorf("invalid companion.pulsator %q", co.Pulsator)
		}
		if co.Isocloud == "" || c.Grid.Ages == "" {
			return fmt.Errorf("companion runs require companion.isocloud and grid.ages")
		}
	}

	// Every observable set must reference the kind of data that was
	// observed; analysing periods as if they were frequencies is the one
	// mistake this file format makes easy.
	if kind := c.Pipeline.ObservedKind; kind != "" {
		for _, set := range c.Pipeline.ObservableSets {
			found := false
			for _, name := range set {
				if strings.Contains(name, kind) {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("observable set %v does not use the observed %s data", set, kind)
			}
		}
	}

	for param := range c.Pipeline.FixedParameters {
		for _, free := range c.Pipeline.FreeParameters {
			if param == free {
				return fmt.Errorf("parameter %q cannot be both fixed and free", param)
			}
		}
	}
	return nil
}

// NestedGridDir names the working directory of a fixed-parameter (nested
// grid) run; empty when no parameter is fixed.
func (c Config) NestedGridDir() string {
	if len(c.Pipeline.FixedParameters) == 0 {
		return ""
	}
	params := make([]string, 0, len(c.Pipeline.FixedParameters))
	for p := range c.Pipeline.FixedParameters {
		params = append(params, p)
	}
	sort.Strings(params)
	return "Nested_grid_fix_" + strings.Join(params, "_")
}
