// internal/gridio/load.go
package gridio

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"specclip-core/binary"
	"specclip-core/grid"
	"specclip-core/obs"
)

// LoadTable reads one whitespace-delimited numeric table.
func LoadTable(path string) (*grid.Table, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	t, err := grid.ParseTable(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// LoadObservations reads an observation file (header row, first data row).
func LoadObservations(path string) (obs.Observations, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	o, err := obs.Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// LoadIsoCloud reads the flat isochrone-cloud table and groups it by
// metallicity, then by companion mass.
func LoadIsoCloud(path string) (binary.IsoCloud, error) {
	t, err := LoadTable(path)
	if err != nil {
		return nil, err
	}
	cloud, err := binary.Group(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cloud, nil
}

// Inputs is everything one constraint run reads. Ages and Cloud stay nil
// unless their paths are given (they are only needed for binary runs).
type Inputs struct {
	Models *grid.Table
	Obs    obs.Observations
	Ages   *grid.Table
	Cloud  binary.IsoCloud
}

// LoadInputs fetches the run's tables. The files are independent, so they are
// read concurrently; the first failure wins.
func LoadInputs(gridPath, obsPath, agesPath, isoPath string) (*Inputs, error) {
	var in Inputs
	var g errgroup.Group

	g.Go(func() error {
		t, err := LoadTable(gridPath)
		in.Models = t
		return err
	})
	g.Go(func() error {
		o, err := LoadObservations(obsPath)
		in.Obs = o
		return err
	})
	if agesPath != "" {
		g.Go(func() error {
			t, err := LoadTable(agesPath)
			in.Ages = t
			return err
		})
	}
	if isoPath != "" {
		g.Go(func() error {
			c, err := LoadIsoCloud(isoPath)
			in.Cloud = c
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &in, nil
}
