// core/agebracket/bracket_test.go
package agebracket

import (
	"errors"
	"testing"

	"specclip-core/grid"
)

// One synthetic track: Z=0.014 M=3.0 logD=0 aov=0 fov=0, three evolutionary
// steps. Xc decreases with age.
func agesTable(t *testing.T) *grid.Table {
	t.Helper()
	tab, err := grid.New([]string{"Z", "M", "logD", "aov", "fov", "Xc", "age"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, r := range [][]float64{
		{0.014, 3.0, 0, 0, 0, 0.70, 100},
		{0.014, 3.0, 0, 0, 0, 0.69, 200},
		{0.014, 3.0, 0, 0, 0, 0.68, 300},
	} {
		if err := tab.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return tab
}

func TestBracketYoungestStep(t *testing.T) {
	ages := agesTable(t)
	minAge, maxAge, err := Bracket(ages.Row(0), ages)
	if err != nil {
		t.Fatalf("Bracket: %v", err)
	}
	if minAge != 0 || maxAge != 200 {
		t.Errorf("got (%d,%d), want (0,200)", minAge, maxAge)
	}
}

func TestBracketInteriorStep(t *testing.T) {
	ages := agesTable(t)
	minAge, maxAge, err := Bracket(ages.Row(1), ages)
	if err != nil {
		t.Fatalf("Bracket: %v", err)
	}
	if minAge != 100 || maxAge != 300 {
		t.Errorf("got (%d,%d), want neighbor ages (100,300)", minAge, maxAge)
	}
}

func TestBracketOldestStepMirrorsGap(t *testing.T) {
	ages := agesTable(t)
	minAge, maxAge, err := Bracket(ages.Row(2), ages)
	if err != nil {
		t.Fatalf("Bracket: %v", err)
	}
	// max = 2*age(0.68) - age(0.69): the missing older neighbor is mirrored.
	if minAge != 200 || maxAge != 400 {
		t.Errorf("got (%d,%d), want (200,400)", minAge, maxAge)
	}
}

func TestBracketToleratesCoordinateRoundOff(t *testing.T) {
	ages := agesTable(t)
	model, err := grid.New([]string{"Z", "M", "logD", "aov", "fov", "Xc"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := model.Append([]float64{0.014 + 3e-9, 3.0 - 2e-9, 0, 0, 0, 0.69}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	minAge, maxAge, err := Bracket(model.Row(0), ages)
	if err != nil {
		t.Fatalf("Bracket: %v", err)
	}
	if minAge != 100 || maxAge != 300 {
		t.Errorf("got (%d,%d), want (100,300)", minAge, maxAge)
	}
}

func TestBracketMissingNeighborIsLookupError(t *testing.T) {
	ages := agesTable(t)
	// Model at an Xc with no grid neighbor at Xc+0.01 / Xc-0.01.
	model, err := grid.New([]string{"Z", "M", "logD", "aov", "fov", "Xc"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := model.Append([]float64{0.014, 3.0, 0, 0, 0, 0.695}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	_, _, err = Bracket(model.Row(0), ages)
	var lerr *grid.LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("want grid.LookupError, got %v", err)
	}
}

func TestBracketUnknownMetallicity(t *testing.T) {
	ages := agesTable(t)
	model, err := grid.New([]string{"Z", "M", "logD", "aov", "fov", "Xc"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := model.Append([]float64{0.020, 3.0, 0, 0, 0, 0.69}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	var lerr *grid.LookupError
	if _, _, err := Bracket(model.Row(0), ages); !errors.As(err, &lerr) {
		t.Fatalf("want grid.LookupError for missing metallicity, got %v", err)
	}
}
