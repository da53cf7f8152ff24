// core/grid/grid_test.go
package grid

import (
	"errors"
	"testing"
)

func mkTable(t *testing.T, cols []string, rows ...[]float64) *Table {
	t.Helper()
	tab, err := New(cols)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, r := range rows {
		if err := tab.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return tab
}

func TestCloseToleratesRoundOff(t *testing.T) {
	if !Close(0.014, 0.014+1e-9) {
		t.Error("expected round-off to compare equal")
	}
	if Close(0.014, 0.015) {
		t.Error("distinct grid values must not compare equal")
	}
}

func TestDuplicateColumnRejected(t *testing.T) {
	if _, err := New([]string{"Z", "Z"}); err == nil {
		t.Fatal("expected duplicate-column error")
	}
}

func TestFilterPreservesRowIdentity(t *testing.T) {
	tab := mkTable(t, []string{"M"}, []float64{1}, []float64{2}, []float64{3})
	sub := tab.Filter(func(r Row) bool { return r.At(0) > 1.5 })
	if sub.Len() != 2 {
		t.Fatalf("got %d rows, want 2", sub.Len())
	}
	if sub.Row(0).Index != 1 || sub.Row(1).Index != 2 {
		t.Errorf("indices %d,%d, want 1,2", sub.Row(0).Index, sub.Row(1).Index)
	}
	if tab.Len() != 3 {
		t.Error("source table mutated")
	}
}

func TestSelectMask(t *testing.T) {
	tab := mkTable(t, []string{"M"}, []float64{1}, []float64{2}, []float64{3})
	sub := tab.Select([]bool{true, false, true})
	if sub.Len() != 2 || sub.Row(1).Index != 2 {
		t.Fatalf("unexpected selection: len=%d", sub.Len())
	}
}

func TestUniqueRow(t *testing.T) {
	tab := mkTable(t, []string{"M"}, []float64{1}, []float64{2}, []float64{2})

	r, err := tab.UniqueRow(func(r Row) bool { return Close(r.At(0), 1) }, "M=1")
	if err != nil || r.Index != 0 {
		t.Fatalf("unique match failed: %v", err)
	}

	var lerr *LookupError
	if _, err := tab.UniqueRow(func(r Row) bool { return Close(r.At(0), 2) }, "M=2"); !errors.As(err, &lerr) || lerr.Matches != 2 {
		t.Fatalf("want LookupError with 2 matches, got %v", err)
	}
	if _, err := tab.UniqueRow(func(r Row) bool { return false }, "M=9"); !errors.As(err, &lerr) || lerr.Matches != 0 {
		t.Fatalf("want LookupError with 0 matches, got %v", err)
	}
}

func TestRowValueByName(t *testing.T) {
	tab := mkTable(t, []string{"Z", "M"}, []float64{0.014, 3.0})
	v, ok := tab.Row(0).Value("M")
	if !ok || v != 3.0 {
		t.Fatalf("Value(M)=%v,%v", v, ok)
	}
	if _, ok := tab.Row(0).Value("nope"); ok {
		t.Error("unknown column must not resolve")
	}
}
