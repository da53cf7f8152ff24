// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"specclip-core/grid"
)

func mkTable(t *testing.T, n int) *grid.Table {
	t.Helper()
	tab, err := grid.New([]string{"M"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < n; i++ {
		if err := tab.Append([]float64{float64(i)}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return tab
}

func TestFilterRowsParallelMatchesSerial(t *testing.T) {
	tab := mkTable(t, 200)
	keep := func(r grid.Row) (bool, error) { return int(r.At(0))%3 == 0, nil }

	serial := tab.Filter(func(r grid.Row) bool { ok, _ := keep(r); return ok })

	for _, thr := range []int{1, 4, 16} {
		out, err := FilterRows(context.Background(), Config{Threads: thr}, tab, keep)
		if err != nil {
			t.Fatalf("threads=%d: %v", thr, err)
		}
		if out.Len() != serial.Len() {
			t.Fatalf("threads=%d: %d rows, serial has %d", thr, out.Len(), serial.Len())
		}
		for i := 0; i < out.Len(); i++ {
			if out.Row(i).Index != serial.Row(i).Index {
				t.Fatalf("threads=%d: row order diverged at %d", thr, i)
			}
		}
	}
}

func TestFilterRowsPropagatesPredicateError(t *testing.T) {
	tab := mkTable(t, 50)
	boom := errors.New("boom")
	_, err := FilterRows(context.Background(), Config{Threads: 4}, tab, func(r grid.Row) (bool, error) {
		if int(r.At(0)) == 25 {
			return false, fmt.Errorf("row 25: %w", boom)
		}
		return true, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want predicate error, got %v", err)
	}
}

func TestFilterRowsCancellation(t *testing.T) {
	tab := mkTable(t, 1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FilterRows(ctx, Config{Threads: 2}, tab, func(grid.Row) (bool, error) {
		return true, nil
	}); err == nil {
		t.Fatal("expected error after cancellation")
	}
}
