// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"specclip-core/grid"
)

// Config controls the per-row scan.
type Config struct {
	Threads int // worker goroutines (0 = all CPUs)
}

// FilterRows evaluates keep for every row of t over a worker pool and returns
// the surviving subset. Rows keep their order and identity; keep must be a
// pure per-row predicate. The first predicate error cancels the scan and is
// returned, as is context cancellation.
func FilterRows(ctx context.Context, cfg Config, t *grid.Table, keep func(grid.Row) (bool, error)) (*grid.Table, error) {
	thr := cfg.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	mask := make([]bool, t.Len())
	jobs := make(chan int, thr*2)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < thr; w++ {
		g.Go(func() error {
			for i := range jobs {
				ok, err := keep(t.Row(i))
				if err != nil {
					return err
				}
				mask[i] = ok
			}
			return nil
		})
	}

	// Feed work; stop feeding as soon as a worker fails.
	feed := func() error {
		defer close(jobs)
		for i := 0; i < t.Len(); i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}
	ferr := feed()

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ferr != nil {
		return nil, ferr
	}
	return t.Select(mask), nil
}
