package edp

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers is the number of goroutines used by parallel loops.
var Workers = runtime.NumCPU()

// parallelFor runs body(lo, hi) over contiguous chunks of [0,n), evenly
// split across workers with the remainder spread over the first ones.
// Chunks own disjoint index ranges, so bodies may write their slots
// without locking.
func parallelFor(ctx context.Context, n int, body func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	workers := Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	base, rem := n/workers, n%workers
	lo := 0
	for w := 0; w < workers; w++ {
		cnt := base
		if w < rem {
			cnt++
		}
		l, h := lo, lo+cnt
		lo = h
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return body(l, h)
		})
	}
	return g.Wait()
}
