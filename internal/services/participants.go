package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds per-participant store lookups in a single call.
const maxConcurrentLookups = 8

// forEachParticipant runs fn for indexes 0..n-1 with bounded concurrency. The
// first error cancels the remaining lookups and is returned. Callers write
// results into index-addressed slices so output order never depends on
// scheduling.
func forEachParticipant(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(ctx, i)
		})
	}
	return g.Wait()
}

func clockOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
