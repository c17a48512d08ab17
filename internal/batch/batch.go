// Package batch generates many buildings in parallel. Each generation call
// owns its own rng stream and layout, so requests need no coordination
// beyond bounding the worker count.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nirholas/hyperscape-sub002/internal/builder"
	"github.com/nirholas/hyperscape-sub002/internal/recipe"
)

// Generate runs every request concurrently (at most limit at a time;
// limit <= 0 means unbounded) and returns results in request order. The
// first failing request cancels the rest.
func Generate(ctx context.Context, reg *recipe.Registry, requests []builder.Request, limit int) ([]*builder.Result, error) {
	results := make([]*builder.Result, len(requests))

	group, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for i, req := range requests {
		i, req := i, req
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := builder.Generate(reg, req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
