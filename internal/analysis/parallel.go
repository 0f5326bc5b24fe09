package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mapOrdered executes fn over items with at most limit calls in flight and
// returns results in item order regardless of completion order. Each result is
// written into its pre-sized slot by original index. Trivial inputs run
// sequentially. The first failure cancels the batch and no partial results are
// returned.
func mapOrdered[T, R any](ctx context.Context, limit int, items []T, fn func(ctx context.Context, index int, item T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	results := make([]R, len(items))

	if limit <= 1 || len(items) == 1 {
		for i, item := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result, err := fn(ctx, i, item)
			if err != nil {
				return nil, err
			}
			results[i] = result
		}
		return results, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i, item := range items {
		group.Go(func() error {
			result, err := fn(groupCtx, i, item)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
