package sales

import (
	"context"
	"fmt"
	"time"
)

const (
	// PageSize matches the backing store's per-query row cap.
	PageSize = 1000

	maxFetchAttempts = 3
	retryBackoff     = 200 * time.Millisecond
)

// streamPages walks a table in fixed-size pages and hands each page to
// fn. A failed fetch is retried with backoff; once attempts are
// exhausted the walk aborts with an error, it never returns a silently
// truncated result set.
func streamPages[T any](ctx context.Context, fetch func(ctx context.Context, limit, offset int) ([]T, error), fn func([]T) error) error {
	offset := 0
	for {
		page, err := fetchWithRetry(ctx, fetch, PageSize, offset)
		if err != nil {
			return fmt.Errorf("sales: page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			return nil
		}
		if err := fn(page); err != nil {
			return err
		}
		if len(page) < PageSize {
			return nil
		}
		offset += PageSize
	}
}

func fetchWithRetry[T any](ctx context.Context, fetch func(ctx context.Context, limit, offset int) ([]T, error), limit, offset int) ([]T, error) {
	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		page, err := fetch(ctx, limit, offset)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < maxFetchAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}
	}
	return nil, fmt.Errorf("after %d attempts: %w", maxFetchAttempts, lastErr)
}
