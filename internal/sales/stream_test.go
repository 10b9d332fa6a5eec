package sales

import (
	"context"
	"errors"
	"testing"
)

func TestStreamPagesWalksUntilShortPage(t *testing.T) {
	total := 2500
	fetch := func(_ context.Context, limit, offset int) ([]int, error) {
		if offset >= total {
			return nil, nil
		}
		n := limit
		if offset+n > total {
			n = total - offset
		}
		page := make([]int, n)
		for i := range page {
			page[i] = offset + i
		}
		return page, nil
	}

	var seen int
	err := streamPages(context.Background(), fetch, func(page []int) error {
		seen += len(page)
		return nil
	})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if seen != total {
		t.Fatalf("expected %d rows, got %d", total, seen)
	}
}

func TestStreamPagesRetriesTransientFailure(t *testing.T) {
	failures := 2
	calls := 0
	fetch := func(_ context.Context, limit, offset int) ([]int, error) {
		calls++
		if calls <= failures {
			return nil, errors.New("connection reset")
		}
		return []int{1, 2, 3}, nil
	}

	var seen int
	err := streamPages(context.Background(), fetch, func(page []int) error {
		seen += len(page)
		return nil
	})
	if err != nil {
		t.Fatalf("stream should recover: %v", err)
	}
	if seen != 3 {
		t.Fatalf("expected 3 rows, got %d", seen)
	}
}

func TestStreamPagesGivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, limit, offset int) ([]int, error) {
		calls++
		return nil, errors.New("down")
	}

	err := streamPages(context.Background(), fetch, func([]int) error { return nil })
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != maxFetchAttempts {
		t.Fatalf("expected %d attempts, got %d", maxFetchAttempts, calls)
	}
}

func TestStreamPagesPropagatesCallbackError(t *testing.T) {
	fetch := func(_ context.Context, limit, offset int) ([]int, error) {
		return []int{1}, nil
	}
	wantErr := errors.New("stop")
	err := streamPages(context.Background(), fetch, func([]int) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected callback error, got %v", err)
	}
}
