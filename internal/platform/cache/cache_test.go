package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute)
}

func TestFetchJSONPopulatesAndReuses(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return map[string]float64{"total": 1234.56}, nil
	}

	key, err := c.Key(ctx, "reports", "monthly")
	require.NoError(t, err)

	var first map[string]float64
	require.NoError(t, c.FetchJSON(ctx, key, &first, loader))
	require.Equal(t, 1234.56, first["total"])

	var second map[string]float64
	require.NoError(t, c.FetchJSON(ctx, key, &second, loader))
	require.Equal(t, 1, loads, "second fetch must hit the cache")
}

func TestBumpChangesKeys(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	before, err := c.Key(ctx, "reports", "monthly")
	require.NoError(t, err)

	require.NoError(t, c.Bump(ctx))

	after, err := c.Key(ctx, "reports", "monthly")
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestNilCacheFallsThrough(t *testing.T) {
	var c *Cache
	var out map[string]int
	err := c.FetchJSON(context.Background(), "k", &out, func(context.Context) (any, error) {
		return map[string]int{"n": 7}, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, out["n"])
}
