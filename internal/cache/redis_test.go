// internal/cache/redis_test.go
package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThanushaGali/CaConnect/internal/catalog"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestResultCache_RoundTrip(t *testing.T) {
	mr, client := newMiniredis(t)
	c := NewResultCache(client, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []string{"2", "1", "3"}))
	ids, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"2", "1", "3"}, ids)

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire with the ttl")
}

func TestResultCache_EmptyResultIsCached(t *testing.T) {
	_, client := newMiniredis(t)
	c := NewResultCache(client, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "empty", nil))
	ids, ok, err := c.Get(ctx, "empty")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, ids)
}

func TestResultCache_CorruptEntryIsMiss(t *testing.T) {
	mr, client := newMiniredis(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	_, ok, err := NewResultCache(client, time.Minute).Get(context.Background(), "bad")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResultCache_Invalidate(t *testing.T) {
	_, client := newMiniredis(t)
	c := NewResultCache(client, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "discovery:browse:v1:a", []string{"1"}))
	require.NoError(t, c.Set(ctx, "discovery:browse:v1:b", []string{"2"}))
	require.NoError(t, c.Set(ctx, "discovery:browse:v2:a", []string{"3"}))

	n, err := c.Invalidate(ctx, "discovery:browse:v1:*")

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, ok, _ := c.Get(ctx, "discovery:browse:v2:a")
	assert.True(t, ok)
}

func TestResultCache_ErrorsWrapUnavailable(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewResultCache(client, time.Minute)
	ctx := context.Background()

	mock.ExpectGet("k").SetErr(errors.New("connection refused"))
	_, _, err := c.Get(ctx, "k")
	assert.True(t, errors.Is(err, ErrCacheUnavailable))

	mock.ExpectSet("k", []byte(`["1"]`), time.Minute).SetErr(errors.New("READONLY"))
	err = c.Set(ctx, "k", []string{"1"})
	assert.True(t, errors.Is(err, ErrCacheUnavailable))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultCache_BacksDiscoveryService(t *testing.T) {
	_, client := newMiniredis(t)
	cat, err := catalog.Default()
	require.NoError(t, err)
	svc := discovery.NewService(cat, NewResultCache(client, time.Minute), logger.NewNoOpLogger())
	req := discovery.Request{Filters: discovery.DefaultFilterState().WithQuery("gst"), Sort: discovery.SortPriceHigh}

	first, err := svc.Browse(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Browse(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Providers[0].ID, second.Providers[0].ID)
	assert.Equal(t, "1", second.Providers[0].ID)

	keys := client.Keys(context.Background(), "discovery:browse:*").Val()
	assert.Len(t, keys, 1)
}
