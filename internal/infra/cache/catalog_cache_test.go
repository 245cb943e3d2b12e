package cache

import (
	"context"
	"testing"
	"time"

	"fitshop/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *CatalogCache) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewCatalogCache(client, 30*time.Second)
}

func TestCatalogCache_RoundTrip(t *testing.T) {
	mr, c := setupRedis(t)
	ctx := context.Background()

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrMiss)

	entries := []domain.CatalogEntry{{ID: 1, Name: "Whey", Price: 19.99, InStock: true, StockQuantity: 5}}
	require.NoError(t, c.Set(ctx, entries))

	got, err := c.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Whey", got[0].Name)
	assert.True(t, got[0].InStock)

	mr.FastForward(31 * time.Second)
	_, err = c.Get(ctx)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestCatalogCache_Invalidate(t *testing.T) {
	mr, c := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, []domain.CatalogEntry{{ID: 1}}))
	require.True(t, mr.Exists(CatalogKey))

	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(CatalogKey))
}

func TestCatalogCache_CorruptEntry(t *testing.T) {
	mr, c := setupRedis(t)
	require.NoError(t, mr.Set(CatalogKey, "not json"))

	_, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
