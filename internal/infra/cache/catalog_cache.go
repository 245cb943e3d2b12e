// Package cache keeps the storefront catalog in redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitshop/internal/domain"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"
)

const CatalogKey = "catalog:products"

// ErrMiss is returned by Get when nothing is cached.
var ErrMiss = errors.New("cache miss")

type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) Get(ctx context.Context) ([]domain.CatalogEntry, error) {
	raw, err := c.client.Get(ctx, CatalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", CatalogKey, err)
	}
	var entries []domain.CatalogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode cached catalog: %w", err)
	}
	return entries, nil
}

func (c *CatalogCache) Set(ctx context.Context, entries []domain.CatalogEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := c.client.Set(ctx, CatalogKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", CatalogKey, err)
	}
	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, CatalogKey).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", CatalogKey, err)
	}
	return nil
}
