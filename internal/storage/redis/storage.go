// Package redis provides a read-through Redis cache in front of the catalog
// reads of a storage.Store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/storage"
)

// CatalogCache wraps a Store and caches catalog reads in Redis. Account and
// library operations pass straight through. Redis failures never fail a
// read: they are logged and the wrapped store answers instead.
type CatalogCache struct {
	storage.Store
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

// New connects to Redis and wraps the given store
func New(next storage.Store, cfg Config, logger *slog.Logger) (*CatalogCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(next, client, cfg, logger), nil
}

// NewWithClient wraps the given store using an existing client (for testing)
func NewWithClient(next storage.Store, client *redis.Client, cfg Config, logger *slog.Logger) *CatalogCache {
	return &CatalogCache{
		Store:  next,
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Close closes the Redis connection
func (c *CatalogCache) Close() error {
	return c.client.Close()
}

// Ensure CatalogCache implements the interface
var _ storage.Store = (*CatalogCache)(nil)

func (c *CatalogCache) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	return readThrough(ctx, c, gameListKey(), func() ([]model.GameSummary, error) {
		return c.Store.ListGames(ctx)
	})
}

func (c *CatalogCache) ListGamesByPublisher(ctx context.Context, id model.PublisherID) ([]model.GameSummary, error) {
	return readThrough(ctx, c, publisherGamesKey(id), func() ([]model.GameSummary, error) {
		return c.Store.ListGamesByPublisher(ctx, id)
	})
}

func (c *CatalogCache) ListGamesByDeveloper(ctx context.Context, id model.DeveloperID) ([]model.GameSummary, error) {
	return readThrough(ctx, c, developerGamesKey(id), func() ([]model.GameSummary, error) {
		return c.Store.ListGamesByDeveloper(ctx, id)
	})
}

func (c *CatalogCache) GetGameDetail(ctx context.Context, id model.GameID) (*model.GameDetail, error) {
	return readThrough(ctx, c, gameDetailKey(id), func() (*model.GameDetail, error) {
		return c.Store.GetGameDetail(ctx, id)
	})
}

// Invalidate drops every cached catalog entry. Seeding calls it after
// writing the catalog.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, catalogPattern(), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// readThrough serves key from Redis when present, otherwise loads it from the
// wrapped store and caches successful results for the configured TTL.
// Errors from load (including not-found) are returned uncached.
func readThrough[T any](ctx context.Context, c *CatalogCache, key string, load func() (T, error)) (T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		c.logger.Warn("discarding corrupt catalog cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", "key", key, "error", err)
	}

	value, err := load()
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", "key", key, "error", err)
		return value, nil
	}
	if err := c.client.Set(ctx, key, encoded, c.cfg.CatalogTTL).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
	return value, nil
}
