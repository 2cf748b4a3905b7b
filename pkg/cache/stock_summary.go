package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const stockSummaryKey = "stock:summary"

// StockSummary is the denormalized listing read model warmed by the worker
// on every stock.updated event. It lets dashboard-style reads skip the
// store entirely.
type StockSummary struct {
	LastModified time.Time `json:"last_modified"`
	ItemCount    int       `json:"item_count"`
}

// StockSummaryCache stores the latest stock summary as a Redis hash.
type StockSummaryCache struct {
	client *RedisClient
}

// NewStockSummaryCache creates a StockSummaryCache backed by the given RedisClient.
func NewStockSummaryCache(r *RedisClient) *StockSummaryCache {
	return &StockSummaryCache{client: r}
}

// Get retrieves the cached summary. Returns redis.Nil when nothing has been
// warmed yet.
func (c *StockSummaryCache) Get(ctx context.Context) (*StockSummary, error) {
	vals, err := c.client.Client().HGetAll(ctx, stockSummaryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("summary cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	lastModified, err := time.Parse(time.RFC3339Nano, vals["last_modified"])
	if err != nil {
		return nil, fmt.Errorf("summary cache parse last_modified: %w", err)
	}
	count, err := strconv.Atoi(vals["item_count"])
	if err != nil {
		return nil, fmt.Errorf("summary cache parse item_count: %w", err)
	}

	return &StockSummary{LastModified: lastModified, ItemCount: count}, nil
}

// Set writes the summary. No TTL: the worker replaces it on every update,
// and a stale summary is still a usable summary.
func (c *StockSummaryCache) Set(ctx context.Context, s *StockSummary) error {
	err := c.client.Client().HSet(ctx, stockSummaryKey,
		"last_modified", s.LastModified.UTC().Format(time.RFC3339Nano),
		"item_count", strconv.Itoa(s.ItemCount),
	).Err()
	if err != nil {
		return fmt.Errorf("summary cache set: %w", err)
	}
	return nil
}

// IsMiss reports whether err is the cache-miss sentinel.
func IsMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}
