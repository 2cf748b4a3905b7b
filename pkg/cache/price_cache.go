package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// PriceCacheTTL is the time-to-live for cached price lookups. Prices
	// move slowly; an hour keeps the pricing collaborator off the hot path
	// without serving stale quotes all day.
	PriceCacheTTL = time.Hour

	priceCacheKeyPrefix = "price"

	// noPrice marks a cached "the collaborator has no price for this item"
	// answer, which is distinct from a cache miss.
	noPrice = "none"
)

// PriceCache is the shared Redis tier of the pricing client's cache.
// Keys are scoped by item ID and quality, since the collaborator quotes
// per (id, quality) pair. Key format: "price:{itemID}:{quality}".
type PriceCache struct {
	client *RedisClient
}

// NewPriceCache creates a PriceCache backed by the given RedisClient.
func NewPriceCache(r *RedisClient) *PriceCache {
	return &PriceCache{client: r}
}

// Get returns the cached pence value for an item/quality pair.
// found is false on a cache miss. A cached "no price available" answer is
// returned as (nil, true, nil).
func (c *PriceCache) Get(ctx context.Context, itemID uuid.UUID, quality int) (pence *int, found bool, err error) {
	val, err := c.client.Client().Get(ctx, c.key(itemID, quality)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("price cache get: %w", err)
	}
	if val == noPrice {
		return nil, true, nil
	}
	p, err := strconv.Atoi(val)
	if err != nil {
		return nil, false, fmt.Errorf("price cache parse %q: %w", val, err)
	}
	return &p, true, nil
}

// Set caches the pricing outcome for an item/quality pair. A nil pence
// records "no price available".
func (c *PriceCache) Set(ctx context.Context, itemID uuid.UUID, quality int, pence *int) error {
	val := noPrice
	if pence != nil {
		val = strconv.Itoa(*pence)
	}
	if err := c.client.Client().Set(ctx, c.key(itemID, quality), val, PriceCacheTTL).Err(); err != nil {
		return fmt.Errorf("price cache set: %w", err)
	}
	return nil
}

func (c *PriceCache) key(itemID uuid.UUID, quality int) string {
	return fmt.Sprintf("%s:%s:%d", priceCacheKeyPrefix, itemID, quality)
}
