package evidence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	redisplatform "custodia/internal/platform/redis"
)

const listingCacheKey = "custodia:public:listings"

// ListingCache is a read-through cache for the public evidence listing. A
// nil cache is valid and always misses, so deployments without Redis run the
// same code path.
type ListingCache struct {
	client *redisplatform.Client
	ttl    time.Duration
}

func NewListingCache(client *redisplatform.Client, ttl time.Duration) *ListingCache {
	if client == nil {
		return nil
	}
	return &ListingCache{client: client, ttl: ttl}
}

// Get returns the cached listing, or (nil, false) on a miss. Decode failures
// count as misses so a stale format self-heals on the next Set.
func (c *ListingCache) Get(ctx context.Context) ([]Listing, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, listingCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached listings: %w", err)
	}
	var listings []Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, false, nil
	}
	return listings, true, nil
}

func (c *ListingCache) Set(ctx context.Context, listings []Listing) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("encode listings: %w", err)
	}
	if err := c.client.Set(ctx, listingCacheKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached listings: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing. Called after any evidence mutation.
func (c *ListingCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, listingCacheKey).Err(); err != nil {
		return fmt.Errorf("invalidate cached listings: %w", err)
	}
	return nil
}
