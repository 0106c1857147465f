// internal/repository/redis/pricing_cache.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"client-bff/internal/domain/vehicle"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PricingCache stores successful price lookups by offer id.
type PricingCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewPricingCache(client redis.Cmdable, ttl time.Duration) *PricingCache {
	return &PricingCache{client: client, ttl: ttl}
}

func pricingKey(offerID uuid.UUID) string {
	return fmt.Sprintf("pricing:%s", offerID)
}

// Get returns the cached price, or ok=false on a miss.
func (c *PricingCache) Get(ctx context.Context, offerID uuid.UUID) (*vehicle.Price, bool, error) {
	data, err := c.client.Get(ctx, pricingKey(offerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached price: %w", err)
	}

	var price vehicle.Price
	if err := json.Unmarshal(data, &price); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached price: %w", err)
	}
	return &price, true, nil
}

func (c *PricingCache) Set(ctx context.Context, offerID uuid.UUID, price *vehicle.Price) error {
	data, err := json.Marshal(price)
	if err != nil {
		return fmt.Errorf("failed to encode price: %w", err)
	}
	if err := c.client.Set(ctx, pricingKey(offerID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache price: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *PricingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
