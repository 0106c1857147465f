package search

import (
	"context"

	"client-bff/internal/domain/vehicle"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PriceCache is a read-through store for successful price lookups.
type PriceCache interface {
	Get(ctx context.Context, offerID uuid.UUID) (*vehicle.Price, bool, error)
	Set(ctx context.Context, offerID uuid.UUID, price *vehicle.Price) error
}

// CachedPricing serves prices from the cache and falls back to the provider.
// Cache errors are logged and ignored; failed lookups are never cached.
type CachedPricing struct {
	next   PricingProvider
	cache  PriceCache
	logger *zap.Logger
}

func NewCachedPricing(next PricingProvider, cache PriceCache, logger *zap.Logger) *CachedPricing {
	return &CachedPricing{next: next, cache: cache, logger: logger}
}

func (c *CachedPricing) Price(ctx context.Context, offerID uuid.UUID) (*vehicle.Price, error) {
	price, ok, err := c.cache.Get(ctx, offerID)
	if err != nil {
		c.logger.Warn("pricing cache read failed", zap.String("offer_id", offerID.String()), zap.Error(err))
	}
	if ok {
		return price, nil
	}

	price, err = c.next.Price(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, offerID, price); err != nil {
		c.logger.Warn("pricing cache write failed", zap.String("offer_id", offerID.String()), zap.Error(err))
	}
	return price, nil
}
