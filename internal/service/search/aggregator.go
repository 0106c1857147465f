package search

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"client-bff/internal/domain/vehicle"
	"client-bff/internal/metrics"
	xerrors "client-bff/internal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AvailabilityProvider lists candidate offers for a location and window.
type AvailabilityProvider interface {
	Available(ctx context.Context, location string, pickup, dropOff vehicle.Date) ([]vehicle.Offer, error)
}

// PricingProvider returns the price schedule for one offer.
type PricingProvider interface {
	Price(ctx context.Context, offerID uuid.UUID) (*vehicle.Price, error)
}

type AggregatorConfig struct {
	PricingTimeout time.Duration
	Concurrency    int
}

// Aggregator runs the basic search: availability, per-offer pricing and cost.
type Aggregator struct {
	availability   AvailabilityProvider
	pricing        PricingProvider
	pricingTimeout time.Duration
	concurrency    int
	logger         *zap.Logger
}

func NewAggregator(availability AvailabilityProvider, pricing PricingProvider, cfg AggregatorConfig, logger *zap.Logger) *Aggregator {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.PricingTimeout <= 0 {
		cfg.PricingTimeout = 10 * time.Second
	}
	return &Aggregator{
		availability:   availability,
		pricing:        pricing,
		pricingTimeout: cfg.PricingTimeout,
		concurrency:    cfg.Concurrency,
		logger:         logger,
	}
}

// Search validates criteria and builds the basic result. The only error it
// returns is a validation error; every other outcome, including upstream
// failures, is an unsuccessful BasicResult.
func (a *Aggregator) Search(ctx context.Context, criteria *vehicle.SearchCriteria) (result *vehicle.BasicResult, err error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("basic search panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			result, err = vehicle.FailedBasicResult(vehicle.CodeInternalError, vehicle.MsgInternalError), nil
		}
	}()

	offers, err := a.availability.Available(ctx, criteria.PickupLocation, criteria.PickupDate, criteria.DropOffDate)
	if err != nil {
		if errors.Is(err, xerrors.ErrUpstreamUnavailable) {
			a.logger.Warn("vehicle availability unavailable", zap.Error(err))
			return vehicle.FailedBasicResult(vehicle.CodeUpstreamUnavailable, vehicle.MsgUpstreamUnavailable), nil
		}
		a.logger.Error("vehicle availability failed", zap.Error(err))
		return vehicle.FailedBasicResult(vehicle.CodeInternalError, vehicle.MsgInternalError), nil
	}
	if len(offers) == 0 {
		return vehicle.FailedBasicResult(vehicle.CodeNoAvailability, vehicle.MsgNoAvailability), nil
	}

	priced := a.enrich(ctx, offers)
	if len(priced) == 0 {
		a.logger.Warn("pricing failed for every available offer", zap.Int("candidates", len(offers)))
		return vehicle.FailedBasicResult(vehicle.CodePricingUnavailable, vehicle.MsgPricingUnavailable), nil
	}

	for i := range priced {
		PriceOffer(&priced[i], criteria)
	}

	a.logger.Info("basic search completed",
		zap.String("location", criteria.PickupLocation),
		zap.Int("candidates", len(offers)),
		zap.Int("priced", len(priced)),
	)
	return vehicle.NewBasicResult(priced), nil
}

// enrich prices every offer concurrently. Each goroutine owns one slot, so
// the surviving offers keep the availability order. Failed offers are dropped.
func (a *Aggregator) enrich(ctx context.Context, offers []vehicle.Offer) []vehicle.Offer {
	slots := make([]*vehicle.Offer, len(offers))

	var g errgroup.Group
	g.SetLimit(a.concurrency)

	for i := range offers {
		i := i
		g.Go(func() error {
			offer := offers[i]
			price, err := a.fetchPrice(ctx, offer.OwnerHasVehicleID)
			if err != nil {
				metrics.PricingFailure()
				a.logger.Warn("pricing lookup failed, dropping offer",
					zap.String("offer_id", offer.OwnerHasVehicleID.String()),
					zap.Error(err),
				)
				return nil
			}
			offer.ApplyPrice(price)
			slots[i] = &offer
			return nil
		})
	}
	_ = g.Wait()

	out := make([]vehicle.Offer, 0, len(offers))
	for _, o := range slots {
		if o != nil {
			out = append(out, *o)
		}
	}
	return out
}

func (a *Aggregator) fetchPrice(ctx context.Context, offerID uuid.UUID) (price *vehicle.Price, err error) {
	defer func() {
		if r := recover(); r != nil {
			price, err = nil, fmt.Errorf("pricing panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.pricingTimeout)
	defer cancel()

	price, err = a.pricing.Price(ctx, offerID)
	if err == nil && price == nil {
		err = fmt.Errorf("empty price for offer %s", offerID)
	}
	return price, err
}
