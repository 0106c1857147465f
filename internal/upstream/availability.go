package upstream

import (
	"context"
	"fmt"

	"client-bff/internal/domain/vehicle"
	xerrors "client-bff/internal/pkg/errors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// AvailabilityClient queries the vehicle service for offers in a window.
type AvailabilityClient struct {
	client *resty.Client
	creds  CredentialSource
	logger *zap.Logger
}

func NewAvailabilityClient(client *resty.Client, creds CredentialSource, logger *zap.Logger) *AvailabilityClient {
	return &AvailabilityClient{
		client: client,
		creds:  creds,
		logger: logger,
	}
}

// Available returns the offers for location whose availability covers the
// whole pickup to drop-off window, in the order the vehicle service sent them.
// Transport and non-2xx failures wrap xerrors.ErrUpstreamUnavailable.
func (c *AvailabilityClient) Available(ctx context.Context, location string, pickup, dropOff vehicle.Date) ([]vehicle.Offer, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: vehicle service credential: %v", xerrors.ErrUpstreamUnavailable, err)
	}

	var offers []vehicle.Offer
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"location":    location,
			"pickupDate":  pickup.String(),
			"dropOffDate": dropOff.String(),
		}).
		SetResult(&offers).
		Get("/api/v1/vehicles/available")
	if err != nil {
		return nil, fmt.Errorf("%w: vehicle service: %v", xerrors.ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: vehicle service returned status %d", xerrors.ErrUpstreamUnavailable, resp.StatusCode())
	}

	kept := offers[:0]
	for _, o := range offers {
		if !o.Covers(pickup, dropOff) {
			c.logger.Debug("dropping offer outside availability window",
				zap.String("offer_id", o.OwnerHasVehicleID.String()),
			)
			continue
		}
		kept = append(kept, o)
	}

	c.logger.Info("vehicle availability fetched",
		zap.String("location", location),
		zap.Int("returned", len(offers)),
		zap.Int("kept", len(kept)),
	)
	return kept, nil
}
