package upstream

import (
	"context"
	"fmt"
	"net/http"

	"client-bff/internal/domain/vehicle"
	xerrors "client-bff/internal/pkg/errors"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type priceRange struct {
	PerDay   float64 `json:"perDay"`
	PerWeek  float64 `json:"perWeek"`
	PerMonth float64 `json:"perMonth"`
}

type priceResponse struct {
	PriceRange   *priceRange `json:"priceRange"`
	CurrencyCode string      `json:"currencyCode"`
}

// PricingClient fetches the price schedule of a single offer.
type PricingClient struct {
	client *resty.Client
	creds  CredentialSource
}

func NewPricingClient(client *resty.Client, creds CredentialSource) *PricingClient {
	return &PricingClient{client: client, creds: creds}
}

// Price returns xerrors.ErrNotFound on 404. A response without a price
// range is an error rather than a zero price.
func (c *PricingClient) Price(ctx context.Context, offerID uuid.UUID) (*vehicle.Price, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("pricing service credential: %w", err)
	}

	var body priceResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetPathParam("offerId", offerID.String()).
		SetResult(&body).
		Get("/api/v1/prices/{offerId}")
	if err != nil {
		return nil, fmt.Errorf("pricing service: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("price for offer %s: %w", offerID, xerrors.ErrNotFound)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("pricing service returned status %d", resp.StatusCode())
	}
	if body.PriceRange == nil {
		return nil, fmt.Errorf("price for offer %s has no price range", offerID)
	}

	return &vehicle.Price{
		PerDay:       body.PriceRange.PerDay,
		PerWeek:      body.PriceRange.PerWeek,
		PerMonth:     body.PriceRange.PerMonth,
		CurrencyCode: body.CurrencyCode,
	}, nil
}
