// Package searchindex queries the pre-priced vehicle index in Elasticsearch.
package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"client-bff/internal/domain/vehicle"
	xerrors "client-bff/internal/pkg/errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	Addresses          []string
	Username           string
	Password           string
	Index              string
	MissingPricePolicy string
	DefaultRadiusKm    float64
}

// VehicleIndex answers advanced searches from the vehicle_search index.
type VehicleIndex struct {
	es                 *elasticsearch.Client
	index              string
	missingPricePolicy string
	defaultRadiusKm    float64
	logger             *zap.Logger
}

// NewClient builds the Elasticsearch client. It does not contact the cluster.
func NewClient(cfg Config) (*elasticsearch.Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return es, nil
}

func NewVehicleIndex(es *elasticsearch.Client, cfg Config, logger *zap.Logger) *VehicleIndex {
	if cfg.Index == "" {
		cfg.Index = "vehicle_search"
	}
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = 50
	}
	if cfg.MissingPricePolicy == "" {
		cfg.MissingPricePolicy = PolicyZero
	}
	return &VehicleIndex{
		es:                 es,
		index:              cfg.Index,
		missingPricePolicy: cfg.MissingPricePolicy,
		defaultRadiusKm:    cfg.DefaultRadiusKm,
		logger:             logger,
	}
}

// Ping checks the cluster is reachable.
func (v *VehicleIndex) Ping(ctx context.Context) error {
	res, err := v.es.Ping(v.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: elasticsearch ping: %v", xerrors.ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: elasticsearch ping returned %s", xerrors.ErrUpstreamUnavailable, res.Status())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string   `json:"_id"`
			Source document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type document struct {
	VehicleID      string       `json:"vehicleId"`
	UserID         string       `json:"userId"`
	Make           string       `json:"make"`
	Model          string       `json:"model"`
	Year           string       `json:"year"`
	BodyType       string       `json:"bodyType"`
	Location       string       `json:"location"`
	Images         []string     `json:"images"`
	PricePerDay    *float64     `json:"pricePerDay"`
	PricePerWeek   *float64     `json:"pricePerWeek"`
	PricePerMonth  *float64     `json:"pricePerMonth"`
	Currency       string       `json:"currency"`
	AvailableFrom  vehicle.Date `json:"availableFrom"`
	AvailableUntil vehicle.Date `json:"availableUntil"`
}

// Query runs criteria against the index and maps the hits into a page.
// Paging and totals come from the index; an empty result is "no matches".
// A page past the result window is answered from the total alone.
func (v *VehicleIndex) Query(ctx context.Context, criteria *vehicle.AdvancedSearchCriteria) (*vehicle.PagedResult, error) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(v.buildQuery(criteria)); err != nil {
		return nil, fmt.Errorf("failed to encode index query: %w", err)
	}

	res, err := v.es.Search(
		v.es.Search.WithContext(ctx),
		v.es.Search.WithIndex(v.index),
		v.es.Search.WithBody(&body),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: elasticsearch search: %v", xerrors.ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return nil, fmt.Errorf("%w: elasticsearch returned %s: %s", xerrors.ErrUpstreamUnavailable, res.Status(), raw)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode index response: %w", err)
	}

	total := parsed.Hits.Total.Value
	if total == 0 {
		return vehicle.FailedPage(vehicle.CodeNoMatches, vehicle.MsgNoMatches, criteria.PageNumber, criteria.PageSize), nil
	}

	if _, _, ok := pageWindow(criteria.PageNumber, criteria.PageSize); !ok {
		return vehicle.NewPage(nil, criteria.PageNumber, criteria.PageSize, total), nil
	}

	offers := make([]vehicle.Offer, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		offers = append(offers, v.toOffer(hit.ID, &hit.Source))
	}

	v.logger.Debug("index search completed",
		zap.String("index", v.index),
		zap.Int64("total", total),
		zap.Int("returned", len(offers)),
	)
	return vehicle.NewPage(offers, criteria.PageNumber, criteria.PageSize, total), nil
}

func (v *VehicleIndex) toOffer(id string, doc *document) vehicle.Offer {
	o := vehicle.Offer{
		OwnerHasVehicleID: v.parseID("id", id),
		VehicleID:         v.parseID("vehicleId", doc.VehicleID),
		OwnerID:           v.parseID("userId", doc.UserID),
		BodyType:          doc.BodyType,
		Make:              doc.Make,
		Model:             doc.Model,
		Year:              doc.Year,
		Location:          doc.Location,
		AvailableFrom:     doc.AvailableFrom,
		AvailableUntil:    doc.AvailableUntil,
		PricePerDay:       valueOrZero(doc.PricePerDay),
		PricePerWeek:      valueOrZero(doc.PricePerWeek),
		PricePerMonth:     valueOrZero(doc.PricePerMonth),
		CurrencyCode:      doc.Currency,
	}
	if len(doc.Images) > 0 {
		o.ImageURL = doc.Images[0]
	}
	return o
}

func (v *VehicleIndex) parseID(field, raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		v.logger.Debug("index document has a malformed id", zap.String("field", field), zap.String("value", raw))
		return uuid.Nil
	}
	return id
}

func valueOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64) + "km"
}
