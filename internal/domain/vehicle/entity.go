package vehicle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// Date is a calendar date carried on the wire as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysUntil returns the whole days from d to end.
func (d Date) DaysUntil(end Date) int {
	return int(end.Sub(d.Time).Hours() / 24)
}

// Price is the tiered price schedule for one offer.
type Price struct {
	PerDay       float64 `json:"perDay"`
	PerWeek      float64 `json:"perWeek"`
	PerMonth     float64 `json:"perMonth"`
	CurrencyCode string  `json:"currencyCode"`
}

// Offer is one rentable owner-vehicle pairing. OwnerHasVehicleID is the key
// pricing is looked up by.
type Offer struct {
	OwnerHasVehicleID uuid.UUID `json:"ownerHasVehicleId"`
	VehicleID         uuid.UUID `json:"vehicleId"`
	OwnerID           uuid.UUID `json:"ownerId"`
	BodyType          string    `json:"bodyType"`
	Make              string    `json:"make"`
	Model             string    `json:"model"`
	Year              string    `json:"year"`
	ImageURL          string    `json:"imageUrl,omitempty"`
	Location          string    `json:"location"`
	AvailableFrom     Date      `json:"availableFrom"`
	AvailableUntil    Date      `json:"availableUntil"`

	PricePerDay   float64 `json:"pricePerDay"`
	PricePerWeek  float64 `json:"pricePerWeek"`
	PricePerMonth float64 `json:"pricePerMonth"`
	CurrencyCode  string  `json:"currencyCode,omitempty"`
	TotalCost     float64 `json:"totalCost"`
	RentalDays    int     `json:"rentalDays"`
}

// Covers reports whether the offer is available for the whole window.
// Unset bounds are treated as open.
func (o *Offer) Covers(pickup, dropOff Date) bool {
	if !o.AvailableFrom.IsZero() && o.AvailableFrom.After(pickup.Time) {
		return false
	}
	if !o.AvailableUntil.IsZero() && o.AvailableUntil.Before(dropOff.Time) {
		return false
	}
	return true
}

// ApplyPrice copies the price schedule onto the offer.
func (o *Offer) ApplyPrice(p *Price) {
	o.PricePerDay = p.PerDay
	o.PricePerWeek = p.PerWeek
	o.PricePerMonth = p.PerMonth
	o.CurrencyCode = p.CurrencyCode
}
