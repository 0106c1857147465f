package vehicle

import (
	"fmt"
	"math"
	"strings"
	"time"

	xerrors "client-bff/internal/pkg/errors"
)

const (
	DefaultPageSize = 10
	TimeLayout      = "15:04"
)

// SearchCriteria is the basic search request.
type SearchCriteria struct {
	PickupLocation string `json:"pickupLocation"`
	PickupDate     Date   `json:"pickupDate"`
	PickupTime     string `json:"pickupTime"`
	DropOffDate    Date   `json:"dropOffDate"`
	DropOffTime    string `json:"dropOffTime"`
}

// Validate checks required fields and the date window. It returns a
// *xerrors.ValidationError naming the first offending field.
func (c *SearchCriteria) Validate() error {
	if strings.TrimSpace(c.PickupLocation) == "" {
		return xerrors.NewValidationError("pickupLocation", "is required")
	}
	if c.PickupDate.IsZero() {
		return xerrors.NewValidationError("pickupDate", "is required")
	}
	if c.DropOffDate.IsZero() {
		return xerrors.NewValidationError("dropOffDate", "is required")
	}
	if c.PickupDate.After(c.DropOffDate.Time) {
		return xerrors.NewValidationError("dropOffDate", "must not be before pickupDate")
	}
	if err := validateTime("pickupTime", c.PickupTime); err != nil {
		return err
	}
	return validateTime("dropOffTime", c.DropOffTime)
}

// RentalDays is the billable length of the window, never less than one.
func (c *SearchCriteria) RentalDays() int {
	days := c.PickupDate.DaysUntil(c.DropOffDate)
	if days < 1 {
		return 1
	}
	return days
}

func validateTime(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return xerrors.NewValidationError(field, "is required")
	}
	if _, err := time.Parse(TimeLayout, value); err != nil {
		if _, err := time.Parse("15:04:05", value); err != nil {
			return xerrors.NewValidationError(field, "must be HH:MM")
		}
	}
	return nil
}

type SortField string

const (
	SortByPrice    SortField = "price"
	SortByLocation SortField = "location"
	SortByBodyType SortField = "bodyType"
)

// ParseSortField maps request values onto a known field, defaulting to price.
func ParseSortField(s string) SortField {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "location":
		return SortByLocation
	case "bodytype":
		return SortByBodyType
	default:
		return SortByPrice
	}
}

type SortDirection string

const (
	Ascending  SortDirection = "ASC"
	Descending SortDirection = "DESC"
)

func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

// AdvancedSearchCriteria adds paging, sorting, filtering and location hints.
type AdvancedSearchCriteria struct {
	SearchCriteria

	PageNumber     int      `json:"pageNumber"`
	PageSize       int      `json:"pageSize"`
	SortBy         string   `json:"sortBy"`
	SortDirection  string   `json:"sortDirection"`
	BodyTypeFilter string   `json:"bodyTypeFilter,omitempty"`
	MinPrice       *float64 `json:"minPrice,omitempty"`
	MaxPrice       *float64 `json:"maxPrice,omitempty"`
	UserLocation   string   `json:"userLocation,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	RadiusKm       *float64 `json:"radiusKm,omitempty"`
}

// ApplyDefaults fills in the page size when the caller left it out.
func (c *AdvancedSearchCriteria) ApplyDefaults() {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
}

func (c *AdvancedSearchCriteria) Validate() error {
	if err := c.SearchCriteria.Validate(); err != nil {
		return err
	}
	if c.PageNumber < 0 {
		return xerrors.NewValidationError("pageNumber", "must be zero or greater")
	}
	if c.PageSize <= 0 {
		return xerrors.NewValidationError("pageSize", "must be greater than zero")
	}
	if (c.Latitude == nil) != (c.Longitude == nil) {
		return xerrors.NewValidationError("latitude", "latitude and longitude must be given together")
	}
	if c.RadiusKm != nil && *c.RadiusKm <= 0 {
		return xerrors.NewValidationError("radiusKm", "must be greater than zero")
	}
	return nil
}

func (c *AdvancedSearchCriteria) Sort() SortField {
	return ParseSortField(c.SortBy)
}

func (c *AdvancedSearchCriteria) Direction() SortDirection {
	return ParseSortDirection(c.SortDirection)
}

// HasGeo reports whether a geo-point was supplied.
func (c *AdvancedSearchCriteria) HasGeo() bool {
	return c.Latitude != nil && c.Longitude != nil
}

type ResultCode string

const (
	CodeOK                  ResultCode = "OK"
	CodeNoAvailability      ResultCode = "NO_AVAILABILITY"
	CodePricingUnavailable  ResultCode = "PRICING_UNAVAILABLE"
	CodeNoMatches           ResultCode = "NO_MATCHES"
	CodeUpstreamUnavailable ResultCode = "UPSTREAM_UNAVAILABLE"
	CodeInternalError       ResultCode = "INTERNAL_ERROR"
)

const (
	MsgNoAvailability      = "no vehicles available for the selected criteria"
	MsgPricingUnavailable  = "pricing unavailable for all available vehicles"
	MsgNoMatches           = "no vehicles match the search criteria"
	MsgUpstreamUnavailable = "vehicle search is temporarily unavailable, please try again later"
	MsgInternalError       = "an unexpected error occurred while searching vehicles"
)

// BasicResult is the basic search response.
type BasicResult struct {
	Vehicles      []Offer    `json:"vehicles"`
	TotalVehicles int        `json:"totalVehicles"`
	Success       bool       `json:"success"`
	Code          ResultCode `json:"code"`
	Message       string     `json:"message"`
}

func NewBasicResult(offers []Offer) *BasicResult {
	return &BasicResult{
		Vehicles:      offers,
		TotalVehicles: len(offers),
		Success:       true,
		Code:          CodeOK,
		Message:       fmt.Sprintf("found %d available vehicles", len(offers)),
	}
}

func FailedBasicResult(code ResultCode, message string) *BasicResult {
	return &BasicResult{
		Vehicles: []Offer{},
		Success:  false,
		Code:     code,
		Message:  message,
	}
}

// PagedResult is the advanced search response shared by every search path.
type PagedResult struct {
	Vehicles      []Offer    `json:"vehicles"`
	PageNumber    int        `json:"pageNumber"`
	PageSize      int        `json:"pageSize"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
	First         bool       `json:"first"`
	Last          bool       `json:"last"`
	Success       bool       `json:"success"`
	Code          ResultCode `json:"code"`
	Message       string     `json:"message"`
}

// NewPage builds a successful page and derives the page counters.
func NewPage(vehicles []Offer, pageNumber, pageSize int, total int64) *PagedResult {
	if vehicles == nil {
		vehicles = []Offer{}
	}
	totalPages := TotalPages(total, pageSize)
	return &PagedResult{
		Vehicles:      vehicles,
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         pageNumber == 0,
		Last:          pageNumber >= totalPages-1,
		Success:       true,
		Code:          CodeOK,
		Message:       fmt.Sprintf("found %d vehicles (%d on this page)", total, len(vehicles)),
	}
}

// FailedPage builds an empty unsuccessful page.
func FailedPage(code ResultCode, message string, pageNumber, pageSize int) *PagedResult {
	return &PagedResult{
		Vehicles:   []Offer{},
		PageNumber: pageNumber,
		PageSize:   pageSize,
		First:      pageNumber == 0,
		Last:       true,
		Success:    false,
		Code:       code,
		Message:    message,
	}
}

func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
