package search

import (
	"sort"
	"strings"

	"client-bff/internal/domain/vehicle"
	"client-bff/internal/pkg/fold"
)

// Refine runs prioritize, filter, sort and paginate over offers, in that
// order. The input slice is never modified.
func Refine(offers []vehicle.Offer, criteria *vehicle.AdvancedSearchCriteria) *vehicle.PagedResult {
	out := Prioritize(offers, criteria.UserLocation)
	out = Filter(out, criteria.BodyTypeFilter, criteria.MinPrice, criteria.MaxPrice)
	SortOffers(out, criteria.Sort(), criteria.Direction())
	return Paginate(out, criteria.PageNumber, criteria.PageSize)
}

// Prioritize moves offers located at userLocation to the front, keeping the
// relative order inside both groups. An empty location returns a copy.
func Prioritize(offers []vehicle.Offer, userLocation string) []vehicle.Offer {
	out := make([]vehicle.Offer, 0, len(offers))
	if strings.TrimSpace(userLocation) == "" {
		return append(out, offers...)
	}

	want := fold.String(userLocation)
	var others []vehicle.Offer
	for _, o := range offers {
		if fold.String(o.Location) == want {
			out = append(out, o)
		} else {
			others = append(others, o)
		}
	}
	return append(out, others...)
}

// Filter keeps offers matching the body type (ignoring case) and the
// per-day price bounds. Empty or nil criteria are skipped.
func Filter(offers []vehicle.Offer, bodyType string, minPrice, maxPrice *float64) []vehicle.Offer {
	want := fold.String(bodyType)
	out := make([]vehicle.Offer, 0, len(offers))
	for _, o := range offers {
		if want != "" && fold.String(o.BodyType) != want {
			continue
		}
		if minPrice != nil && o.PricePerDay < *minPrice {
			continue
		}
		if maxPrice != nil && o.PricePerDay > *maxPrice {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SortOffers orders offers in place by a single key. Descending reverses the
// whole comparator. Equal keys keep their prior order.
func SortOffers(offers []vehicle.Offer, field vehicle.SortField, dir vehicle.SortDirection) {
	var less func(a, b *vehicle.Offer) bool
	switch field {
	case vehicle.SortByLocation:
		less = func(a, b *vehicle.Offer) bool { return a.Location < b.Location }
	case vehicle.SortByBodyType:
		less = func(a, b *vehicle.Offer) bool { return a.BodyType < b.BodyType }
	default:
		less = func(a, b *vehicle.Offer) bool { return a.PricePerDay < b.PricePerDay }
	}

	if dir == vehicle.Descending {
		asc := less
		less = func(a, b *vehicle.Offer) bool { return asc(b, a) }
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return less(&offers[i], &offers[j])
	})
}

// Paginate slices one page out of offers. A page past the end is empty but
// still successful; an empty input is an unsuccessful "no matches" result.
func Paginate(offers []vehicle.Offer, pageNumber, pageSize int) *vehicle.PagedResult {
	total := len(offers)
	if total == 0 {
		return vehicle.FailedPage(vehicle.CodeNoMatches, vehicle.MsgNoMatches, pageNumber, pageSize)
	}

	if pageNumber >= vehicle.TotalPages(int64(total), pageSize) {
		return vehicle.NewPage(nil, pageNumber, pageSize, int64(total))
	}

	// pageNumber is below TotalPages, so start < total and cannot overflow.
	start := pageNumber * pageSize
	end := start + minInt(pageSize, total-start)

	page := make([]vehicle.Offer, end-start)
	copy(page, offers[start:end])
	return vehicle.NewPage(page, pageNumber, pageSize, int64(total))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
