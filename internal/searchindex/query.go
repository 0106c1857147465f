package searchindex

import (
	"strings"

	"client-bff/internal/domain/vehicle"
)

const (
	PolicyZero    = "zero"
	PolicyExclude = "exclude"
)

// maxResultWindow is the index.max_result_window default; from+size past it
// is rejected by the cluster.
const maxResultWindow = 10000

var sortFields = map[vehicle.SortField]string{
	vehicle.SortByPrice:    "pricePerDay",
	vehicle.SortByLocation: "location.keyword",
	vehicle.SortByBodyType: "bodyType",
}

// buildQuery renders the search body for criteria. Only available offers are
// matched; every other clause is added when its criterion is present.
func (v *VehicleIndex) buildQuery(criteria *vehicle.AdvancedSearchCriteria) map[string]interface{} {
	filters := []interface{}{
		term("status", "AVAILABLE"),
	}

	if loc := strings.TrimSpace(criteria.PickupLocation); loc != "" {
		filters = append(filters, map[string]interface{}{
			"wildcard": map[string]interface{}{
				"location.keyword": map[string]interface{}{
					"value":            "*" + escapeWildcard(loc) + "*",
					"case_insensitive": true,
				},
			},
		})
	}

	if criteria.HasGeo() {
		radius := v.defaultRadiusKm
		if criteria.RadiusKm != nil {
			radius = *criteria.RadiusKm
		}
		filters = append(filters, map[string]interface{}{
			"geo_distance": map[string]interface{}{
				"distance": formatKm(radius),
				"locationGeo": map[string]interface{}{
					"lat": *criteria.Latitude,
					"lon": *criteria.Longitude,
				},
			},
		})
	}

	if bt := strings.TrimSpace(criteria.BodyTypeFilter); bt != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{
				"bodyType": map[string]interface{}{"value": bt, "case_insensitive": true},
			},
		})
	}

	if criteria.MinPrice != nil || criteria.MaxPrice != nil {
		bounds := map[string]interface{}{}
		if criteria.MinPrice != nil {
			bounds["gte"] = *criteria.MinPrice
		}
		if criteria.MaxPrice != nil {
			bounds["lte"] = *criteria.MaxPrice
		}
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"pricePerDay": bounds},
		})
	}

	if !criteria.PickupDate.IsZero() {
		filters = append(filters, openBound("availableFrom", "lte", criteria.PickupDate.String()))
	}
	if !criteria.DropOffDate.IsZero() {
		filters = append(filters, openBound("availableUntil", "gte", criteria.DropOffDate.String()))
	}

	if v.missingPricePolicy == PolicyExclude {
		filters = append(filters, map[string]interface{}{
			"exists": map[string]interface{}{"field": "pricePerDay"},
		})
	}

	from, size, _ := pageWindow(criteria.PageNumber, criteria.PageSize)

	order := "asc"
	if criteria.Direction() == vehicle.Descending {
		order = "desc"
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
		"sort": []interface{}{
			map[string]interface{}{
				sortFields[criteria.Sort()]: map[string]interface{}{"order": order, "missing": "_last"},
			},
		},
		"from":             from,
		"size":             size,
		"track_total_hits": true,
	}
}

// pageWindow returns the from/size for a page. Pages starting past the
// result window come back as ok=false with a count-only window.
func pageWindow(pageNumber, pageSize int) (from, size int, ok bool) {
	if pageNumber < 0 || pageSize <= 0 || pageNumber > (maxResultWindow-1)/pageSize {
		return 0, 0, false
	}
	from = pageNumber * pageSize
	size = pageSize
	if size > maxResultWindow-from {
		size = maxResultWindow - from
	}
	return from, size, true
}

func term(field string, value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"term": map[string]interface{}{field: value},
	}
}

// openBound matches docs inside the bound or without the field at all.
func openBound(field, op, value string) map[string]interface{} {
	return map[string]interface{}{
		"bool": map[string]interface{}{
			"should": []interface{}{
				map[string]interface{}{
					"range": map[string]interface{}{field: map[string]interface{}{op: value}},
				},
				map[string]interface{}{
					"bool": map[string]interface{}{
						"must_not": map[string]interface{}{
							"exists": map[string]interface{}{"field": field},
						},
					},
				},
			},
			"minimum_should_match": 1,
		},
	}
}

func escapeWildcard(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
	return r.Replace(s)
}
