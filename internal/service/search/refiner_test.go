package search

import (
	"math"
	"testing"
	"time"

	"client-bff/internal/domain/vehicle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offer(model, location, bodyType string, perDay float64) vehicle.Offer {
	return vehicle.Offer{Model: model, Location: location, BodyType: bodyType, PricePerDay: perDay}
}

func models(offers []vehicle.Offer) []string {
	out := make([]string, 0, len(offers))
	for _, o := range offers {
		out = append(out, o.Model)
	}
	return out
}

func floatPtr(f float64) *float64 { return &f }

func TestPrioritize(t *testing.T) {
	offers := []vehicle.Offer{
		offer("A", "Colombo", "SUV", 10),
		offer("B", "Kandy", "SUV", 10),
		offer("C", " colombo ", "SUV", 10),
		offer("D", "Galle", "SUV", 10),
	}

	assert.Equal(t, []string{"A", "C", "B", "D"}, models(Prioritize(offers, "COLOMBO")))
	assert.Equal(t, []string{"A", "B", "C", "D"}, models(Prioritize(offers, "")))
	assert.Equal(t, []string{"A", "B", "C", "D"}, models(Prioritize(offers, "Jaffna")))
	assert.Equal(t, "A", offers[0].Model)
	assert.Equal(t, "B", offers[1].Model)
}

func TestFilter(t *testing.T) {
	offers := []vehicle.Offer{
		offer("A", "Colombo", "SUV", 40),
		offer("B", "Colombo", "Sedan", 60),
		offer("C", "Colombo", "suv", 80),
		offer("D", "Colombo", "SUV", 120),
	}

	tests := []struct {
		name     string
		bodyType string
		min, max *float64
		expected []string
	}{
		{"no criteria", "", nil, nil, []string{"A", "B", "C", "D"}},
		{"body type ignores case", "SuV", nil, nil, []string{"A", "C", "D"}},
		{"min price inclusive", "", floatPtr(60), nil, []string{"B", "C", "D"}},
		{"max price inclusive", "", nil, floatPtr(80), []string{"A", "B", "C"}},
		{"all combined", "suv", floatPtr(50), floatPtr(100), []string{"C"}},
		{"nothing matches", "Truck", nil, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, models(Filter(offers, tt.bodyType, tt.min, tt.max)))
		})
	}
}

func TestSortOffers(t *testing.T) {
	base := []vehicle.Offer{
		offer("A", "Kandy", "SUV", 50),
		offer("B", "Colombo", "Sedan", 30),
		offer("C", "Galle", "SUV", 50),
		offer("D", "Colombo", "Van", 10),
	}

	tests := []struct {
		name     string
		field    vehicle.SortField
		dir      vehicle.SortDirection
		expected []string
	}{
		{"price ascending keeps ties stable", vehicle.SortByPrice, vehicle.Ascending, []string{"D", "B", "A", "C"}},
		{"price descending keeps ties stable", vehicle.SortByPrice, vehicle.Descending, []string{"A", "C", "B", "D"}},
		{"location ascending", vehicle.SortByLocation, vehicle.Ascending, []string{"B", "D", "C", "A"}},
		{"body type descending", vehicle.SortByBodyType, vehicle.Descending, []string{"D", "B", "A", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers := append([]vehicle.Offer(nil), base...)
			SortOffers(offers, tt.field, tt.dir)
			assert.Equal(t, tt.expected, models(offers))
		})
	}
}

func TestPaginate(t *testing.T) {
	offers := make([]vehicle.Offer, 25)
	for i := range offers {
		offers[i] = offer(string(rune('a'+i)), "Colombo", "SUV", float64(i))
	}

	t.Run("first page", func(t *testing.T) {
		p := Paginate(offers, 0, 10)
		assert.True(t, p.Success)
		assert.Len(t, p.Vehicles, 10)
		assert.Equal(t, int64(25), p.TotalElements)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.First)
		assert.False(t, p.Last)
	})

	t.Run("last partial page", func(t *testing.T) {
		p := Paginate(offers, 2, 10)
		assert.Len(t, p.Vehicles, 5)
		assert.Equal(t, "u", p.Vehicles[0].Model)
		assert.True(t, p.Last)
	})

	t.Run("past the end is empty but successful", func(t *testing.T) {
		p := Paginate(offers, 7, 10)
		assert.True(t, p.Success)
		assert.Empty(t, p.Vehicles)
		assert.NotNil(t, p.Vehicles)
		assert.Equal(t, int64(25), p.TotalElements)
	})

	t.Run("huge page number does not overflow", func(t *testing.T) {
		p := Paginate(offers, int(^uint(0)>>1), 10)
		assert.True(t, p.Success)
		assert.Empty(t, p.Vehicles)
	})

	t.Run("max page size does not overflow", func(t *testing.T) {
		p := Paginate(offers, 0, math.MaxInt)
		assert.True(t, p.Success)
		assert.Len(t, p.Vehicles, 25)
		assert.Equal(t, 1, p.TotalPages)
		assert.True(t, p.Last)

		p = Paginate(offers, 1, math.MaxInt)
		assert.True(t, p.Success)
		assert.Empty(t, p.Vehicles)
		assert.Equal(t, int64(25), p.TotalElements)
	})

	t.Run("empty input is no matches", func(t *testing.T) {
		p := Paginate(nil, 0, 10)
		assert.False(t, p.Success)
		assert.Equal(t, vehicle.CodeNoMatches, p.Code)
		assert.Equal(t, vehicle.MsgNoMatches, p.Message)
		assert.Empty(t, p.Vehicles)
	})

	t.Run("pages cover every offer exactly once", func(t *testing.T) {
		for _, size := range []int{1, 3, 7, 10, 25, 40} {
			var seen []string
			total := vehicle.TotalPages(int64(len(offers)), size)
			for n := 0; n < total; n++ {
				p := Paginate(offers, n, size)
				require.LessOrEqual(t, len(p.Vehicles), size)
				seen = append(seen, models(p.Vehicles)...)
			}
			assert.Equal(t, models(offers), seen, "page size %d", size)
		}
	})
}

func TestRefine(t *testing.T) {
	offers := []vehicle.Offer{
		offer("A", "Kandy", "SUV", 90),
		offer("B", "Colombo", "Sedan", 40),
		offer("C", "Colombo", "SUV", 70),
		offer("D", "Galle", "SUV", 30),
		offer("E", "Colombo", "SUV", 20),
	}
	input := append([]vehicle.Offer(nil), offers...)

	criteria := &vehicle.AdvancedSearchCriteria{
		SearchCriteria: vehicle.SearchCriteria{
			PickupLocation: "Colombo",
			PickupDate:     vehicle.NewDate(2025, time.March, 1),
			PickupTime:     "10:00",
			DropOffDate:    vehicle.NewDate(2025, time.March, 3),
			DropOffTime:    "10:00",
		},
		PageNumber:     0,
		PageSize:       2,
		SortBy:         "price",
		SortDirection:  "DESC",
		BodyTypeFilter: "suv",
		UserLocation:   "colombo",
	}

	p := Refine(offers, criteria)

	require.True(t, p.Success)
	assert.Equal(t, []string{"A", "C"}, models(p.Vehicles))
	assert.Equal(t, int64(4), p.TotalElements)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, input, offers)

	criteria.PageNumber = 1
	assert.Equal(t, []string{"D", "E"}, models(Refine(offers, criteria).Vehicles))

	criteria.BodyTypeFilter = "Truck"
	p = Refine(offers, criteria)
	assert.False(t, p.Success)
	assert.Equal(t, vehicle.CodeNoMatches, p.Code)
}
