package search

import "client-bff/internal/domain/vehicle"

const (
	daysPerWeek  = 7
	daysPerMonth = 30
	dailyMaxDays = 3
)

// TotalCost prices a rental of rentalDays with the tiered schedule:
// up to 3 days bills per day, up to 30 days bills whole weeks plus leftover
// days, and anything longer bills whole months, then weeks, then days.
// rentalDays below 1 is billed as one day.
func TotalCost(pricePerDay, pricePerWeek, pricePerMonth float64, rentalDays int) float64 {
	if rentalDays < 1 {
		rentalDays = 1
	}

	switch {
	case rentalDays <= dailyMaxDays:
		return pricePerDay * float64(rentalDays)
	case rentalDays <= daysPerMonth:
		weeks := rentalDays / daysPerWeek
		days := rentalDays % daysPerWeek
		return pricePerWeek*float64(weeks) + pricePerDay*float64(days)
	default:
		months := rentalDays / daysPerMonth
		rest := rentalDays % daysPerMonth
		weeks := rest / daysPerWeek
		days := rest % daysPerWeek
		return pricePerMonth*float64(months) + pricePerWeek*float64(weeks) + pricePerDay*float64(days)
	}
}

// PriceOffer fills in rental days and total cost for the criteria window.
func PriceOffer(o *vehicle.Offer, criteria *vehicle.SearchCriteria) {
	o.RentalDays = criteria.RentalDays()
	o.TotalCost = TotalCost(o.PricePerDay, o.PricePerWeek, o.PricePerMonth, o.RentalDays)
}
