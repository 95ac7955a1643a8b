// README: Flat numeric feature vector recorded with every quote.
package pricing

import (
	"hanco/internal/market"
)

// FeatureVector is the flat numeric view of one pricing computation:
// temporal, vehicle and market features. It is not consumed by the formula
// itself; it is logged with each quote so priced bookings can be audited and
// future models trained on real decisions.
type FeatureVector map[string]float64

// BuildFeatures assembles the feature vector from a request and snapshot.
// Pure; it is handed already-fetched market data and does no I/O.
func BuildFeatures(req QuoteRequest, snap market.Snapshot) FeatureVector {
	days := rentalDays(req.StartDate, req.EndDate)
	rates := snap.CompetitorRates
	if len(rates) == 0 {
		rates = market.ReferenceRates(req.Category)
	}
	avg, _, _ := rateStats(rates)

	return FeatureVector{
		"rental_length_days":   float64(days),
		"day_of_week":          float64(req.StartDate.Weekday()),
		"month":                float64(req.StartDate.Month()),
		"base_daily_rate":      req.BaseDailyRate,
		"avg_temp":             snap.Weather.AvgTemp,
		"rain":                 snap.Weather.Rain,
		"wind":                 snap.Weather.Wind,
		"avg_competitor_price": avg,
		"bias":                 1.0,
	}
}
