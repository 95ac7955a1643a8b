// README: The dynamic pricing engine; pure computation over request + snapshot.
package pricing

import (
	"errors"
	"math"

	"hanco/internal/market"
)

var (
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrInvalidBaseRate  = errors.New("base daily rate must be positive")
)

// Engine computes quotes from a request and a market snapshot. It holds only
// immutable tables, so one Engine may be shared by any number of goroutines.
type Engine struct {
	tables Tables
}

func NewEngine(tables Tables) *Engine {
	return &Engine{tables: tables}
}

// Calculate produces a quote. It is pure: identical request and snapshot
// always yield an identical Result.
//
// The step order matters. Discounts apply before the competitive blend, the
// clamp binds the blended price to the competitor band, and the intercity
// premium lands after the clamp so a one-way surcharge stays visible in the
// final price instead of being absorbed by the band.
func (e *Engine) Calculate(req QuoteRequest, snap market.Snapshot) (*Result, error) {
	days := rentalDays(req.StartDate, req.EndDate)
	if days <= 0 {
		return nil, ErrInvalidDateRange
	}
	if req.BaseDailyRate <= 0 {
		return nil, ErrInvalidBaseRate
	}

	rates := snap.CompetitorRates
	if len(rates) == 0 {
		rates = market.ReferenceRates(req.Category)
	}
	avg, min, max := rateStats(rates)

	t := e.tables
	factors := Factors{
		BaseRate:               req.BaseDailyRate,
		CompetitorAvg:          avg,
		CompetitorMin:          min,
		CompetitorMax:          max,
		DemandMultiplier:       demandMultiplier(req.StartDate, req.City),
		SeasonalMultiplier:     seasonalMultiplier(req.StartDate),
		WeekendMultiplier:      weekendMultiplier(req.StartDate),
		AdvanceBookingDiscount: advanceBookingDiscount(req.QuotedAt, req.StartDate),
		DurationDiscount:       durationDiscount(days),
		CityMultiplier:         t.cityMultiplier(req.City),
		IntercityPremium:       t.intercityPremium(req.PickupLocation, req.DropoffLocation),
	}

	competitiveTarget := avg * t.UndercutTarget

	adjusted := req.BaseDailyRate *
		factors.DemandMultiplier *
		factors.SeasonalMultiplier *
		factors.WeekendMultiplier *
		factors.CityMultiplier
	adjusted *= 1 - factors.AdvanceBookingDiscount
	adjusted *= 1 - factors.DurationDiscount

	adjusted = adjusted*t.BlendLocal + competitiveTarget*t.BlendMarket
	adjusted = clamp(adjusted, avg*t.ClampFloor, avg*t.ClampCeiling)
	adjusted *= factors.IntercityPremium

	dailyPrice := int64(math.Round(adjusted))
	totalPrice := dailyPrice * int64(days)
	originalPrice := int64(math.Round(req.BaseDailyRate * float64(days)))

	return &Result{
		DailyPrice:    dailyPrice,
		TotalPrice:    totalPrice,
		OriginalPrice: originalPrice,
		Savings:       originalPrice - totalPrice,
		Days:          days,
		Factors:       factors,
		Competitors:   rates,
		Breakdown:     buildBreakdown(factors),
	}, nil
}

func rateStats(rates []market.CompetitorRate) (avg, min, max float64) {
	min = rates[0].DailyRate
	max = rates[0].DailyRate
	sum := 0.0
	for _, r := range rates {
		sum += r.DailyRate
		if r.DailyRate < min {
			min = r.DailyRate
		}
		if r.DailyRate > max {
			max = r.DailyRate
		}
	}
	return sum / float64(len(rates)), min, max
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// buildBreakdown lists the factors a caller should display. Discounts at
// zero are skipped; the named multipliers always appear.
func buildBreakdown(f Factors) []BreakdownLine {
	lines := []BreakdownLine{
		{Label: "Base Rate", Value: f.BaseRate, Impact: "base"},
		{Label: "Demand Factor", Value: f.DemandMultiplier, Impact: multiplierImpact(f.DemandMultiplier)},
		{Label: "Seasonal Factor", Value: f.SeasonalMultiplier, Impact: multiplierImpact(f.SeasonalMultiplier)},
		{Label: "Weekend Factor", Value: f.WeekendMultiplier, Impact: multiplierImpact(f.WeekendMultiplier)},
		{Label: "City Factor", Value: f.CityMultiplier, Impact: multiplierImpact(f.CityMultiplier)},
	}
	if f.AdvanceBookingDiscount > 0 {
		lines = append(lines, BreakdownLine{Label: "Advance Booking", Value: f.AdvanceBookingDiscount, Impact: "-"})
	}
	if f.DurationDiscount > 0 {
		lines = append(lines, BreakdownLine{Label: "Duration Discount", Value: f.DurationDiscount, Impact: "-"})
	}
	lines = append(lines, BreakdownLine{Label: "Intercity Factor", Value: f.IntercityPremium, Impact: multiplierImpact(f.IntercityPremium)})
	return lines
}

func multiplierImpact(v float64) string {
	switch {
	case v > 1.0:
		return "+"
	case v < 1.0:
		return "-"
	}
	return "0"
}
