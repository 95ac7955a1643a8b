// README: Pricing request/result types and the injected rate tables.
package pricing

import (
	"time"

	"hanco/internal/market"
)

// QuoteRequest is the immutable input to one pricing computation.
// QuotedAt is the reference "now" for the advance-booking discount; the
// orchestrator populates it so Calculate stays a pure function of its inputs.
type QuoteRequest struct {
	BaseDailyRate   float64
	Category        string
	StartDate       time.Time
	EndDate         time.Time
	City            string
	PickupLocation  string
	DropoffLocation string
	QuotedAt        time.Time
}

// Factors are the resolved multiplier/discount values behind a quote,
// kept so a caller can show why a price was produced.
type Factors struct {
	BaseRate               float64 `json:"base_rate"`
	CompetitorAvg          float64 `json:"competitor_avg"`
	CompetitorMin          float64 `json:"competitor_min"`
	CompetitorMax          float64 `json:"competitor_max"`
	DemandMultiplier       float64 `json:"demand_multiplier"`
	SeasonalMultiplier     float64 `json:"seasonal_multiplier"`
	WeekendMultiplier      float64 `json:"weekend_multiplier"`
	AdvanceBookingDiscount float64 `json:"advance_booking_discount"`
	DurationDiscount       float64 `json:"duration_discount"`
	CityMultiplier         float64 `json:"city_multiplier"`
	IntercityPremium       float64 `json:"intercity_premium"`
}

// BreakdownLine is one entry of the human-auditable computation trace.
// Impact is "+", "-", "0" or "base".
type BreakdownLine struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Impact string  `json:"impact"`
}

// Result is the outcome of one pricing computation. Savings is the literal
// original minus total and may be negative when the market pushes price up.
type Result struct {
	DailyPrice    int64                   `json:"daily_price"`
	TotalPrice    int64                   `json:"total_price"`
	OriginalPrice int64                   `json:"original_price"`
	Savings       int64                   `json:"savings"`
	Days          int                     `json:"rental_length_days"`
	Factors       Factors                 `json:"factors"`
	Competitors   []market.CompetitorRate `json:"competitors"`
	Breakdown     []BreakdownLine         `json:"breakdown"`
}

// Tables is the engine's injected configuration: the static rate tables plus
// the tunable business parameters of the competitive blend. The blend and
// clamp constants are load-bearing for quote reproducibility; change them
// only with product sign-off.
type Tables struct {
	CityMultipliers  map[string]float64
	IntercityRoutes  map[string]float64
	DefaultIntercity float64

	UndercutTarget float64 // competitive target as a share of competitor average
	BlendLocal     float64 // weight of the locally adjusted price
	BlendMarket    float64 // weight of the competitive target
	ClampFloor     float64 // lower clamp bound as a share of competitor average
	ClampCeiling   float64 // upper clamp bound as a share of competitor average
}

// DefaultTables returns the production tables. Intercity premiums are keyed
// by unordered city pair and reflect real driving distances between branches.
func DefaultTables() Tables {
	return Tables{
		CityMultipliers: map[string]float64{
			"riyadh": 1.00,
			"jeddah": 1.05,
			"dammam": 0.95,
			"mecca":  1.15,
			"medina": 1.12,
			"taif":   1.08,
		},
		IntercityRoutes: map[string]float64{
			routeKey("riyadh", "jeddah"): 1.25,
			routeKey("riyadh", "dammam"): 1.15,
			routeKey("riyadh", "mecca"):  1.25,
			routeKey("riyadh", "medina"): 1.22,
			routeKey("riyadh", "taif"):   1.22,
			routeKey("jeddah", "mecca"):  1.05,
			routeKey("jeddah", "medina"): 1.15,
			routeKey("jeddah", "taif"):   1.08,
			routeKey("jeddah", "dammam"): 1.35,
			routeKey("mecca", "medina"):  1.15,
			routeKey("mecca", "taif"):    1.05,
			routeKey("mecca", "dammam"):  1.30,
			routeKey("medina", "taif"):   1.18,
			routeKey("medina", "dammam"): 1.30,
			routeKey("taif", "dammam"):   1.30,
		},
		DefaultIntercity: 1.20,

		UndercutTarget: 0.93,
		BlendLocal:     0.6,
		BlendMarket:    0.4,
		ClampFloor:     0.50,
		ClampCeiling:   0.95,
	}
}

func routeKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
