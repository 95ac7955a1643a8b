package pricing

import (
	"reflect"
	"testing"
	"time"

	"hanco/internal/market"
)

// Sedan reference set: 185, 195, 190, 200. avg 192.5, min 185, max 200.
// Clamp band: [96.25, 182.875]. Competitive target: 192.5*0.93 = 179.025.
func sedanSnapshot() market.Snapshot {
	return market.Snapshot{
		CompetitorRates: market.ReferenceRates("sedan"),
		Weather:         market.FallbackWeather,
	}
}

func TestEngine_Calculate(t *testing.T) {
	engine := NewEngine(DefaultTables())

	// 2026-02-10 is a Tuesday: no demand or weekend factor, February is peak
	// season (1.08).
	tue := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       QuoteRequest
		wantDaily int64
		wantTotal int64
		wantDays  int
	}{
		{
			name: "weekday quote blends toward competitor target",
			req: QuoteRequest{
				BaseDailyRate:   150,
				Category:        "Sedan",
				StartDate:       tue,
				EndDate:         tue.AddDate(0, 0, 3),
				City:            "Riyadh",
				PickupLocation:  "Riyadh Airport",
				DropoffLocation: "Riyadh Downtown",
				QuotedAt:        tue,
			},
			// Adjusted: 150 * 1.08 * 0.95 (3-day discount) = 153.9.
			// Blend: 153.9*0.6 + 179.025*0.4 = 163.95. Inside the band.
			wantDaily: 164,
			wantTotal: 492,
			wantDays:  3,
		},
		{
			name: "floor clamp protects against underpricing",
			req: QuoteRequest{
				BaseDailyRate:  10,
				Category:       "Sedan",
				StartDate:      tue,
				EndDate:        tue.AddDate(0, 0, 2),
				City:           "Riyadh",
				PickupLocation: "Riyadh",
				QuotedAt:       tue,
			},
			// Blend: 10.8*0.6 + 179.025*0.4 = 78.09, below 96.25 -> floor.
			wantDaily: 96,
			wantTotal: 192,
			wantDays:  2,
		},
		{
			name: "ceiling clamp keeps the quote competitive",
			req: QuoteRequest{
				BaseDailyRate:  1000,
				Category:       "Sedan",
				StartDate:      tue,
				EndDate:        tue.AddDate(0, 0, 2),
				City:           "Riyadh",
				PickupLocation: "Riyadh",
				QuotedAt:       tue,
			},
			// Blend: 648 + 71.61 = 719.61, above 182.875 -> ceiling -> 183.
			wantDaily: 183,
			wantTotal: 366,
			wantDays:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Calculate(tt.req, sedanSnapshot())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.DailyPrice != tt.wantDaily {
				t.Errorf("daily price = %d, want %d", got.DailyPrice, tt.wantDaily)
			}
			if got.TotalPrice != tt.wantTotal {
				t.Errorf("total price = %d, want %d", got.TotalPrice, tt.wantTotal)
			}
			if got.Days != tt.wantDays {
				t.Errorf("days = %d, want %d", got.Days, tt.wantDays)
			}
		})
	}
}

func TestEngine_AdvanceBookingScenario(t *testing.T) {
	engine := NewEngine(DefaultTables())

	// Quoted 10 days before a Tuesday pickup: 0.05 advance discount, 0.05
	// duration discount for 3 days, no demand or weekend factor in February.
	quoted := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	got, err := engine.Calculate(QuoteRequest{
		BaseDailyRate:   150,
		Category:        "Sedan",
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 3),
		City:            "Riyadh",
		PickupLocation:  "Riyadh Airport",
		DropoffLocation: "Riyadh Downtown",
		QuotedAt:        quoted,
	}, sedanSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f := got.Factors
	if f.CityMultiplier != 1.00 {
		t.Errorf("city multiplier = %v, want 1.00", f.CityMultiplier)
	}
	if f.IntercityPremium != 1.00 {
		t.Errorf("intercity premium = %v, want 1.00 (same city)", f.IntercityPremium)
	}
	if f.AdvanceBookingDiscount != 0.05 {
		t.Errorf("advance discount = %v, want 0.05", f.AdvanceBookingDiscount)
	}
	if f.DurationDiscount != 0.05 {
		t.Errorf("duration discount = %v, want 0.05", f.DurationDiscount)
	}
	if f.CompetitorAvg != 192.5 {
		t.Errorf("competitor avg = %v, want 192.5", f.CompetitorAvg)
	}

	// Pre-premium daily price stays inside the clamp band.
	prePremium := float64(got.DailyPrice) / f.IntercityPremium
	if prePremium < 96.25-0.5 || prePremium > 182.875+0.5 {
		t.Errorf("pre-premium price %v outside clamp band [96.25, 182.875]", prePremium)
	}

	// 150*1.08*0.95*0.95 = 146.205; blend: 87.723 + 71.61 = 159.333 -> 159.
	if got.DailyPrice != 159 {
		t.Errorf("daily price = %d, want 159", got.DailyPrice)
	}

	hasAdvance, hasDuration := false, false
	for _, line := range got.Breakdown {
		switch line.Label {
		case "Advance Booking":
			hasAdvance = line.Impact == "-" && line.Value == 0.05
		case "Duration Discount":
			hasDuration = line.Impact == "-" && line.Value == 0.05
		}
	}
	if !hasAdvance {
		t.Error("breakdown missing Advance Booking -5% line")
	}
	if !hasDuration {
		t.Error("breakdown missing Duration Discount -5% line")
	}
}

func TestEngine_HajjSeasonJeddah(t *testing.T) {
	engine := NewEngine(DefaultTables())
	july := time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC) // a Monday

	got, err := engine.Calculate(QuoteRequest{
		BaseDailyRate:  150,
		Category:       "Sedan",
		StartDate:      july,
		EndDate:        july.AddDate(0, 0, 2),
		City:           "Jeddah",
		PickupLocation: "Jeddah",
		QuotedAt:       july,
	}, sedanSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Factors.DemandMultiplier != 1.4 {
		t.Errorf("demand multiplier = %v, want 1.4 in July Jeddah", got.Factors.DemandMultiplier)
	}
}

func TestEngine_IntercityPremiumAppliesAfterClamp(t *testing.T) {
	engine := NewEngine(DefaultTables())

	// 2026-05-13 is a Wednesday in the off-peak season (0.92), no demand factor.
	wed := time.Date(2026, 5, 13, 0, 0, 0, 0, time.UTC)

	// Luxury reference set: 450, 495, 520, 480. avg 486.25, ceiling 461.9375.
	got, err := engine.Calculate(QuoteRequest{
		BaseDailyRate:   500,
		Category:        "Luxury",
		StartDate:       wed,
		EndDate:         wed.AddDate(0, 0, 2),
		City:            "Jeddah",
		PickupLocation:  "Jeddah Airport",
		DropoffLocation: "Riyadh Downtown",
		QuotedAt:        wed,
	}, market.Snapshot{CompetitorRates: market.ReferenceRates("luxury")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Adjusted: 500*0.92*1.05 = 483. Blend: 289.8 + 180.885 = 470.685,
	// clamped to 461.9375, then *1.25 (Jeddah-Riyadh) = 577.42 -> 577.
	// The premium lands after the clamp, so the price exceeds the ceiling.
	if got.DailyPrice != 577 {
		t.Errorf("daily price = %d, want 577", got.DailyPrice)
	}
	ceiling := int64(462)
	if got.DailyPrice <= ceiling {
		t.Errorf("intercity premium was absorbed by the clamp: %d <= %d", got.DailyPrice, ceiling)
	}
	if got.Factors.IntercityPremium != 1.25 {
		t.Errorf("intercity premium = %v, want 1.25", got.Factors.IntercityPremium)
	}
}

func TestEngine_UnknownCategoryFallsBackToSedanRates(t *testing.T) {
	engine := NewEngine(DefaultTables())
	tue := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	got, err := engine.Calculate(QuoteRequest{
		BaseDailyRate:  200,
		Category:       "Convertible",
		StartDate:      tue,
		EndDate:        tue.AddDate(0, 0, 1),
		City:           "Riyadh",
		PickupLocation: "Riyadh",
		QuotedAt:       tue,
	}, market.Snapshot{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Factors.CompetitorAvg != 192.5 {
		t.Errorf("competitor avg = %v, want sedan fallback 192.5", got.Factors.CompetitorAvg)
	}
	if len(got.Competitors) != 4 {
		t.Errorf("competitors = %d, want 4", len(got.Competitors))
	}
}

func TestEngine_Validation(t *testing.T) {
	engine := NewEngine(DefaultTables())
	tue := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	_, err := engine.Calculate(QuoteRequest{
		BaseDailyRate: 150,
		StartDate:     tue,
		EndDate:       tue.AddDate(0, 0, -1),
		QuotedAt:      tue,
	}, sedanSnapshot())
	if err != ErrInvalidDateRange {
		t.Errorf("expected ErrInvalidDateRange, got %v", err)
	}

	_, err = engine.Calculate(QuoteRequest{
		BaseDailyRate: 0,
		StartDate:     tue,
		EndDate:       tue.AddDate(0, 0, 1),
		QuotedAt:      tue,
	}, sedanSnapshot())
	if err != ErrInvalidBaseRate {
		t.Errorf("expected ErrInvalidBaseRate, got %v", err)
	}
}

func TestEngine_CalculateIsPure(t *testing.T) {
	engine := NewEngine(DefaultTables())
	tue := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	req := QuoteRequest{
		BaseDailyRate:   150,
		Category:        "Sedan",
		StartDate:       tue,
		EndDate:         tue.AddDate(0, 0, 5),
		City:            "Riyadh",
		PickupLocation:  "Riyadh Airport",
		DropoffLocation: "Jeddah Downtown",
		QuotedAt:        tue.AddDate(0, 0, -20),
	}

	first, err := engine.Calculate(req, sedanSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := engine.Calculate(req, sedanSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}

func TestEngine_PartialDaysRoundUp(t *testing.T) {
	engine := NewEngine(DefaultTables())
	start := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 12, 16, 0, 0, 0, time.UTC) // 2 days 6 hours

	got, err := engine.Calculate(QuoteRequest{
		BaseDailyRate:  150,
		Category:       "Sedan",
		StartDate:      start,
		EndDate:        end,
		City:           "Riyadh",
		PickupLocation: "Riyadh",
		QuotedAt:       start,
	}, sedanSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Days != 3 {
		t.Errorf("days = %d, want 3 (partial day rounds up)", got.Days)
	}
}

func TestEngine_BreakdownLines(t *testing.T) {
	engine := NewEngine(DefaultTables())
	tue := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	got, err := engine.Calculate(QuoteRequest{
		BaseDailyRate:  150,
		Category:       "Sedan",
		StartDate:      tue,
		EndDate:        tue.AddDate(0, 0, 3),
		City:           "Riyadh",
		PickupLocation: "Riyadh",
		QuotedAt:       tue, // no advance discount
	}, sedanSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	labels := make(map[string]BreakdownLine, len(got.Breakdown))
	for _, line := range got.Breakdown {
		labels[line.Label] = line
	}
	for _, want := range []string{"Base Rate", "Demand Factor", "Seasonal Factor", "Weekend Factor", "City Factor", "Duration Discount", "Intercity Factor"} {
		if _, ok := labels[want]; !ok {
			t.Errorf("breakdown missing %q", want)
		}
	}
	if _, ok := labels["Advance Booking"]; ok {
		t.Error("breakdown should omit a zero advance discount")
	}
	if labels["Base Rate"].Impact != "base" {
		t.Errorf("base rate impact = %q, want base", labels["Base Rate"].Impact)
	}
	if labels["Duration Discount"].Impact != "-" {
		t.Errorf("duration discount impact = %q, want -", labels["Duration Discount"].Impact)
	}
}
