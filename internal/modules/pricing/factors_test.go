package pricing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDemandMultiplier(t *testing.T) {
	tests := []struct {
		name   string
		pickup time.Time
		city   string
		want   float64
	}{
		{"ramadan season overrides weekday", date(2026, 3, 20), "Riyadh", 1.25}, // a Friday
		{"ramadan april", date(2026, 4, 7), "Dammam", 1.25},
		{"hajj season jeddah gateway", date(2026, 7, 6), "Jeddah", 1.4},
		{"hajj season other city", date(2026, 7, 6), "Riyadh", 1.2},
		{"hajj season case-insensitive city", date(2026, 8, 3), "JEDDAH", 1.4},
		{"summer june", date(2026, 6, 10), "Riyadh", 1.12},
		{"friday weekend", date(2026, 2, 13), "Riyadh", 1.15},
		{"saturday weekend", date(2026, 2, 14), "Riyadh", 1.15},
		{"thursday shoulder", date(2026, 2, 12), "Riyadh", 1.08},
		{"plain tuesday", date(2026, 2, 10), "Riyadh", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := demandMultiplier(tt.pickup, tt.city); got != tt.want {
				t.Errorf("demandMultiplier(%v, %s) = %v, want %v", tt.pickup, tt.city, got, tt.want)
			}
		})
	}
}

func TestSeasonalMultiplier(t *testing.T) {
	if got := seasonalMultiplier(date(2026, 11, 5)); got != 1.08 {
		t.Errorf("november = %v, want 1.08", got)
	}
	if got := seasonalMultiplier(date(2026, 4, 30)); got != 1.08 {
		t.Errorf("april = %v, want 1.08", got)
	}
	if got := seasonalMultiplier(date(2026, 5, 1)); got != 0.92 {
		t.Errorf("may = %v, want 0.92", got)
	}
	if got := seasonalMultiplier(date(2026, 9, 30)); got != 0.92 {
		t.Errorf("september = %v, want 0.92", got)
	}
}

func TestWeekendMultiplier(t *testing.T) {
	if got := weekendMultiplier(date(2026, 2, 13)); got != 1.12 { // Friday
		t.Errorf("friday = %v, want 1.12", got)
	}
	if got := weekendMultiplier(date(2026, 2, 14)); got != 1.12 { // Saturday
		t.Errorf("saturday = %v, want 1.12", got)
	}
	if got := weekendMultiplier(date(2026, 2, 15)); got != 1.0 { // Sunday: a working day
		t.Errorf("sunday = %v, want 1.0", got)
	}
}

func TestAdvanceBookingDiscount(t *testing.T) {
	quoted := date(2026, 1, 1)
	tests := []struct {
		daysAhead int
		want      float64
	}{
		{45, 0.15},
		{30, 0.15},
		{29, 0.10},
		{14, 0.10},
		{13, 0.05},
		{7, 0.05},
		{6, 0},
		{0, 0},
	}
	for _, tt := range tests {
		pickup := quoted.AddDate(0, 0, tt.daysAhead)
		if got := advanceBookingDiscount(quoted, pickup); got != tt.want {
			t.Errorf("advanceBookingDiscount(+%dd) = %v, want %v", tt.daysAhead, got, tt.want)
		}
	}
}

func TestDurationDiscount(t *testing.T) {
	tests := []struct {
		days int
		want float64
	}{
		{1, 0}, {2, 0}, {3, 0.05}, {6, 0.05}, {7, 0.10},
		{13, 0.10}, {14, 0.15}, {29, 0.15}, {30, 0.20}, {90, 0.20},
	}
	for _, tt := range tests {
		if got := durationDiscount(tt.days); got != tt.want {
			t.Errorf("durationDiscount(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}

	// Longer rentals never pay a higher rate.
	prev := 0.0
	for days := 1; days <= 60; days++ {
		d := durationDiscount(days)
		if d < prev {
			t.Fatalf("discount decreased at %d days: %v -> %v", days, prev, d)
		}
		prev = d
	}
}

func TestCityMultiplier(t *testing.T) {
	tables := DefaultTables()
	tests := []struct {
		city string
		want float64
	}{
		{"Riyadh", 1.00},
		{"jeddah", 1.05},
		{"Dammam", 0.95},
		{"Mecca", 1.15},
		{"Medina", 1.12},
		{"Taif", 1.08},
		{"  Jeddah  ", 1.05},
		{"Khobar", 1.0}, // unknown city
		{"", 1.0},
	}
	for _, tt := range tests {
		if got := tables.cityMultiplier(tt.city); got != tt.want {
			t.Errorf("cityMultiplier(%q) = %v, want %v", tt.city, got, tt.want)
		}
	}
}

func TestIntercityPremium(t *testing.T) {
	tables := DefaultTables()
	tests := []struct {
		name    string
		pickup  string
		dropoff string
		want    float64
	}{
		{"same city", "Riyadh Airport", "Riyadh Downtown", 1.0},
		{"known route", "Riyadh Airport", "Jeddah Corniche", 1.25},
		{"known route reversed", "Jeddah Corniche", "Riyadh Airport", 1.25},
		{"jeddah dammam long haul", "Jeddah Airport", "Dammam Station", 1.35},
		{"unknown route default", "Riyadh Airport", "Khobar Mall", 1.20},
		{"empty dropoff", "Riyadh Airport", "", 1.0},
		{"empty pickup", "", "Jeddah Airport", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tables.intercityPremium(tt.pickup, tt.dropoff); got != tt.want {
				t.Errorf("intercityPremium(%q, %q) = %v, want %v", tt.pickup, tt.dropoff, got, tt.want)
			}
		})
	}
}

func TestRentalDays(t *testing.T) {
	start := date(2026, 2, 10)
	tests := []struct {
		end  time.Time
		want int
	}{
		{start.AddDate(0, 0, 1), 1},
		{start.AddDate(0, 0, 3), 3},
		{start.Add(36 * time.Hour), 2},  // 1.5 days -> 2
		{start.Add(time.Hour), 1},       // an hour still bills a day
		{start, 0},                      // invalid, caught by the engine
	}
	for _, tt := range tests {
		if got := rentalDays(start, tt.end); got != tt.want {
			t.Errorf("rentalDays(%v) = %d, want %d", tt.end, got, tt.want)
		}
	}
}
