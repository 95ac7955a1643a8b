// README: Factor functions turning request fields into the engine's multipliers.
package pricing

import (
	"math"
	"strings"
	"time"
)

// demandMultiplier resolves the demand factor for the pickup date and city.
// Season rules (Ramadan, Hajj, summer) take priority over weekday rules;
// the first matching rule wins.
func demandMultiplier(pickup time.Time, city string) float64 {
	month := pickup.Month()
	switch {
	case month == time.March || month == time.April:
		// Ramadan travel season.
		return 1.25
	case month == time.July || month == time.August:
		// Hajj season peaks hardest around the Jeddah gateway.
		if strings.EqualFold(strings.TrimSpace(city), "jeddah") {
			return 1.4
		}
		return 1.2
	case month >= time.June && month <= time.August:
		return 1.12
	}

	switch pickup.Weekday() {
	case time.Friday, time.Saturday:
		return 1.15
	case time.Thursday:
		return 1.08
	}
	return 1.0
}

// seasonalMultiplier: October through April is peak (mild weather),
// May through September is off-peak (extreme heat).
func seasonalMultiplier(pickup time.Time) float64 {
	month := pickup.Month()
	if month >= time.October || month <= time.April {
		return 1.08
	}
	return 0.92
}

func weekendMultiplier(pickup time.Time) float64 {
	switch pickup.Weekday() {
	case time.Friday, time.Saturday:
		return 1.12
	}
	return 1.0
}

// advanceBookingDiscount rewards booking ahead of the pickup date.
func advanceBookingDiscount(quotedAt, pickup time.Time) float64 {
	daysAhead := int(math.Floor(pickup.Sub(quotedAt).Hours() / 24))
	switch {
	case daysAhead >= 30:
		return 0.15
	case daysAhead >= 14:
		return 0.10
	case daysAhead >= 7:
		return 0.05
	}
	return 0
}

// durationDiscount rewards longer rentals; monotone non-decreasing in days.
func durationDiscount(days int) float64 {
	switch {
	case days >= 30:
		return 0.20
	case days >= 14:
		return 0.15
	case days >= 7:
		return 0.10
	case days >= 3:
		return 0.05
	}
	return 0
}

func (t Tables) cityMultiplier(city string) float64 {
	if m, ok := t.CityMultipliers[strings.ToLower(strings.TrimSpace(city))]; ok {
		return m
	}
	return 1.0
}

// intercityPremium compares the leading city token of the pickup and dropoff
// locations. Same city means no premium; a route missing from the table gets
// the default one-way premium.
func (t Tables) intercityPremium(pickupLocation, dropoffLocation string) float64 {
	from := cityToken(pickupLocation)
	to := cityToken(dropoffLocation)
	if from == "" || to == "" || from == to {
		return 1.0
	}
	if p, ok := t.IntercityRoutes[routeKey(from, to)]; ok {
		return p
	}
	return t.DefaultIntercity
}

// cityToken extracts the first whitespace-delimited token, lowercased.
func cityToken(location string) string {
	fields := strings.Fields(location)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// rentalDays is the rental length in whole days, rounding partial days up.
func rentalDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}
