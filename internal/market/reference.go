// README: Static competitor reference tables backing every category.
package market

import "strings"

// referenceRates is the per-category reference table used when no live
// scraped rates are available. Every supported category has at least four
// entries so the average downstream is always defined.
var referenceRates = map[string][]CompetitorRate{
	"economy": {
		{Company: "Budget Saudi", DailyRate: 95, Category: "Economy"},
		{Company: "Theeb", DailyRate: 105, Category: "Economy"},
		{Company: "Yelo", DailyRate: 99, Category: "Economy"},
		{Company: "Key", DailyRate: 110, Category: "Economy"},
	},
	"compact": {
		{Company: "Budget Saudi", DailyRate: 125, Category: "Compact"},
		{Company: "Theeb", DailyRate: 135, Category: "Compact"},
		{Company: "Yelo", DailyRate: 129, Category: "Compact"},
		{Company: "Key", DailyRate: 140, Category: "Compact"},
	},
	"sedan": {
		{Company: "Budget Saudi", DailyRate: 185, Category: "Sedan"},
		{Company: "Theeb", DailyRate: 195, Category: "Sedan"},
		{Company: "Yelo", DailyRate: 190, Category: "Sedan"},
		{Company: "Key", DailyRate: 200, Category: "Sedan"},
	},
	"suv": {
		{Company: "Budget Saudi", DailyRate: 280, Category: "SUV"},
		{Company: "Theeb", DailyRate: 295, Category: "SUV"},
		{Company: "Yelo", DailyRate: 285, Category: "SUV"},
		{Company: "Lumi", DailyRate: 310, Category: "SUV"},
	},
	"luxury": {
		{Company: "Budget Saudi", DailyRate: 450, Category: "Luxury"},
		{Company: "Hertz", DailyRate: 495, Category: "Luxury"},
		{Company: "Lumi", DailyRate: 520, Category: "Luxury"},
		{Company: "Key", DailyRate: 480, Category: "Luxury"},
	},
}

// ReferenceRates returns the reference competitor set for a category.
// Unrecognized categories degrade to the Sedan set rather than failing.
func ReferenceRates(category string) []CompetitorRate {
	if rates, ok := referenceRates[strings.ToLower(strings.TrimSpace(category))]; ok {
		return append([]CompetitorRate(nil), rates...)
	}
	return append([]CompetitorRate(nil), referenceRates["sedan"]...)
}
