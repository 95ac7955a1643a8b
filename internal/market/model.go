// README: Market data types shared by the providers and the pricing engine.
package market

// Weather carries the weather features used as pricing inputs.
type Weather struct {
	AvgTemp float64 `json:"avg_temp"`
	Rain    float64 `json:"rain"`
	Wind    float64 `json:"wind"`
}

// FallbackWeather is substituted whenever the weather provider fails or
// times out. Pricing must never fail solely because weather is unavailable.
var FallbackWeather = Weather{AvgTemp: 25.0, Rain: 0.0, Wind: 10.0}

// CompetitorRate is one third-party rental company's daily price for a category.
type CompetitorRate struct {
	Company   string  `json:"company"`
	DailyRate float64 `json:"daily_rate"`
	Category  string  `json:"category"`
}

// Snapshot bundles the market signals for one pricing computation.
// It is rebuilt per request and never persisted by the engine.
//
// The FromFallback flags make the fail-soft provider contract explicit:
// a caller can tell whether live data or the reference tables were used.
type Snapshot struct {
	CompetitorRates         []CompetitorRate
	Weather                 Weather
	WeatherFromFallback     bool
	CompetitorsFromFallback bool
}
