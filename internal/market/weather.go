// README: Open-Meteo weather lookup with Redis caching and fixed fallback values.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// cityCoordinates maps service cities to lat/lon for the forecast API.
var cityCoordinates = map[string][2]float64{
	"riyadh":  {24.7136, 46.6753},
	"jeddah":  {21.5433, 39.1728},
	"dammam":  {26.4207, 50.0888},
	"mecca":   {21.3891, 39.8579},
	"medina":  {24.5247, 39.5692},
	"taif":    {21.2703, 40.4158},
	"khobar":  {26.2172, 50.1971},
	"dhahran": {26.3025, 50.1419},
	"tabuk":   {28.3838, 36.5550},
	"abha":    {18.2164, 42.5053},
}

// defaultCoordinates is Riyadh; unknown cities fall back to it.
var defaultCoordinates = [2]float64{24.7136, 46.6753}

type openMeteoResponse struct {
	Daily struct {
		Temperature2MMean []float64 `json:"temperature_2m_mean"`
		PrecipitationSum  []float64 `json:"precipitation_sum"`
		WindSpeed10MMax   []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// WeatherClient fetches daily weather features from Open-Meteo.
// It fails soft: any transport, parse or timeout error yields FallbackWeather
// with fromFallback=true, never an error.
type WeatherClient struct {
	*baseClient
	baseURL  string
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewWeatherClient builds a weather client. cache may be nil, in which case
// every lookup goes to the network.
func NewWeatherClient(baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *WeatherClient {
	return &WeatherClient{
		baseClient: newBaseClient("open-meteo", defaultClientConfig(timeout), logger),
		baseURL:    baseURL,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// GetWeather returns the weather features for a city on a date.
// The second return value reports whether the fallback values were used.
func (c *WeatherClient) GetWeather(ctx context.Context, city string, date time.Time) (Weather, bool) {
	cacheKey := fmt.Sprintf("weather:%s:%s", strings.ToLower(city), date.Format("2006-01-02"))

	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var w Weather
			if json.Unmarshal(raw, &w) == nil {
				return w, false
			}
		}
	}

	coords, ok := cityCoordinates[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		coords = defaultCoordinates
	}

	day := date.Format("2006-01-02")
	url := fmt.Sprintf(
		"%s?latitude=%.4f&longitude=%.4f&start_date=%s&end_date=%s&daily=temperature_2m_mean,precipitation_sum,windspeed_10m_max&timezone=auto",
		c.baseURL, coords[0], coords[1], day, day,
	)

	body, err := c.getWithRetry(ctx, url)
	if err != nil {
		c.logger.Warn("weather lookup failed, using fallback",
			zap.String("city", city),
			zap.String("date", day),
			zap.Error(err))
		return FallbackWeather, true
	}

	var resp openMeteoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("weather response parse failed, using fallback",
			zap.String("city", city),
			zap.Error(err))
		return FallbackWeather, true
	}

	w := FallbackWeather
	if len(resp.Daily.Temperature2MMean) > 0 {
		w.AvgTemp = resp.Daily.Temperature2MMean[0]
	}
	if len(resp.Daily.PrecipitationSum) > 0 {
		w.Rain = resp.Daily.PrecipitationSum[0]
	}
	if len(resp.Daily.WindSpeed10MMax) > 0 {
		w.Wind = resp.Daily.WindSpeed10MMax[0]
	}

	if c.cache != nil {
		if raw, err := json.Marshal(w); err == nil {
			// Cache write failures are ignored; the next request refetches.
			_ = c.cache.Set(ctx, cacheKey, raw, c.cacheTTL).Err()
		}
	}

	return w, false
}
