// README: Snapshot provider; fetches weather and competitor rates concurrently.
package market

import (
	"context"
	"sync"
	"time"
)

// WeatherGetter is the weather capability the provider depends on.
type WeatherGetter interface {
	GetWeather(ctx context.Context, city string, date time.Time) (Weather, bool)
}

// RateGetter is the competitor rate capability the provider depends on.
type RateGetter interface {
	GetRates(ctx context.Context, category string) ([]CompetitorRate, bool)
}

// Provider assembles market snapshots. Weather and competitor lookups are
// independent, so they run concurrently, each under its own timeout; a lookup
// that exceeds its budget yields that source's fallback.
type Provider struct {
	weather           WeatherGetter
	rates             RateGetter
	weatherTimeout    time.Duration
	competitorTimeout time.Duration
}

func NewProvider(weather WeatherGetter, rates RateGetter, weatherTimeout, competitorTimeout time.Duration) *Provider {
	return &Provider{
		weather:           weather,
		rates:             rates,
		weatherTimeout:    weatherTimeout,
		competitorTimeout: competitorTimeout,
	}
}

// Snapshot gathers one request's market signals. It never fails: each source
// degrades to its documented fallback independently.
func (p *Provider) Snapshot(ctx context.Context, city string, date time.Time, category string) Snapshot {
	var snap Snapshot
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		wctx, cancel := context.WithTimeout(ctx, p.weatherTimeout)
		defer cancel()
		snap.Weather, snap.WeatherFromFallback = p.weather.GetWeather(wctx, city, date)
	}()
	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, p.competitorTimeout)
		defer cancel()
		snap.CompetitorRates, snap.CompetitorsFromFallback = p.rates.GetRates(cctx, category)
	}()
	wg.Wait()

	return snap
}
