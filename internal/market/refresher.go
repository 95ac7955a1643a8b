// README: Cron-driven refresh of the competitor_prices table from the scrape feed.
package market

import (
	"context"
	"encoding/json"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// FeedClient pulls the scraping pipeline's published rates. The scraping
// mechanics themselves live outside this service; we only consume its feed.
type FeedClient struct {
	*baseClient
	feedURL string
}

func NewFeedClient(feedURL string, timeout time.Duration, logger *zap.Logger) *FeedClient {
	return &FeedClient{
		baseClient: newBaseClient("competitor-feed", defaultClientConfig(timeout), logger),
		feedURL:    feedURL,
	}
}

type feedEntry struct {
	Company   string  `json:"company"`
	Category  string  `json:"category"`
	DailyRate float64 `json:"daily_rate"`
}

func (c *FeedClient) Fetch(ctx context.Context) ([]CompetitorRate, error) {
	body, err := c.getWithRetry(ctx, c.feedURL)
	if err != nil {
		return nil, err
	}
	var entries []feedEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}
	rates := make([]CompetitorRate, 0, len(entries))
	for _, e := range entries {
		if e.DailyRate <= 0 || e.Company == "" {
			continue
		}
		rates = append(rates, CompetitorRate{Company: e.Company, DailyRate: e.DailyRate, Category: e.Category})
	}
	return rates, nil
}

// Refresher periodically copies the feed into Postgres so pricing reads
// recent rates without touching the feed on the request path. Feed failures
// only log: pricing falls back to reference tables regardless.
type Refresher struct {
	feed   *FeedClient
	store  *CompetitorStore
	cron   *cron.Cron
	logger *zap.Logger
}

func NewRefresher(feed *FeedClient, store *CompetitorStore, logger *zap.Logger) *Refresher {
	return &Refresher{feed: feed, store: store, cron: cron.New(), logger: logger}
}

// Start schedules the refresh and runs one immediately in the background.
func (r *Refresher) Start(ctx context.Context, schedule string) error {
	if _, err := r.cron.AddFunc(schedule, func() { r.refresh(ctx) }); err != nil {
		return err
	}
	r.cron.Start()
	go r.refresh(ctx)
	return nil
}

func (r *Refresher) Stop() {
	r.cron.Stop()
}

func (r *Refresher) refresh(ctx context.Context) {
	fctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	rates, err := r.feed.Fetch(fctx)
	if err != nil {
		r.logger.Warn("competitor feed fetch failed", zap.Error(err))
		return
	}

	now := time.Now()
	stored := 0
	for _, rate := range rates {
		if err := r.store.Upsert(fctx, rate, now); err != nil {
			r.logger.Warn("competitor rate upsert failed",
				zap.String("company", rate.Company),
				zap.String("category", rate.Category),
				zap.Error(err))
			continue
		}
		stored++
	}
	r.logger.Info("competitor rates refreshed",
		zap.Int("fetched", len(rates)),
		zap.Int("stored", stored))
}
