// README: Competitor rate source backed by Postgres with static reference fallback.
package market

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CompetitorStore reads and writes scraped competitor rates in Postgres.
type CompetitorStore struct {
	db *pgxpool.Pool
}

func NewCompetitorStore(db *pgxpool.Pool) *CompetitorStore {
	return &CompetitorStore{db: db}
}

// RecentByCategory returns rates scraped within maxAge for a category,
// newest first, at most limit rows.
func (s *CompetitorStore) RecentByCategory(ctx context.Context, category string, maxAge time.Duration, limit int) ([]CompetitorRate, error) {
	rows, err := s.db.Query(ctx, `
        SELECT company, daily_rate, category
        FROM competitor_prices
        WHERE lower(category) = lower($1)
          AND scraped_at > $2
        ORDER BY scraped_at DESC
        LIMIT $3`,
		category, time.Now().Add(-maxAge), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []CompetitorRate
	for rows.Next() {
		var r CompetitorRate
		if err := rows.Scan(&r.Company, &r.DailyRate, &r.Category); err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// Upsert replaces a company's rate for a category with a fresh scrape.
func (s *CompetitorStore) Upsert(ctx context.Context, r CompetitorRate, scrapedAt time.Time) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO competitor_prices (company, category, daily_rate, scraped_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (company, category)
        DO UPDATE SET daily_rate = EXCLUDED.daily_rate, scraped_at = EXCLUDED.scraped_at`,
		r.Company, r.Category, r.DailyRate, scrapedAt,
	)
	return err
}

// CompetitorSource resolves the competitor set for a category, preferring
// recently scraped rates and degrading to the reference tables. It never
// returns an empty set.
type CompetitorSource struct {
	store  *CompetitorStore
	maxAge time.Duration
	logger *zap.Logger
}

// NewCompetitorSource builds a source. store may be nil (reference-only mode,
// used by tests and by deployments without a scraping pipeline).
func NewCompetitorSource(store *CompetitorStore, maxAge time.Duration, logger *zap.Logger) *CompetitorSource {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &CompetitorSource{store: store, maxAge: maxAge, logger: logger}
}

// GetRates returns the competitor rates for a category. The second return
// value reports whether the static reference table was substituted.
func (s *CompetitorSource) GetRates(ctx context.Context, category string) ([]CompetitorRate, bool) {
	if s.store != nil {
		rates, err := s.store.RecentByCategory(ctx, category, s.maxAge, 20)
		if err != nil {
			s.logger.Warn("competitor rate query failed, using reference table",
				zap.String("category", category),
				zap.Error(err))
		} else if len(rates) > 0 {
			return rates, false
		}
	}
	return ReferenceRates(category), true
}
