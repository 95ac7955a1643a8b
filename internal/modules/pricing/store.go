// README: Pricing log store backed by PostgreSQL.
package pricing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists one row per computed quote for auditability.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LogEntry is the persisted audit record of one quote.
type LogEntry struct {
	ID         string
	City       string
	Category   string
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	DailyPrice int64
	TotalPrice int64
	Features   FeatureVector
	CreatedAt  time.Time
}

func (s *Store) AppendLog(ctx context.Context, e *LogEntry) error {
	features, err := json.Marshal(e.Features)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO pricing_logs (
            id, city, category, start_date, end_date,
            rental_length_days, daily_price, total_price, features, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.City, e.Category, e.StartDate, e.EndDate,
		e.Days, e.DailyPrice, e.TotalPrice, features, e.CreatedAt,
	)
	return err
}
