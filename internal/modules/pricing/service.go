// README: Pricing service; gathers market data, runs the engine, logs the quote.
package pricing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"hanco/internal/market"
)

// SnapshotProvider is the market data boundary the service depends on.
// Implementations never fail; they degrade to documented fallbacks.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, city string, date time.Time, category string) market.Snapshot
}

// Service is the pricing orchestrator. Its only hard failures are request
// validation errors; market data problems degrade to fallbacks inside the
// provider and pricing always returns a result for a valid request.
type Service struct {
	provider SnapshotProvider
	engine   *Engine
	store    *Store
	logger   *zap.Logger
}

// NewService wires the orchestrator. store may be nil to disable quote logging.
func NewService(provider SnapshotProvider, engine *Engine, store *Store, logger *zap.Logger) *Service {
	return &Service{provider: provider, engine: engine, store: store, logger: logger}
}

// Quote validates the request, assembles a market snapshot and computes the
// price. A zero QuotedAt is stamped with the current time.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Result, error) {
	if req.QuotedAt.IsZero() {
		req.QuotedAt = time.Now()
	}
	if req.BaseDailyRate <= 0 {
		return nil, ErrInvalidBaseRate
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	snap := s.provider.Snapshot(ctx, req.City, req.StartDate, req.Category)

	result, err := s.engine.Calculate(req, snap)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		entry := &LogEntry{
			ID:         newID(),
			City:       req.City,
			Category:   req.Category,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Days:       result.Days,
			DailyPrice: result.DailyPrice,
			TotalPrice: result.TotalPrice,
			Features:   BuildFeatures(req, snap),
			CreatedAt:  time.Now(),
		}
		// Logging is best effort; a quote is never lost to an audit write.
		if err := s.store.AppendLog(ctx, entry); err != nil {
			s.logger.Warn("pricing log write failed", zap.String("id", entry.ID), zap.Error(err))
		}
	}

	s.logger.Info("quote computed",
		zap.String("city", req.City),
		zap.String("category", req.Category),
		zap.Int("days", result.Days),
		zap.Int64("daily_price", result.DailyPrice),
		zap.Int64("total_price", result.TotalPrice),
		zap.Bool("weather_fallback", snap.WeatherFromFallback),
		zap.Bool("competitor_fallback", snap.CompetitorsFromFallback))

	return result, nil
}

func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
