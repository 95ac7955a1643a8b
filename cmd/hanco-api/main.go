// README: Entry point; loads config, wires services, starts HTTP server and background schedulers.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hanco/internal/ai"
	"hanco/internal/config"
	httptransport "hanco/internal/http"
	"hanco/internal/infra"
	"hanco/internal/market"
	"hanco/internal/modules/booking"
	"hanco/internal/modules/branch"
	"hanco/internal/modules/chat"
	"hanco/internal/modules/payment"
	"hanco/internal/modules/pricing"
	"hanco/internal/modules/vehicle"
)

// catalogAdapter narrows the vehicle service to the slice the booking flow needs.
type catalogAdapter struct {
	vehicles *vehicle.Service
}

func (a catalogAdapter) Get(ctx context.Context, id string) (*booking.Vehicle, error) {
	v, err := a.vehicles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &booking.Vehicle{
		ID:            v.ID,
		Category:      v.Category,
		City:          v.City,
		BaseDailyRate: v.BaseDailyRate,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		logger.Fatal("HANCO_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Fatal("firebase init", zap.Error(err))
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("db init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	// Market data: live weather and competitor rates, both fail-soft.
	weatherClient := market.NewWeatherClient(
		cfg.Market.WeatherBaseURL, cfg.Market.WeatherTimeout,
		redisClient, cfg.Market.WeatherCacheTTL, logger)
	competitorStore := market.NewCompetitorStore(dbPool)
	competitorSource := market.NewCompetitorSource(competitorStore, 24*time.Hour, logger)
	snapshots := market.NewProvider(weatherClient, competitorSource,
		cfg.Market.WeatherTimeout, cfg.Market.CompetitorTimeout)

	pricingStore := pricing.NewStore(dbPool)
	pricingSvc := pricing.NewService(snapshots, pricing.NewEngine(pricing.DefaultTables()), pricingStore, logger)

	vehicleSvc := vehicle.NewService(vehicle.NewStore(dbPool))
	bookingSvc := booking.NewService(booking.NewStore(dbPool), catalogAdapter{vehicleSvc}, pricingSvc)
	paymentSvc := payment.NewService(payment.NewStore(dbPool), bookingSvc, logger)

	var geocoder branch.Geocoder
	if cfg.Maps.APIKey != "" {
		geocoder, err = branch.NewMapsGeocoder(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("maps init", zap.Error(err))
		}
	}
	branchSvc := branch.NewService(branch.NewStore(dbPool), geocoder, logger)

	var llm ai.LLMProvider
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			logger.Fatal("gemini init", zap.Error(err))
		}
		defer gemini.Close()
		llm = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set; chatbot runs on keyword parsing only")
	}
	chatSvc := chat.NewService(chat.NewStore(redisClient), vehicleSvc, pricingSvc, bookingSvc, llm, logger)

	// Periodic competitor rate refresh from the configured feed.
	if cfg.Market.CompetitorFeedURL != "" {
		feed := market.NewFeedClient(cfg.Market.CompetitorFeedURL, cfg.Market.CompetitorTimeout, logger)
		refresher := market.NewRefresher(feed, competitorStore, logger)
		if err := refresher.Start(ctx, cfg.Market.RefreshSchedule); err != nil {
			logger.Fatal("competitor refresher", zap.Error(err))
		}
		defer refresher.Stop()
	}

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Pricing:  pricingSvc,
		Vehicles: vehicleSvc,
		Bookings: bookingSvc,
		Payments: paymentSvc,
		Branches: branchSvc,
		Chat:     chatSvc,
		Verifier: verifier,
		Logger:   logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
}
