package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	cataloghttp "github.com/tair/starwars-api/internal/catalog/delivery/http"
	catalogrepo "github.com/tair/starwars-api/internal/catalog/repository"
	favoritehttp "github.com/tair/starwars-api/internal/favorite/delivery/http"
	"github.com/tair/starwars-api/internal/favorite/domain"
	favoriterepo "github.com/tair/starwars-api/internal/favorite/repository"
	"github.com/tair/starwars-api/internal/server"
	"github.com/tair/starwars-api/kafka"
	"github.com/tair/starwars-api/pkg/cache"
	"github.com/tair/starwars-api/pkg/database"
	"github.com/tair/starwars-api/pkg/logger"
	"github.com/tair/starwars-api/pkg/metrics"
	"github.com/tair/starwars-api/pkg/middleware"
	"github.com/tair/starwars-api/pkg/ratelimit"
	"github.com/tair/starwars-api/pkg/tracing"
)

const (
	metricsNamespace = "starwars"
	favoritesResync  = time.Minute
)

func (a *app) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := a.cfg

	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint, cfg.TracingEnabled)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	debugSQL := cfg.LogLevel == "debug" || cfg.LogLevel == "trace"
	db, err := database.NewGormConnection(ctx, cfg.DSN(), database.DefaultPoolConfig(), debugSQL)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(reg, metricsNamespace)
	totalFavorites := metrics.NewTotalGauge(reg, metricsNamespace, "favorites", "Number of stored favorites")

	// the API keeps serving without Redis, uncached
	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Response cache disabled")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	responseCache := cache.NewResponseCache(redisClient, cfg.CacheTTL)

	publisher, err := newPublisher(cfg.Brokers())
	if err != nil {
		return err
	}
	defer publisher.Close()

	catalogRepo := catalogrepo.NewTracingCatalogRepository(catalogrepo.NewGormCatalogRepository(db))
	favoriteRepo := favoriterepo.NewTracingFavoriteRepository(favoriterepo.NewGormFavoriteRepository(db))

	favorites := favoritehttp.NewFavoriteHandler(favoriteRepo, publisher, httpMetrics, totalFavorites)
	go favorites.WatchFavoritesGauge(ctx, favoritesResync)

	handler := server.NewRouter(server.RouterDeps{
		Catalog:     cataloghttp.NewCatalogHandler(catalogRepo, httpMetrics, responseCache),
		Favorites:   favorites,
		DB:          sqlDB,
		Gatherer:    reg,
		Middleware:  middleware.DefaultConfig(cfg.RequestTimeout),
		RateLimiter: ratelimit.NewRedis(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow),
	})

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("http_port", cfg.HTTPPort).
		Str("grpc_port", cfg.GRPCPort).
		Msg("Starting Star Wars API")

	return server.New(handler, sqlDB, cfg.HTTPPort, cfg.GRPCPort).Run(ctx)
}

// closablePublisher is a favorite event publisher owning a connection
type closablePublisher interface {
	domain.EventPublisher
	Close() error
}

func newPublisher(brokers []string) (closablePublisher, error) {
	if len(brokers) == 0 {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, favorite events disabled")
		return kafka.NopPublisher{}, nil
	}
	p, err := kafka.NewPublisher(brokers)
	if err != nil {
		return nil, err
	}
	return p, nil
}
