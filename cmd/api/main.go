package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geognosis/orecast/internal/adapters/cache"
	"github.com/geognosis/orecast/internal/adapters/events"
	"github.com/geognosis/orecast/internal/adapters/providers/geology"
	"github.com/geognosis/orecast/internal/adapters/providers/random"
	"github.com/geognosis/orecast/internal/adapters/storage"
	"github.com/geognosis/orecast/internal/api/handlers"
	"github.com/geognosis/orecast/internal/api/routes"
	"github.com/geognosis/orecast/internal/application/controllers"
	"github.com/geognosis/orecast/internal/application/services"
	"github.com/geognosis/orecast/internal/domain/providers"
	"github.com/geognosis/orecast/internal/infrastructure/clients/localstore"
	"github.com/geognosis/orecast/internal/infrastructure/clients/redis"
	"github.com/geognosis/orecast/internal/infrastructure/observability"
	"github.com/geognosis/orecast/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize the embedded key-value store
	store, err := localstore.NewClient(&cfg.LocalStore)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open local store")
	}
	defer store.Close()
	store.SetMetrics(metrics)
	log.Info().Str("path", cfg.LocalStore.Path).Msg("Local store opened")

	// Initialize Redis if available; the application degrades to in-process
	// cache and events without it.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-process cache and events")
		cacheProvider = cache.NewMemoryAdapter()
		eventBus = events.NewMemoryEventBus()
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Redis client initialized")
	}
	defer eventBus.Close()

	// Storage adapters
	historyRepo := storage.NewHistoryAdapter(store)
	projectRepo := storage.NewProjectAdapter(store)
	metricsRepo := storage.NewMetricsAdapter(store)
	sessionRepo := storage.NewSessionAdapter(store)

	// Application services. The shared source is locked: services draw from
	// it on concurrent requests.
	rng := random.NewLockedSource(time.Now().UnixNano())

	estimationService := services.NewEstimationService(geology.NewStaticProvider(), rng)
	estimationService.SetMetrics(metrics)

	historyService := services.NewHistoryService(historyRepo, estimationService, cfg.LocalStore.SeedDemoData)
	projectService := services.NewProjectService(projectRepo, metricsRepo, historyRepo, rng, cfg.LocalStore.SeedDemoData)
	metricsService := services.NewFinancialMetricsService(metricsRepo, projectRepo)
	comparisonService := services.NewComparisonService(historyRepo)
	authService := services.NewAuthService(sessionRepo)

	marketService := services.NewMarketService(
		eventBus,
		cacheProvider,
		random.NewLockedSource(time.Now().UnixNano()+1),
		time.Duration(cfg.Market.TickIntervalSeconds)*time.Second,
	)
	marketService.SetMetrics(metrics)
	defer marketService.Close()

	// Page controller
	estimatorController := controllers.NewEstimatorController(historyService, projectService)
	if cfg.LocalStore.WatchIntervalSeconds > 0 {
		go estimatorController.WatchStorage(ctx, time.Duration(cfg.LocalStore.WatchIntervalSeconds)*time.Second)
	}

	// HTTP layer
	router := routes.NewRouter(
		handlers.NewEstimatorHandler(estimatorController),
		handlers.NewProjectHandler(projectService, metricsService),
		handlers.NewComparisonHandler(comparisonService),
		handlers.NewAuthHandler(authService),
		handlers.NewMarketHandler(marketService, eventBus),
		sessionRepo,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
