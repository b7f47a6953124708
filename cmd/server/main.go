package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/stocklens/backend/config"
	httpDelivery "github.com/stocklens/backend/internal/delivery/http"
	"github.com/stocklens/backend/internal/infrastructure/cache"
	"github.com/stocklens/backend/internal/infrastructure/metrics"
	"github.com/stocklens/backend/internal/infrastructure/upc"
	"github.com/stocklens/backend/internal/usecase"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting StockLens backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	// Infrastructure
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()

	lookupClient := upc.NewClient(upc.Config{
		APIKey:            cfg.Lookup.APIKey,
		BaseURL:           cfg.Lookup.BaseURL,
		RequestsPerMinute: cfg.Lookup.RequestsPerMinute,
		Burst:             cfg.Lookup.Burst,
		Timeout:           cfg.Lookup.Timeout,
	}, logger)
	if cfg.Lookup.APIKey == "" {
		logger.Warn("no lookup API key configured, using the keyless trial endpoint limits",
			zap.String("base_url", cfg.Lookup.BaseURL))
	}

	registry := metrics.NewRegistry()
	registry.TrackCacheEntries(memoryCache.Size)

	// Usecases
	engine := usecase.NewMatchEngine(usecase.MatchConfig{
		Thresholds: usecase.ConfidenceThresholds{
			MinScore: cfg.Matching.MinScore,
			High:     cfg.Matching.HighScore,
			Medium:   cfg.Matching.MediumScore,
		},
		Workers:            cfg.Matching.Workers,
		ParallelThreshold:  cfg.Matching.ParallelThreshold,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	}, logger)

	scanService := usecase.NewScanService(
		memoryCache,
		lookupClient,
		engine,
		registry,
		logger,
		usecase.ScanServiceConfig{CacheTTL: cfg.Cache.TTL},
	)

	thresholds := engine.Thresholds()
	logger.Info("match engine configured",
		zap.Float64("min_score", thresholds.MinScore),
		zap.Float64("high_score", thresholds.High),
		zap.Float64("medium_score", thresholds.Medium),
		zap.Int("workers", cfg.Matching.Workers),
	)

	handler := httpDelivery.NewHandler(scanService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger, registry.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
