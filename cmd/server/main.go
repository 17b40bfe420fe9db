package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/config"
	"invoicing-roi-api/internal/handler"
	"invoicing-roi-api/internal/repository"
	"invoicing-roi-api/internal/service"
)

const (
	pingTimeout     = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	scenarios, err := config.LoadScenarios(cfg.ScenariosFile)
	if err != nil {
		logger.Fatalf("Failed to load scenarios: %v", err)
	}

	// Open the calculation store. The connection is verified by the monitor
	// below, so an unreachable database does not stop the server.
	db, err := repository.Open(cfg.StoreDriver, cfg.DSN())
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	info := cfg.StoreInfo()
	calculationRepo := repository.NewCalculationRepository(db, info, logger)

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		if err := redisCache.Ping(ctx); err != nil {
			logger.WithError(err).WithField("addr", cfg.RedisAddr).Warn("Redis is not reachable, listings will be read from the database")
		} else {
			logger.WithField("addr", cfg.RedisAddr).Info("Using redis cache")
		}
		cancel()
		cache = redisCache
	} else {
		logger.Info("REDIS_ADDR not set, using in-memory cache")
		cache = repository.NewMemoryCache()
	}

	// Services
	logger.Info("Initializing services...")
	monitor := service.NewConnectionMonitor(calculationRepo, info, pingTimeout, logger)
	// Store calls keep the monitor current between scheduled checks
	store := service.ObserveStore(calculationRepo, monitor)
	calculationService := service.NewCalculationService(store, cache, cfg.CacheTTL, scenarios, logger)

	checkDatabase := func() {
		if err := monitor.Check(context.Background()); err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if err := calculationRepo.EnsureSchema(ctx); err != nil {
			logger.WithError(err).Error("Failed to prepare calculation schema")
		}
	}
	checkDatabase()

	// Periodic connection checks
	c := cron.New()
	if _, err := c.AddFunc(cfg.DBCheckSchedule, checkDatabase); err != nil {
		logger.Fatalf("Invalid DB_CHECK_SCHEDULE %q: %v", cfg.DBCheckSchedule, err)
	}
	c.Start()

	// HTTP handlers
	logger.Info("Initializing API handlers...")
	router := handler.NewRouter(
		handler.NewCalculationHandler(calculationService, logger),
		handler.NewHealthHandler(monitor, logger),
		cfg.CORSOrigin,
		logger,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":   cfg.Port,
			"driver": info.Driver,
		}).Info("Server running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	<-c.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	if err := cache.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close cache")
	}
	if err := calculationRepo.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close database")
	}
	logger.Info("Server stopped")
}
