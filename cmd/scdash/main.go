package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/sweetchef/sc-dashboard/internal/activity"
	"github.com/sweetchef/sc-dashboard/internal/app"
	"github.com/sweetchef/sc-dashboard/internal/auth"
	"github.com/sweetchef/sc-dashboard/internal/clients"
	"github.com/sweetchef/sc-dashboard/internal/ebe"
	"github.com/sweetchef/sc-dashboard/internal/imports"
	"github.com/sweetchef/sc-dashboard/internal/metrics"
	"github.com/sweetchef/sc-dashboard/internal/platform/cache"
	"github.com/sweetchef/sc-dashboard/internal/platform/db"
	"github.com/sweetchef/sc-dashboard/internal/sales"
	"github.com/sweetchef/sc-dashboard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.NewClient(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, reports run uncached", slog.Any("error", err))
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	reportCache := cache.New(redisClient, cfg.CacheTTL)
	if err := reportCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("cache subscribe", slog.Any("error", err))
	}

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, cfg.CookieTTL, cfg.IsProduction())
	authMiddleware := auth.Middleware{Logger: logger}

	clientRepo := clients.NewRepository(pool)

	salesRepo := sales.NewRepository(pool)
	salesService := sales.NewService(salesRepo, clientRepo, reportCache)
	salesHandler := sales.NewHandler(logger, salesService)

	activityService := activity.NewService(salesRepo, clientRepo, reportCache)
	activityHandler := activity.NewHandler(logger, activityService)

	metricsService := metrics.NewService(metrics.NewRepository(pool))
	metricsHandler := metrics.NewHandler(logger, metricsService)

	ebeService := ebe.NewService(ebe.NewRepository(pool))
	ebeHandler := ebe.NewHandler(logger, ebeService)

	importsService := imports.NewService(imports.NewPGRepository(pool), clientRepo, reportCache, logger)
	importsHandler := imports.NewHandler(logger, importsService, cfg.MaxUploadBytes)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, jobsClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Pool:            pool,
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		SalesHandler:    salesHandler,
		ActivityHandler: activityHandler,
		MetricsHandler:  metricsHandler,
		EBEHandler:      ebeHandler,
		ImportsHandler:  importsHandler,
		JobsHandler:     jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
