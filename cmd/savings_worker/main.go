package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/SscSPs/savings_ledger_app/internal/core/services"
	"github.com/SscSPs/savings_ledger_app/internal/jobs"
	"github.com/SscSPs/savings_ledger_app/internal/platform/cache"
	"github.com/SscSPs/savings_ledger_app/internal/platform/config"
	"github.com/SscSPs/savings_ledger_app/internal/platform/logging"
	"github.com/SscSPs/savings_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/savings_ledger_app/pkg/database"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Default().Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)
	slog.SetDefault(logger)

	if cfg.RedisAddr == "" {
		logger.Error("REDIS_ADDR is required to run the worker")
		os.Exit(1)
	}
	if cfg.StorageBackend != config.StoragePostgres {
		logger.Error("The worker needs STORAGE_BACKEND=postgres; in-memory data is not shared across processes")
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool, logger)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Redis close", slog.String("error", err.Error()))
		}
	}()

	repos := pgsql.NewRepositoryProvider(dbPool)
	catalogCache := cache.NewAccountTypeCache(redisClient, cfg.CatalogCacheTTL)
	serviceContainer := services.NewServiceContainer(cfg, repos, catalogCache)

	sweepJob := jobs.NewInterestSweepJob(
		serviceContainer.Interest,
		cache.NewLocker(redisClient),
		cfg.SweepLockTTL,
		logger,
		jobs.NewMetrics(nil),
	)
	sweepTask, err := jobs.NewInterestSweepTask("cron")
	if err != nil {
		logger.Error("Failed to build interest sweep task", slog.String("error", err.Error()))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskInterestSweep, Handler: sweepJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.SweepCron, Task: sweepTask},
		},
	})
	if err != nil {
		logger.Error("Failed to initialize worker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
