package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/aibooooot999-bot/website-cms/internal/app"
	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/media"
	"github.com/aibooooot999-bot/website-cms/internal/platform/db"
	"github.com/aibooooot999-bot/website-cms/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	auditRepo := audit.NewRepository(pool)
	mediaService, err := media.NewService(cfg.UploadDir, nil)
	if err != nil {
		logger.Error("init media library", slog.Any("error", err))
		os.Exit(1)
	}

	pruneTask, err := jobs.NewAuditPruneTask(jobs.AuditPrunePayload{
		RetentionHours: int(cfg.AuditRetention.Hours()),
	})
	if err != nil {
		logger.Error("build prune task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskMediaScan, Handler: jobs.NewMediaScanHandler(mediaService, logger)},
			{Type: jobs.TaskAuditPrune, Handler: jobs.NewAuditPruneHandler(auditRepo, logger)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: jobs.NewMediaScanTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 3 * * *", Task: pruneTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	// Report the library state right away rather than waiting for the
	// overnight schedule.
	client := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	if _, err := client.Enqueue(ctx, jobs.NewMediaScanTask()); err != nil {
		logger.Warn("enqueue startup media scan", slog.Any("error", err))
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return worker.Run(groupCtx)
	})

	logger.Info("worker started", slog.String("redis", cfg.RedisAddr))
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
