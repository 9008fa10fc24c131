package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aibooooot999-bot/website-cms/internal/app"
	"github.com/aibooooot999-bot/website-cms/internal/audit"
	"github.com/aibooooot999-bot/website-cms/internal/auth"
	"github.com/aibooooot999-bot/website-cms/internal/dashboard"
	"github.com/aibooooot999-bot/website-cms/internal/media"
	"github.com/aibooooot999-bot/website-cms/internal/pages"
	"github.com/aibooooot999-bot/website-cms/internal/platform/cache"
	"github.com/aibooooot999-bot/website-cms/internal/platform/db"
	"github.com/aibooooot999-bot/website-cms/internal/rbac"
	"github.com/aibooooot999-bot/website-cms/internal/roles"
	"github.com/aibooooot999-bot/website-cms/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, dashboard cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	codec, err := auth.NewTokenCodec(cfg.JWTSecret)
	if err != nil {
		logger.Error("token codec", slog.Any("error", err))
		os.Exit(1)
	}

	auditRepo := audit.NewRepository(dbpool)
	auditService := audit.NewService(auditRepo, logger)

	authStore := auth.NewStore(dbpool)
	resolver := auth.NewResolver(codec, authStore)
	authService := auth.NewService(authStore, codec, auditService, logger)
	authHandler := auth.NewHandler(logger, authService, resolver)

	rbacMiddleware := rbac.Middleware{Logger: logger, Source: auth.GrantsFromRequest}

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo, auditService)
	usersHandler := users.NewHandler(logger, usersService, rbacMiddleware)

	rolesRepo := roles.NewRepository(dbpool)
	rolesService := roles.NewService(rolesRepo, auditService)
	rolesHandler := roles.NewHandler(logger, rolesService, rbacMiddleware)

	pagesRepo := pages.NewRepository(dbpool)
	pagesService := pages.NewService(pagesRepo, auditService)
	pagesHandler := pages.NewHandler(logger, pagesService, rbacMiddleware)

	mediaService, err := media.NewService(cfg.UploadDir, auditService)
	if err != nil {
		logger.Error("init media library", slog.Any("error", err))
		os.Exit(1)
	}
	mediaHandler := media.NewHandler(logger, mediaService, rbacMiddleware)

	dashboardRepo := dashboard.NewRepository(dbpool)
	dashboardService := dashboard.NewService(dashboardRepo, dashboard.NewCache(redisClient, cfg.DashboardCacheTTL))
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, auditService, rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Resolver:         resolver,
		AuthHandler:      authHandler,
		UsersHandler:     usersHandler,
		RolesHandler:     rolesHandler,
		PagesHandler:     pagesHandler,
		MediaHandler:     mediaHandler,
		DashboardHandler: dashboardHandler,
		UploadDir:        mediaService.Dir(),
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
