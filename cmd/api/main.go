// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the historical figures HTTP server.
//
// # Startup Sequence
//
//  1. Load .env (development only convenience) and configuration.
//  2. Initialize structured logger.
//  3. Connect to Redis when REDIS_URL is set, else use the in-process limiter.
//  4. Wire the spreadsheet repository, figures service and HTTP handlers.
//  5. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/figures/internal/api"
	"github.com/taibuivan/figures/internal/figure"
	"github.com/taibuivan/figures/internal/platform/config"
	"github.com/taibuivan/figures/internal/platform/constants"
	"github.com/taibuivan/figures/internal/platform/middleware"
	redisstore "github.com/taibuivan/figures/internal/platform/redis"
	"github.com/taibuivan/figures/internal/web"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	bootLog := newLogger("json", false)

	must(bootLog, config.LoadDotEnv(), "load .env")
	cfg, err := config.Load()
	must(bootLog, err, "load configuration")

	// ── 2. Logger ──────────────────────────────────────────────────────────
	log := newLogger(cfg.LogFormat, cfg.Debug)
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("sheets_configured", cfg.SheetsAPIKey != "" && cfg.SheetID != ""),
		slog.Bool("redis_enabled", cfg.RedisURL != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// ── 3. Rate limiter (Redis when configured) ──────────────────────────
	var (
		limiter    middleware.Limiter
		checkCache func(context.Context) error
	)

	if cfg.RedisURL != "" {
		startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		startupCancel()
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		limiter = redisstore.NewRateLimiter(rdb, constants.RedisPrefixRateLimit,
			int(cfg.RateLimitRPS*constants.RateLimitWindow.Seconds())+cfg.RateLimitBurst, constants.RateLimitWindow)
		checkCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	} else {
		limiter = middleware.NewMemoryLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	repository := figure.NewSheetsRepository(cfg.Sheets(), &http.Client{Timeout: cfg.SheetsTimeout}, log)
	service := figure.NewService(repository, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckSheets: repository.Configured,
		CheckCache:  checkCache,
	}, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Figures:   figure.NewHandler(service),
		Gallery: web.NewHandler(service, web.Images{
			Host:        cfg.ImageHost,
			Placeholder: cfg.ImagePlaceholder,
		}),
	}

	server := api.NewServer(cfg, log, limiter, handlers)

	// ── 5. Serve until signalled ──────────────────────────────────────────
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server_stopped_with_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the process logger in the configured format.
func newLogger(format string, debug bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		options.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(os.Stdout, options)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, options)
	}
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
