// Package main is the entrypoint for the MobileSiteCheck API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wheemin1/MobileSiteCheck/internal/api"
	"github.com/wheemin1/MobileSiteCheck/internal/api/handler"
	mw "github.com/wheemin1/MobileSiteCheck/internal/api/middleware"
	"github.com/wheemin1/MobileSiteCheck/internal/api/response"
	"github.com/wheemin1/MobileSiteCheck/internal/audit"
	"github.com/wheemin1/MobileSiteCheck/internal/audit/lighthouse"
	"github.com/wheemin1/MobileSiteCheck/internal/audit/simulated"
	"github.com/wheemin1/MobileSiteCheck/internal/cache"
	"github.com/wheemin1/MobileSiteCheck/internal/config"
	"github.com/wheemin1/MobileSiteCheck/internal/preview"
	"github.com/wheemin1/MobileSiteCheck/internal/render"
	"github.com/wheemin1/MobileSiteCheck/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "store_backend", cfg.Store.Backend, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Create report store
	var reportStore store.Store
	switch cfg.Store.Backend {
	case "postgres":
		pool, err := store.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		slog.Info("database connected, migrations applied")

		reportStore = store.NewPostgresStore(pool, cfg.Store.Freshness)
	default:
		reportStore = store.NewMemStore(cfg.Store.Freshness)
	}

	// 3. Create Redis cache when configured; previews and rate limiting
	// degrade gracefully without it.
	var redisCache cache.Cache
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer rc.Close()

		if err := rc.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected")
		redisCache = rc
	}

	// 4. Create audit providers and the analysis service
	primary := lighthouse.NewProvider(cfg.Audit, cfg.Render)
	fallback := simulated.NewProvider()
	analysis := audit.NewService(primary, fallback, reportStore, cfg.Audit.Timeout)

	// 5. Preview service and report renderers
	previewSvc := preview.NewService(cfg.Preview, cfg.Render)
	chromium := render.NewChromiumRenderer(cfg.Render)
	markdownFallback := render.NewMarkdownRenderer()

	// 6. Build router with dependencies
	var rateLimit *mw.RateLimit
	if redisCache != nil {
		rateLimit = mw.NewRateLimit(redisCache, 30)
	}

	deps := api.Dependencies{
		RateLimit: rateLimit,

		HealthHandler:     healthHandler(reportStore, redisCache),
		AnalyzeHandler:    handler.NewAnalyzeHandler(analysis),
		PreviewHandler:    handler.NewPreviewHandler(previewSvc, redisCache, cfg.Preview.CacheTTL),
		GetReportHandler:  handler.NewGetReportHandler(reportStore),
		ReportPDFHandler:  handler.NewReportPDFHandler(reportStore, chromium, markdownFallback),
		ScreenshotHandler: handler.NewReportScreenshotHandler(reportStore, chromium),
		RegisterHandler:   handler.NewRegisterHandler(reportStore),
		LoginHandler:      handler.NewLoginHandler(reportStore),
	}

	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler checks store and (optional) cache connectivity.
func healthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"store": "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["store"] = "degraded"
		}
		if c != nil {
			checks["cache"] = "ok"
			if err := c.Ping(r.Context()); err != nil {
				checks["cache"] = "degraded"
			}
		}

		for _, status := range checks {
			if status != "ok" {
				response.Error(w, http.StatusServiceUnavailable, "One or more services degraded")
				return
			}
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
