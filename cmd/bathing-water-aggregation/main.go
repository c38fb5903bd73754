package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/bathing-water-aggregation/internal/api/http"
	"github.com/i474232898/bathing-water-aggregation/internal/config"
	"github.com/i474232898/bathing-water-aggregation/internal/metrics"
	"github.com/i474232898/bathing-water-aggregation/internal/scheduler"
	"github.com/i474232898/bathing-water-aggregation/internal/store"
	"github.com/i474232898/bathing-water-aggregation/internal/water"
	"github.com/i474232898/bathing-water-aggregation/internal/water/sources"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// Shared HTTP client for outbound source calls.
	httpCfg := sources.HTTPClientConfig{
		Client:        &http.Client{Timeout: cfg.HTTPTimeout},
		Recency:       water.NewRecency(cfg.RecencyWindow, cfg.Location),
		OnStateChange: m.CircuitChanged,
	}

	registry := sources.NewRegistrySource(httpCfg, cfg.Sources.RegistryURL)
	srcs := []water.Source{
		registry,
		sources.NewHydroSource(httpCfg, cfg.Sources.HydroURL, cfg.Sources.HydroRegion),
		sources.NewTourismSource(httpCfg, cfg.Sources.TourismURL, cfg.Sources.TourismRegion),
	}

	// One cache slot per dataset, same TTL, no cross-invalidation.
	cacheOpts := store.Options{Observer: m}
	tableCache := store.NewMemoryCache[[]water.Entry](cfg.CacheTTL, cacheOpts)
	registryCache := store.NewMemoryCache[[]water.Site](cfg.CacheTTL, cacheOpts)

	service := water.NewService(registry, srcs, tableCache, registryCache, water.Options{
		Timeout:  cfg.ExecutionTimeout,
		Recorder: m,
	})

	sched := scheduler.New(cfg.RefreshInterval, cfg.ExecutionTimeout, service)
	if err := sched.Start(); err != nil {
		slog.Error("failed to start scheduler", "err", err)
		os.Exit(1)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "bathing-water-aggregation",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "bathing-water-aggregation",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		slog.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "err", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "err", err)
	}
}
