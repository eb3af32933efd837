package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/backend"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "weather-dashboard").Logger()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Forecast endpoints backed by Tomorrow.io.
	service := weather.NewService(providers.NewTomorrowProvider(httpClient, cfg.TomorrowURL, cfg.TomorrowAPIKey))

	// Dashboard: geocoding with IP fallback, and a client of our own forecast endpoints.
	resolver := location.NewResolver(
		providers.NewGoogleGeocoder(httpClient, cfg.GeocodeURL, cfg.GoogleAPIKey),
		providers.NewIPLocator(httpClient, cfg.IPLocationURL, cfg.IPLocationToken),
	)
	fetcher := backend.NewClient(cfg.BackendURL, backend.WithTimeout(cfg.HTTPTimeout))

	// In-memory page sessions with configured retention.
	sessions := store.NewMemoryStore(cfg.SessionMax, cfg.SessionMaxAge)
	ctrl := dashboard.NewController(sessions, resolver, fetcher)

	renderer, err := dashboard.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse page template")
	}

	// Scheduler that periodically drops idle sessions.
	sched := scheduler.New(sessions, cfg.SessionSweepInterval)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Page actions wait on geocoding and the forecast endpoints in turn.
		WriteTimeout: 3*cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler: httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/weather", fiber.StatusSeeOther)
	})
	app.Static("/static", cfg.StaticDir)
	app.Get("/favicon.ico", func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(cfg.StaticDir, "favicon.ico"))
	})

	httpapi.RegisterRoutes(app, service)
	httpapi.RegisterDashboard(app, ctrl, renderer)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
}
