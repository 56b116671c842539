package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/verdantly/watering-advisor/internal/advisor"
	httpapi "github.com/verdantly/watering-advisor/internal/api/http"
	"github.com/verdantly/watering-advisor/internal/config"
	"github.com/verdantly/watering-advisor/internal/scheduler"
	"github.com/verdantly/watering-advisor/internal/store"
	"github.com/verdantly/watering-advisor/internal/weather"
	"github.com/verdantly/watering-advisor/internal/weather/providers"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Shared HTTP client for outbound forecast calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	// In-memory snapshot store with configured retention.
	snapshots := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Forecast sources, tried in order. Open-Meteo needs no API key and goes
	// first; the keyed sources are fallbacks when configured.
	sources := []weather.ForecastSource{providers.NewOpenMeteoSource(httpClient)}
	if cfg.OpenWeatherAPIKey != "" {
		sources = append(sources, providers.NewOpenWeatherSource(httpClient, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		sources = append(sources, providers.NewWeatherAPISource(httpClient, cfg.WeatherAPIKey))
	}

	service, err := advisor.NewService(sources, snapshots, cfg.Policy, cfg.Locations, cfg.ForecastDays, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create advisor service")
	}

	sched := scheduler.New(service, cfg.RefreshInterval, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "watering-advisor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "watering-advisor",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
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
