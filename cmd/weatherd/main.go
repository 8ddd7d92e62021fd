package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"

	"github.com/overcastlabs/weather-dash/internal/adapter/httpapi"
	"github.com/overcastlabs/weather-dash/internal/adapter/openweather"
	"github.com/overcastlabs/weather-dash/internal/config"
	"github.com/overcastlabs/weather-dash/internal/forecast"
	"github.com/overcastlabs/weather-dash/internal/geosuggest"
	"github.com/overcastlabs/weather-dash/internal/observability"
	"github.com/overcastlabs/weather-dash/internal/prefs"
)

func main() {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := openweather.NewClient(cfg.APIKey, cfg.BaseURL, cfg.RequestTimeout, logger, metrics)
	geocoder := openweather.NewCachedGeocoder(client, cfg.GeocodeCacheSize, metrics)

	orchestrator := forecast.New(client, logger, metrics, nil)
	state := forecast.NewState(clockwork.NewRealClock())

	suggester := geosuggest.New(geocoder, client, clockwork.NewRealClock(), cfg.SuggestDebounce,
		logger, metrics, func(geosuggest.Result) {})

	store, err := prefs.Open(cfg.PrefsPath, logger)
	if err != nil {
		logger.Error("failed to open preferences store", "path", cfg.PrefsPath, "error", err)
		os.Exit(1)
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, orchestrator, state, suggester, store, client, cfg.APIKey, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Validate the credential up front so /readyz flips as soon as the
	// provider accepts it. Failure is not fatal: the suggester probes
	// again before each lookup until one succeeds.
	if err := client.ProbeKey(ctx); err != nil {
		logger.Warn("API key validation failed at startup", "error", err)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("preferences store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
