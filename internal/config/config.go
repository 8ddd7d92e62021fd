package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// OpenWeatherMap API settings.
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Preference store and geocoding settings.
	PrefsPath        string
	GeocodeCacheSize int
	SuggestDebounce  time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. The API key may be empty or a placeholder; provider calls
// then short-circuit with an authentication error instead of failing here.
func Load() (*Config, error) {
	requestTimeout, err := parseDuration("OWM_REQUEST_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	suggestDebounce, err := parseDuration("SUGGEST_DEBOUNCE", "300ms")
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("GEOCODE_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIKey:           os.Getenv("OWM_API_KEY"),
		BaseURL:          envOrDefault("OWM_BASE_URL", "https://api.openweathermap.org"),
		RequestTimeout:   requestTimeout,
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		PrefsPath:        envOrDefault("PREFS_DB_PATH", "weather-dash.db"),
		GeocodeCacheSize: cacheSize,
		SuggestDebounce:  suggestDebounce,
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("OWM_BASE_URL must not be empty")
	}
	if cfg.PrefsPath == "" {
		return nil, errors.New("PREFS_DB_PATH must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
