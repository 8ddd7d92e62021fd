package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"OWM_API_KEY", "OWM_BASE_URL", "OWM_REQUEST_TIMEOUT", "HTTP_ADDR",
		"LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT", "PREFS_DB_PATH",
		"GEOCODE_CACHE_SIZE", "SUGGEST_DEBOUNCE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, "https://api.openweathermap.org", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "weather-dash.db", cfg.PrefsPath)
	assert.Equal(t, 1000, cfg.GeocodeCacheSize)
	assert.Equal(t, 300*time.Millisecond, cfg.SuggestDebounce)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("OWM_API_KEY", "abc123")
	t.Setenv("OWM_BASE_URL", "http://localhost:9100")
	t.Setenv("OWM_REQUEST_TIMEOUT", "5s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("PREFS_DB_PATH", "/tmp/prefs.db")
	t.Setenv("GEOCODE_CACHE_SIZE", "50")
	t.Setenv("SUGGEST_DEBOUNCE", "100ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.APIKey)
	assert.Equal(t, "http://localhost:9100", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/tmp/prefs.db", cfg.PrefsPath)
	assert.Equal(t, 50, cfg.GeocodeCacheSize)
	assert.Equal(t, 100*time.Millisecond, cfg.SuggestDebounce)
}

func TestLoad_InvalidRequestTimeout(t *testing.T) {
	t.Setenv("OWM_REQUEST_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OWM_REQUEST_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("GEOCODE_CACHE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_CACHE_SIZE")
}
