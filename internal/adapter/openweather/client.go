package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/overcastlabs/weather-dash/internal/domain"
	"github.com/overcastlabs/weather-dash/internal/observability"
)

// Placeholder values shipped in example .env files. A key matching one of
// these is treated as absent: calls short-circuit without touching the
// network.
var placeholderKeys = map[string]struct{}{
	"":                                      {},
	"your_api_key_here":                     {},
	"REPLACE_WITH_YOUR_OPENWEATHER_API_KEY": {},
}

// Endpoint labels used in logs and metrics.
const (
	endpointCurrent  = "current"
	endpointOneCall  = "onecall"
	endpointForecast = "forecast"
	endpointGeocode  = "geocode"
	endpointProbe    = "probe"
)

// Client calls the OpenWeatherMap REST API and normalizes its responses
// into canonical domain records. It implements domain.Geocoder.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
	probed     atomic.Bool
}

// NewClient creates an OpenWeatherMap client. The timeout applies per
// request; a request exceeding it fails with a domain.TimeoutError.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
		metrics: metrics,
	}
}

// CurrentByName fetches current conditions for a free-text place name.
// An unknown name fails with domain.LocationNotFoundError.
func (c *Client) CurrentByName(ctx context.Context, name string) (domain.CurrentConditions, error) {
	params := url.Values{
		"q":     {name},
		"units": {"metric"},
	}
	var raw currentResponse
	err := c.get(ctx, "/data/2.5/weather", params, endpointCurrent, &domain.LocationNotFoundError{Query: name}, &raw)
	if err != nil {
		return domain.CurrentConditions{}, err
	}
	return normalizeCurrent(raw), nil
}

// CurrentByCoords fetches current conditions at a coordinate pair.
func (c *Client) CurrentByCoords(ctx context.Context, coord domain.Coordinates) (domain.CurrentConditions, error) {
	params := url.Values{
		"lat":   {formatCoord(coord.Lat)},
		"lon":   {formatCoord(coord.Lon)},
		"units": {"metric"},
	}
	var raw currentResponse
	err := c.get(ctx, "/data/2.5/weather", params, endpointCurrent, nil, &raw)
	if err != nil {
		return domain.CurrentConditions{}, err
	}
	cur := normalizeCurrent(raw)
	// The provider echoes grid-snapped coordinates; keep the requested point
	// so current, forecast, and alerts always describe the same place.
	cur.Coord = coord
	return cur, nil
}

// OneCall fetches the unified daily+hourly+alerts forecast, excluding the
// current and minutely sections.
func (c *Client) OneCall(ctx context.Context, coord domain.Coordinates) (domain.ForecastBundle, error) {
	params := url.Values{
		"lat":     {formatCoord(coord.Lat)},
		"lon":     {formatCoord(coord.Lon)},
		"exclude": {"current,minutely"},
		"units":   {"metric"},
	}
	var raw oneCallResponse
	err := c.get(ctx, "/data/2.5/onecall", params, endpointOneCall, nil, &raw)
	if err != nil {
		return domain.ForecastBundle{}, err
	}
	return normalizeOneCall(raw), nil
}

// LegacyForecast fetches the 3-hour-resolution 5-day forecast. It carries
// no alert data.
func (c *Client) LegacyForecast(ctx context.Context, coord domain.Coordinates) (domain.LegacyBundle, error) {
	params := url.Values{
		"lat":   {formatCoord(coord.Lat)},
		"lon":   {formatCoord(coord.Lon)},
		"units": {"metric"},
	}
	var raw legacyResponse
	err := c.get(ctx, "/data/2.5/forecast", params, endpointForecast, nil, &raw)
	if err != nil {
		return domain.LegacyBundle{}, err
	}
	return normalizeLegacy(raw), nil
}

// Geocode returns up to 5 place suggestions for a partial name.
func (c *Client) Geocode(ctx context.Context, query string) ([]domain.Place, error) {
	params := url.Values{
		"q":     {query},
		"limit": {"5"},
	}
	var raw []geoEntry
	err := c.get(ctx, "/geo/1.0/direct", params, endpointGeocode, &domain.NoResultsError{Query: query}, &raw)
	if err != nil {
		return nil, err
	}
	return normalizePlaces(raw), nil
}

// ProbeKey performs a lightweight credential validity check. The first
// success is latched, so repeated probes cost nothing.
func (c *Client) ProbeKey(ctx context.Context) error {
	if _, absent := placeholderKeys[c.apiKey]; absent {
		return &domain.AuthError{Reason: "missing or placeholder API key"}
	}
	if c.probed.Load() {
		return nil
	}

	params := url.Values{"q": {"London"}}
	err := c.get(ctx, "/data/2.5/weather", params, endpointProbe, nil, &json.RawMessage{})
	if err != nil {
		return err
	}
	c.probed.Store(true)
	return nil
}

// CheckReadiness reports whether the credential has been validated
// against the provider.
func (c *Client) CheckReadiness(ctx context.Context) error {
	return c.ProbeKey(ctx)
}

// get issues one GET request and decodes the 2xx body into v. notFound,
// when non-nil, is the error returned for HTTP 404; other statuses follow
// the shared classification rules.
func (c *Client) get(ctx context.Context, path string, params url.Values, endpoint string, notFound error, v any) error {
	if _, absent := placeholderKeys[c.apiKey]; absent {
		return &domain.AuthError{Reason: "missing or placeholder API key"}
	}
	params.Set("appid", c.apiKey)

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return classifyTransportError(err)
	}
	defer resp.Body.Close()
	c.metrics.ProviderDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return c.classifyStatus(resp, endpoint, notFound)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	c.metrics.ProviderRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

func (c *Client) classifyStatus(resp *http.Response, endpoint string, notFound error) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	message := providerMessage(body)
	c.logger.Warn("provider request failed",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"message", message,
	)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &domain.AuthError{Reason: "rejected by provider"}
	case http.StatusNotFound:
		if notFound != nil {
			return notFound
		}
		return &domain.ProviderError{Status: resp.StatusCode, Message: message}
	case http.StatusTooManyRequests:
		return &domain.RateLimitError{}
	default:
		return &domain.ProviderError{Status: resp.StatusCode, Message: message}
	}
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.TimeoutError{Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TimeoutError{Err: err}
	}
	return &domain.NetworkError{Err: err}
}

// providerMessage extracts the "message" field of an OpenWeatherMap error
// body, falling back to the raw body.
func providerMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return string(body)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
