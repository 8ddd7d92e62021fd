// Package httpapi exposes the weather pipeline over HTTP: the weather
// query itself, place suggestions, preferences, map tile URLs, and the
// operational health endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/overcastlabs/weather-dash/internal/domain"
	"github.com/overcastlabs/weather-dash/internal/forecast"
)

// WeatherResolver runs the full forecast pipeline for a location.
type WeatherResolver interface {
	Resolve(ctx context.Context, loc forecast.LocationRef) (domain.WeatherReport, error)
}

// SuggestionLookup resolves a partial place name to suggestions.
type SuggestionLookup interface {
	Lookup(ctx context.Context, query string) ([]domain.Place, error)
}

// PreferenceStore persists the display preferences blob.
type PreferenceStore interface {
	Load(ctx context.Context) domain.Preferences
	Save(ctx context.Context, p domain.Preferences) error
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// tileLayers are the OpenWeatherMap tile overlays the map view may request.
var tileLayers = map[string]bool{
	"temp_new":          true,
	"precipitation_new": true,
	"clouds_new":        true,
	"wind_new":          true,
}

// Server routes the public API and the health endpoints.
type Server struct {
	httpServer *http.Server
	resolver   WeatherResolver
	state      *forecast.State
	suggest    SuggestionLookup
	prefs      PreferenceStore
	apiKey     string
	logger     *slog.Logger
}

// NewServer wires all routes onto one mux.
func NewServer(addr string, resolver WeatherResolver, state *forecast.State, suggest SuggestionLookup,
	prefs PreferenceStore, ready ReadinessChecker, apiKey string, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		resolver: resolver,
		state:    state,
		suggest:  suggest,
		prefs:    prefs,
		apiKey:   apiKey,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/weather", s.handleWeather)
	mux.HandleFunc("GET /v1/suggest", s.handleSuggest)
	mux.HandleFunc("GET /v1/preferences", s.handleGetPreferences)
	mux.HandleFunc("PUT /v1/preferences", s.handlePutPreferences)
	mux.HandleFunc("GET /v1/map/tile-url", s.handleTileURL)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleWeather resolves ?q=<name> or ?lat=&lon= to a full report.
// ?units= selects the display temperature unit; storage stays Celsius.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	loc, err := parseLocation(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit, err := domain.ParseUnit(r.URL.Query().Get("units"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	token := s.state.Begin()
	report, err := s.resolver.Resolve(r.Context(), loc)
	if err != nil {
		s.state.ApplyError(token, err)
		s.writeClassifiedError(w, err)
		return
	}
	s.state.ApplyResult(token, report)

	writeJSON(w, http.StatusOK, newWeatherResponse(report, unit))
}

func parseLocation(r *http.Request) (forecast.LocationRef, error) {
	q := r.URL.Query()
	name := q.Get("q")
	latStr, lonStr := q.Get("lat"), q.Get("lon")

	if name != "" {
		return forecast.ByName(name), nil
	}
	if latStr == "" || lonStr == "" {
		return forecast.LocationRef{}, errors.New("either q or both lat and lon are required")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return forecast.LocationRef{}, fmt.Errorf("invalid lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return forecast.LocationRef{}, fmt.Errorf("invalid lon %q", lonStr)
	}
	return forecast.ByCoords(domain.Coordinates{Lat: lat, Lon: lon}), nil
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, errors.New("q is required"))
		return
	}

	places, err := s.suggest.Lookup(r.Context(), query)
	if err != nil {
		var noResults *domain.NoResultsError
		if errors.As(err, &noResults) {
			// An empty suggestion list is a normal outcome for the
			// search box, not a failure.
			writeJSON(w, http.StatusOK, suggestResponse{Suggestions: []placeView{}})
			return
		}
		s.writeClassifiedError(w, err)
		return
	}

	views := make([]placeView, 0, len(places))
	for _, p := range places {
		views = append(views, newPlaceView(p))
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: views})
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.prefs.Load(r.Context()))
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var p domain.Preferences
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid preferences body: %w", err))
		return
	}
	unit, err := domain.ParseUnit(string(p.Unit))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p.Unit = unit

	if err := s.prefs.Save(r.Context(), p); err != nil {
		s.logger.Error("saving preferences failed", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("saving preferences failed"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleTileURL(w http.ResponseWriter, r *http.Request) {
	layer := r.URL.Query().Get("layer")
	if !tileLayers[layer] {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown tile layer %q", layer))
		return
	}
	url := fmt.Sprintf("https://tile.openweathermap.org/map/%s/{z}/{x}/{y}.png?appid=%s", layer, s.apiKey)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// writeClassifiedError maps the domain error taxonomy onto HTTP status
// codes. Provider-side failures surface as gateway errors.
func (s *Server) writeClassifiedError(w http.ResponseWriter, err error) {
	var (
		authErr  *domain.AuthError
		notFound *domain.LocationNotFoundError
		noRes    *domain.NoResultsError
		rateLim  *domain.RateLimitError
		netErr   *domain.NetworkError
		timeout  *domain.TimeoutError
		provider *domain.ProviderError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &noRes):
		writeError(w, http.StatusNotFound, err)
	case errors.As(err, &rateLim):
		writeError(w, http.StatusTooManyRequests, err)
	case errors.As(err, &authErr):
		writeError(w, http.StatusBadGateway, err)
	case errors.As(err, &timeout), errors.As(err, &netErr):
		writeError(w, http.StatusGatewayTimeout, err)
	case errors.As(err, &provider):
		writeError(w, http.StatusBadGateway, err)
	default:
		s.logger.Error("unclassified error", "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
