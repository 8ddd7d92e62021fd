// Package geosuggest provides incremental place-name lookup for search
// boxes: debounced, credential-checked, and raced safely so only the
// latest query's results are delivered.
package geosuggest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/overcastlabs/weather-dash/internal/domain"
	"github.com/overcastlabs/weather-dash/internal/observability"
)

// minQueryLength is the input size below which no lookup is issued and
// any visible suggestions are cleared.
const minQueryLength = 2

// KeyProber validates the provider credential before the first real
// lookup. Placeholder credentials fail fast without a network call.
type KeyProber interface {
	ProbeKey(ctx context.Context) error
}

// Result is one settled suggestion lookup.
type Result struct {
	Query  string
	Places []domain.Place
	Err    error
}

// Suggester debounces place-name input and resolves it to suggestions.
// Each keystroke goes through Observe; only the latest query that
// survives the quiescence window reaches the geocoder, and out-of-order
// completions are dropped rather than overwriting newer results.
type Suggester struct {
	geocoder domain.Geocoder
	prober   KeyProber
	clock    clockwork.Clock
	debounce time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
	onResult func(Result)

	mu    sync.Mutex
	seq   uint64
	timer clockwork.Timer
}

// New creates a Suggester. onResult receives every settled lookup and
// every cleared query; it is called from lookup goroutines and must be
// safe for concurrent use.
func New(geocoder domain.Geocoder, prober KeyProber, clock clockwork.Clock, debounce time.Duration,
	logger *slog.Logger, metrics *observability.Metrics, onResult func(Result)) *Suggester {
	return &Suggester{
		geocoder: geocoder,
		prober:   prober,
		clock:    clock,
		debounce: debounce,
		logger:   logger,
		metrics:  metrics,
		onResult: onResult,
	}
}

// Observe registers one edit of the search input. Short queries clear
// suggestions immediately; anything else (re)starts the debounce window.
func (s *Suggester) Observe(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if utf8.RuneCountInString(query) < minQueryLength {
		s.onResult(Result{Query: query, Places: []domain.Place{}})
		return
	}

	token := s.seq
	s.timer = s.clock.AfterFunc(s.debounce, func() {
		s.run(ctx, token, query)
	})
}

// run performs the lookup for one debounced query and delivers the
// result unless a newer query superseded it meanwhile.
func (s *Suggester) run(ctx context.Context, token uint64, query string) {
	places, err := s.Lookup(ctx, query)

	s.mu.Lock()
	stale := token != s.seq
	s.mu.Unlock()
	if stale {
		return
	}
	s.onResult(Result{Query: query, Places: places, Err: err})
}

// Lookup resolves a query synchronously: credential probe first, then
// the geocode call. An empty provider response is reported as a
// domain.NoResultsError.
func (s *Suggester) Lookup(ctx context.Context, query string) ([]domain.Place, error) {
	if err := s.prober.ProbeKey(ctx); err != nil {
		s.metrics.GeocodeLookups.WithLabelValues("error").Inc()
		return nil, err
	}

	places, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		s.metrics.GeocodeLookups.WithLabelValues("error").Inc()
		s.logger.Warn("geocode lookup failed", "query", query, "error", err)
		return nil, err
	}
	if len(places) == 0 {
		s.metrics.GeocodeLookups.WithLabelValues("empty").Inc()
		return nil, &domain.NoResultsError{Query: query}
	}

	s.metrics.GeocodeLookups.WithLabelValues("success").Inc()
	return places, nil
}
