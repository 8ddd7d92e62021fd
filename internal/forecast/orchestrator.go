// Package forecast orchestrates the current-conditions fetch, the
// unified-to-legacy forecast fallback, and extended-day synthesis into
// a single weather report per query.
package forecast

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/overcastlabs/weather-dash/internal/domain"
	"github.com/overcastlabs/weather-dash/internal/observability"
)

// Provider supplies raw weather data already normalized to canonical
// records.
type Provider interface {
	CurrentByName(ctx context.Context, name string) (domain.CurrentConditions, error)
	CurrentByCoords(ctx context.Context, coord domain.Coordinates) (domain.CurrentConditions, error)
	OneCall(ctx context.Context, coord domain.Coordinates) (domain.ForecastBundle, error)
	LegacyForecast(ctx context.Context, coord domain.Coordinates) (domain.LegacyBundle, error)
}

// LocationRef identifies a query target: either a free-text place name
// or an exact coordinate pair.
type LocationRef struct {
	Name  string
	Coord *domain.Coordinates
}

// ByName builds a name-based location reference.
func ByName(name string) LocationRef {
	return LocationRef{Name: name}
}

// ByCoords builds a coordinate-based location reference.
func ByCoords(coord domain.Coordinates) LocationRef {
	return LocationRef{Coord: &coord}
}

const (
	reportDays    = 10
	realDailyDays = 5
)

// Orchestrator drives the fetch pipeline. Both entry points (name or
// coordinates) share the same downstream path: only the first call
// differs, every later call uses the coordinates resolved from it.
type Orchestrator struct {
	provider Provider
	logger   *slog.Logger
	metrics  *observability.Metrics
	rng      *rand.Rand
}

// New creates an Orchestrator. rng seeds day synthesis; pass nil to use
// the global source.
func New(provider Provider, logger *slog.Logger, metrics *observability.Metrics, rng *rand.Rand) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		logger:   logger,
		metrics:  metrics,
		rng:      rng,
	}
}

// Resolve produces a full weather report for the location. The
// current-conditions call is mandatory and its error aborts the query.
// The unified forecast is optional: on failure the legacy source fills
// in, with days 6-10 synthesized from the last real day.
func (o *Orchestrator) Resolve(ctx context.Context, loc LocationRef) (domain.WeatherReport, error) {
	current, err := o.fetchCurrent(ctx, loc)
	if err != nil {
		o.metrics.Queries.WithLabelValues("error").Inc()
		return domain.WeatherReport{}, err
	}
	coord := current.Coord

	bundle, err := o.provider.OneCall(ctx, coord)
	if err == nil {
		o.metrics.Queries.WithLabelValues("unified").Inc()
		return assembleUnified(current, bundle), nil
	}
	// Silent fallback: the unified endpoint may be disabled for the
	// API tier, so its failure never surfaces to the caller.
	o.logger.Warn("unified forecast unavailable, falling back to legacy source",
		"lat", coord.Lat, "lon", coord.Lon, "error", err)
	o.metrics.ForecastFallback.Inc()

	legacy, err := o.provider.LegacyForecast(ctx, coord)
	if err != nil {
		o.metrics.Queries.WithLabelValues("error").Inc()
		return domain.WeatherReport{}, err
	}

	o.metrics.Queries.WithLabelValues("legacy").Inc()
	return o.assembleLegacy(current, legacy), nil
}

func (o *Orchestrator) fetchCurrent(ctx context.Context, loc LocationRef) (domain.CurrentConditions, error) {
	if loc.Coord != nil {
		return o.provider.CurrentByCoords(ctx, *loc.Coord)
	}
	return o.provider.CurrentByName(ctx, loc.Name)
}

func assembleUnified(current domain.CurrentConditions, bundle domain.ForecastBundle) domain.WeatherReport {
	daily10 := bundle.Daily
	if len(daily10) > reportDays {
		daily10 = daily10[:reportDays]
	}
	daily5 := daily10
	if len(daily5) > realDailyDays {
		daily5 = daily5[:realDailyDays]
	}
	alerts := bundle.Alerts
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	return domain.WeatherReport{
		Current: current,
		Daily5:  daily5,
		Daily10: daily10,
		Hourly:  bundle.Hourly,
		Alerts:  alerts,
	}
}

func (o *Orchestrator) assembleLegacy(current domain.CurrentConditions, legacy domain.LegacyBundle) domain.WeatherReport {
	daily5 := legacy.Daily
	if len(daily5) > realDailyDays {
		daily5 = daily5[:realDailyDays]
	}

	daily10 := make([]domain.DailyForecast, 0, reportDays)
	daily10 = append(daily10, daily5...)
	if missing := reportDays - len(daily10); missing > 0 && len(daily5) > 0 {
		base := daily5[len(daily5)-1]
		synthesized := domain.SynthesizeDays(base, missing, o.rng)
		o.metrics.SynthesizedDays.Add(float64(len(synthesized)))
		daily10 = append(daily10, synthesized...)
	}

	// The legacy source carries no alert data.
	return domain.WeatherReport{
		Current: current,
		Daily5:  daily5,
		Daily10: daily10,
		Hourly:  legacy.Hourly,
		Alerts:  []domain.Alert{},
	}
}
