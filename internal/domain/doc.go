// Package domain models the canonical weather records served by the
// dashboard, independent of which upstream endpoint produced them.
//
// # Data Sources
//
// All data originates from the OpenWeatherMap REST API. Two forecast
// sources feed the same canonical model:
//
//	Unified (One Call): /data/2.5/onecall returns daily, hourly, and
//	active alert data in a single response. This is the preferred source
//	and yields up to 10 real daily entries and 24 true hourly entries.
//
//	Legacy (3-hourly): /data/2.5/forecast returns fixed 3-hour-resolution
//	points covering 5 days, with no alert data. Used only when the unified
//	endpoint is unavailable (it is disabled on some API tiers). A "daily"
//	series is derived by sampling every 8th point (3h x 8 = 24h spacing),
//	so min/max temperatures on this path are single-sample approximations,
//	not true daily extrema. The "hourly" series is the first 8 points —
//	the next 24 hours at 3-hour resolution.
//
// # Canonical Conventions
//
// Temperatures are stored in degrees Celsius, always. Unit conversion
// happens exclusively at formatting time (see [FormatTemp]) and is never
// persisted back into a record.
//
// Instants are time.Time in UTC. The unified source supplies epoch
// seconds and the legacy source supplies a "2006-01-02 15:04:05" string;
// both are normalized at the adapter boundary.
//
// Precipitation probability is a percentage in [0,100], rescaled from the
// provider's [0,1] fraction.
//
// # Severity Classification
//
// Alert severity is derived from the alert's free-text description via
// case-insensitive keyword matching, checked in priority order:
//
//	extreme, emergency, severe, warning  -> severe
//	watch, advisory, moderate            -> moderate
//	anything else                        -> minor
//
// First matching tier wins; there is no combination logic. See
// [ClassifySeverity].
//
// # Synthesized Forecast Days
//
// When only the legacy source is available, days 6-10 of the extended
// forecast are synthesized by bounded random perturbation around the last
// real day. This is a placeholder simulation, not a forecast model; it
// exists so the 10-day view always has 10 entries. Synthesized humidity
// and wind speed are not clamped to physical ranges, and min/max
// temperature ordering is not guaranteed. See [SynthesizeDays].
package domain
