package domain

import "time"

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CurrentConditions is an immutable snapshot of the weather at a resolved
// location. A new successful query replaces it wholesale; it is never
// partially updated. Temperature fields are degrees Celsius.
type CurrentConditions struct {
	Location    string      `json:"location"`
	Temperature float64     `json:"temperature"`
	Description string      `json:"description"`
	Humidity    int         `json:"humidity"`
	WindSpeed   float64     `json:"windSpeed"`
	Icon        string      `json:"icon"`
	FeelsLike   *float64    `json:"feelsLike,omitempty"`
	Pressure    *int        `json:"pressure,omitempty"`
	Visibility  *int        `json:"visibility,omitempty"`
	Sunrise     *int64      `json:"sunrise,omitempty"`
	Sunset      *int64      `json:"sunset,omitempty"`
	Coord       Coordinates `json:"coord"`
}

// DailyForecast is one day of the daily series. Fields beyond
// Date/Temperature/Description/Icon are optional because the legacy
// source cannot supply all of them.
type DailyForecast struct {
	Date          time.Time `json:"date"`
	Temperature   float64   `json:"temperature"`
	Description   string    `json:"description"`
	Icon          string    `json:"icon"`
	MinTemp       *float64  `json:"minTemp,omitempty"`
	MaxTemp       *float64  `json:"maxTemp,omitempty"`
	Humidity      *int      `json:"humidity,omitempty"`
	WindSpeed     *float64  `json:"windSpeed,omitempty"`
	Precipitation *float64  `json:"precipitation,omitempty"` // percent, [0,100]
	UVI           *float64  `json:"uvi,omitempty"`
}

// HourlyForecast is one point of the hourly series. On the legacy path
// points are 3 hours apart, not hourly.
type HourlyForecast struct {
	Time          time.Time `json:"time"`
	Temperature   float64   `json:"temperature"`
	Icon          string    `json:"icon"`
	Description   string    `json:"description"`
	Precipitation *float64  `json:"precipitation,omitempty"`
	WindSpeed     *float64  `json:"windSpeed,omitempty"`
}

// Alert is a severe-weather alert from the unified source. Start and End
// are epoch seconds as reported by the provider.
type Alert struct {
	SenderName  string   `json:"senderName"`
	Event       string   `json:"event"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Place is a geocoding suggestion.
type Place struct {
	Name    string      `json:"name"`
	State   string      `json:"state,omitempty"`
	Country string      `json:"country"`
	Coord   Coordinates `json:"coord"`
}

// DisplayName renders a Place the way it appears in the search box,
// e.g. "Austin, TX, US" or "Paris, FR".
func (p Place) DisplayName() string {
	if p.State != "" {
		return p.Name + ", " + p.State + ", " + p.Country
	}
	return p.Name + ", " + p.Country
}

// ForecastBundle is the normalized output of the unified source: up to 10
// real daily entries, up to 24 hourly entries, and classified alerts.
type ForecastBundle struct {
	Daily  []DailyForecast
	Hourly []HourlyForecast
	Alerts []Alert
}

// LegacyBundle is the normalized output of the legacy 3-hourly source:
// up to 5 sampled daily entries and 8 three-hourly points. The legacy
// source carries no alert data.
type LegacyBundle struct {
	Daily  []DailyForecast
	Hourly []HourlyForecast
}

// WeatherReport is the assembled result of one location query. Daily5 is
// always a prefix of Daily10; on the fallback path entries beyond the
// real days are synthesized.
type WeatherReport struct {
	Current CurrentConditions `json:"current"`
	Daily5  []DailyForecast   `json:"daily5"`
	Daily10 []DailyForecast   `json:"daily10"`
	Hourly  []HourlyForecast  `json:"hourly"`
	Alerts  []Alert           `json:"alerts"`
}

// Preferences is the user preference blob persisted by the prefs store.
type Preferences struct {
	Unit     Unit `json:"unit"`
	DarkMode bool `json:"darkMode"`
}

// DefaultPreferences returns the preferences used when nothing has been
// saved yet or the stored blob is malformed.
func DefaultPreferences() Preferences {
	return Preferences{Unit: UnitCelsius, DarkMode: false}
}
