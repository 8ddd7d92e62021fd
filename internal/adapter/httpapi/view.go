package httpapi

import (
	"github.com/overcastlabs/weather-dash/internal/domain"
)

// weatherResponse is the wire shape of one resolved query. Temperatures
// are converted to the requested display unit at this boundary only;
// everything upstream stays Celsius.
type weatherResponse struct {
	Unit    domain.Unit              `json:"unit"`
	Current domain.CurrentConditions `json:"current"`
	Daily5  []domain.DailyForecast   `json:"daily5"`
	Daily10 []domain.DailyForecast   `json:"daily10"`
	Hourly  []domain.HourlyForecast  `json:"hourly"`
	Alerts  []domain.Alert           `json:"alerts"`
}

type suggestResponse struct {
	Suggestions []placeView `json:"suggestions"`
}

type placeView struct {
	Name        string             `json:"name"`
	State       string             `json:"state,omitempty"`
	Country     string             `json:"country"`
	DisplayName string             `json:"displayName"`
	Coord       domain.Coordinates `json:"coord"`
}

func newPlaceView(p domain.Place) placeView {
	return placeView{
		Name:        p.Name,
		State:       p.State,
		Country:     p.Country,
		DisplayName: p.DisplayName(),
		Coord:       p.Coord,
	}
}

func newWeatherResponse(report domain.WeatherReport, unit domain.Unit) weatherResponse {
	resp := weatherResponse{
		Unit:    unit,
		Current: report.Current,
		Daily5:  convertDaily(report.Daily5, unit),
		Daily10: convertDaily(report.Daily10, unit),
		Hourly:  convertHourly(report.Hourly, unit),
		Alerts:  report.Alerts,
	}
	resp.Current.Temperature = domain.ConvertTemp(resp.Current.Temperature, unit)
	resp.Current.FeelsLike = convertOptional(resp.Current.FeelsLike, unit)
	return resp
}

func convertDaily(entries []domain.DailyForecast, unit domain.Unit) []domain.DailyForecast {
	if unit == domain.UnitCelsius {
		return entries
	}
	out := make([]domain.DailyForecast, len(entries))
	for i, d := range entries {
		d.Temperature = domain.ConvertTemp(d.Temperature, unit)
		d.MinTemp = convertOptional(d.MinTemp, unit)
		d.MaxTemp = convertOptional(d.MaxTemp, unit)
		out[i] = d
	}
	return out
}

func convertHourly(entries []domain.HourlyForecast, unit domain.Unit) []domain.HourlyForecast {
	if unit == domain.UnitCelsius {
		return entries
	}
	out := make([]domain.HourlyForecast, len(entries))
	for i, h := range entries {
		h.Temperature = domain.ConvertTemp(h.Temperature, unit)
		out[i] = h
	}
	return out
}

func convertOptional(v *float64, unit domain.Unit) *float64 {
	if v == nil || unit == domain.UnitCelsius {
		return v
	}
	converted := domain.ConvertTemp(*v, unit)
	return &converted
}
