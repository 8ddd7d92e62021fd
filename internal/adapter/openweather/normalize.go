package openweather

import (
	"time"

	"github.com/overcastlabs/weather-dash/internal/domain"
)

const (
	maxDailyEntries  = 10
	maxHourlyEntries = 24

	// The legacy source returns 3-hour points; every 8th point is 24h
	// apart, and the first 8 points cover the next 24 hours.
	legacyDailyStride  = 8
	maxLegacyDaily     = 5
	legacyHourlyPoints = 8

	legacyTimeLayout = "2006-01-02 15:04:05"
)

// Raw OpenWeatherMap response shapes. Only the fields the pipeline
// consumes are declared.

type weatherItem struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64  `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  int      `json:"humidity"`
		Pressure  *int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather    []weatherItem `json:"weather"`
	Visibility *int          `json:"visibility"`
	Sys        struct {
		Sunrise *int64 `json:"sunrise"`
		Sunset  *int64 `json:"sunset"`
	} `json:"sys"`
}

type oneCallDaily struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Day float64 `json:"day"`
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temp"`
	Weather   []weatherItem `json:"weather"`
	Humidity  int           `json:"humidity"`
	WindSpeed float64       `json:"wind_speed"`
	Pop       float64       `json:"pop"`
	UVI       float64       `json:"uvi"`
}

type oneCallHourly struct {
	Dt        int64         `json:"dt"`
	Temp      float64       `json:"temp"`
	Weather   []weatherItem `json:"weather"`
	Pop       float64       `json:"pop"`
	WindSpeed float64       `json:"wind_speed"`
}

type oneCallAlert struct {
	SenderName  string `json:"sender_name"`
	Event       string `json:"event"`
	Start       int64  `json:"start"`
	End         int64  `json:"end"`
	Description string `json:"description"`
}

type oneCallResponse struct {
	Daily  []oneCallDaily  `json:"daily"`
	Hourly []oneCallHourly `json:"hourly"`
	Alerts []oneCallAlert  `json:"alerts"`
}

type legacyPoint3h struct {
	Dt    int64  `json:"dt"`
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []weatherItem `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop float64 `json:"pop"`
}

type legacyResponse struct {
	List []legacyPoint3h `json:"list"`
}

type geoEntry struct {
	Name    string  `json:"name"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// normalizeCurrent maps a current-weather response to the canonical
// snapshot. Absent optional fields stay nil.
func normalizeCurrent(raw currentResponse) domain.CurrentConditions {
	desc, icon := firstWeather(raw.Weather)
	return domain.CurrentConditions{
		Location:    raw.Name,
		Temperature: raw.Main.Temp,
		Description: desc,
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
		Icon:        icon,
		FeelsLike:   raw.Main.FeelsLike,
		Pressure:    raw.Main.Pressure,
		Visibility:  raw.Visibility,
		Sunrise:     raw.Sys.Sunrise,
		Sunset:      raw.Sys.Sunset,
		Coord:       domain.Coordinates{Lat: raw.Coord.Lat, Lon: raw.Coord.Lon},
	}
}

// normalizeOneCall maps a unified-forecast response: up to 10 daily and
// 24 hourly entries, alerts run through the severity classifier.
func normalizeOneCall(raw oneCallResponse) domain.ForecastBundle {
	daily := make([]domain.DailyForecast, 0, maxDailyEntries)
	for _, d := range raw.Daily {
		if len(daily) == maxDailyEntries {
			break
		}
		desc, icon := firstWeather(d.Weather)
		minTemp, maxTemp := d.Temp.Min, d.Temp.Max
		humidity := d.Humidity
		wind := d.WindSpeed
		precip := d.Pop * 100
		uvi := d.UVI
		daily = append(daily, domain.DailyForecast{
			Date:          time.Unix(d.Dt, 0).UTC(),
			Temperature:   d.Temp.Day,
			Description:   desc,
			Icon:          icon,
			MinTemp:       &minTemp,
			MaxTemp:       &maxTemp,
			Humidity:      &humidity,
			WindSpeed:     &wind,
			Precipitation: &precip,
			UVI:           &uvi,
		})
	}

	hourly := make([]domain.HourlyForecast, 0, maxHourlyEntries)
	for _, h := range raw.Hourly {
		if len(hourly) == maxHourlyEntries {
			break
		}
		desc, icon := firstWeather(h.Weather)
		precip := h.Pop * 100
		wind := h.WindSpeed
		hourly = append(hourly, domain.HourlyForecast{
			Time:          time.Unix(h.Dt, 0).UTC(),
			Temperature:   h.Temp,
			Icon:          icon,
			Description:   desc,
			Precipitation: &precip,
			WindSpeed:     &wind,
		})
	}

	alerts := make([]domain.Alert, 0, len(raw.Alerts))
	for _, a := range raw.Alerts {
		alerts = append(alerts, domain.Alert{
			SenderName:  a.SenderName,
			Event:       a.Event,
			Start:       a.Start,
			End:         a.End,
			Description: a.Description,
			Severity:    domain.ClassifySeverity(a.Description),
		})
	}

	return domain.ForecastBundle{Daily: daily, Hourly: hourly, Alerts: alerts}
}

// normalizeLegacy derives a daily series by sampling every 8th 3-hour
// point (cap 5) and an hourly series from the first 8 points. Min/max
// temperatures are single-sample values, not daily extrema.
func normalizeLegacy(raw legacyResponse) domain.LegacyBundle {
	daily := make([]domain.DailyForecast, 0, maxLegacyDaily)
	for i := 0; i < len(raw.List) && len(daily) < maxLegacyDaily; i += legacyDailyStride {
		p := raw.List[i]
		desc, icon := firstWeather(p.Weather)
		minTemp, maxTemp := p.Main.TempMin, p.Main.TempMax
		humidity := p.Main.Humidity
		wind := p.Wind.Speed
		daily = append(daily, domain.DailyForecast{
			Date:          parseLegacyInstant(p.DtTxt, p.Dt),
			Temperature:   p.Main.Temp,
			Description:   desc,
			Icon:          icon,
			MinTemp:       &minTemp,
			MaxTemp:       &maxTemp,
			Humidity:      &humidity,
			WindSpeed:     &wind,
			Precipitation: legacyPop(p.Pop),
		})
	}

	n := min(legacyHourlyPoints, len(raw.List))
	hourly := make([]domain.HourlyForecast, 0, n)
	for _, p := range raw.List[:n] {
		desc, icon := firstWeather(p.Weather)
		wind := p.Wind.Speed
		hourly = append(hourly, domain.HourlyForecast{
			Time:          parseLegacyInstant(p.DtTxt, p.Dt),
			Temperature:   p.Main.Temp,
			Icon:          icon,
			Description:   desc,
			Precipitation: legacyPop(p.Pop),
			WindSpeed:     &wind,
		})
	}

	return domain.LegacyBundle{Daily: daily, Hourly: hourly}
}

func normalizePlaces(raw []geoEntry) []domain.Place {
	places := make([]domain.Place, 0, len(raw))
	for _, e := range raw {
		places = append(places, domain.Place{
			Name:    e.Name,
			State:   e.State,
			Country: e.Country,
			Coord:   domain.Coordinates{Lat: e.Lat, Lon: e.Lon},
		})
	}
	return places
}

func firstWeather(items []weatherItem) (description, icon string) {
	if len(items) == 0 {
		return "", ""
	}
	return items[0].Description, items[0].Icon
}

// parseLegacyInstant normalizes the legacy source's formatted timestamp
// to UTC, falling back to the epoch field when the string is malformed.
func parseLegacyInstant(dtTxt string, dt int64) time.Time {
	if t, err := time.Parse(legacyTimeLayout, dtTxt); err == nil {
		return t.UTC()
	}
	return time.Unix(dt, 0).UTC()
}

// legacyPop rescales precipitation probability. A zero value is
// indistinguishable from absent in the legacy payload and is treated as
// absent.
func legacyPop(pop float64) *float64 {
	if pop == 0 {
		return nil
	}
	pct := pop * 100
	return &pct
}
