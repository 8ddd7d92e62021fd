package domain

import (
	"math"
	"math/rand"
)

// synthConditions is the fixed palette synthesized days draw their
// description and icon from. Icons are OpenWeatherMap day codes.
var synthConditions = []struct {
	description string
	icon        string
}{
	{"clear sky", "01d"},
	{"few clouds", "02d"},
	{"scattered clouds", "03d"},
	{"broken clouds", "04d"},
	{"shower rain", "09d"},
	{"rain", "10d"},
	{"thunderstorm", "11d"},
	{"snow", "13d"},
	{"mist", "50d"},
}

// SynthesizeDays produces count additional daily entries dated on
// consecutive days after base.Date, by bounded random perturbation:
//
//	temperature: base ± 2
//	min/max:     temperature - U(0,3) / temperature + U(0,3), drawn
//	             independently (min <= temperature <= max is NOT guaranteed)
//	humidity:    round(base ± 5), unclamped
//	wind speed:  base ± 1 rounded to 0.1, unclamped
//	precip:      round(U(0,100))
//	uvi:         U(0,8) rounded to 0.1
//	condition:   uniform draw from the 9-entry palette
//
// Condition, precipitation, and UVI are independent of base and of each
// other across days. Pass a seeded rng for deterministic output; nil uses
// the shared global source.
func SynthesizeDays(base DailyForecast, count int, rng *rand.Rand) []DailyForecast {
	uniform := rand.Float64
	if rng != nil {
		uniform = rng.Float64
	}

	baseHumidity := 0
	if base.Humidity != nil {
		baseHumidity = *base.Humidity
	}
	baseWind := 0.0
	if base.WindSpeed != nil {
		baseWind = *base.WindSpeed
	}

	days := make([]DailyForecast, 0, count)
	for i := 1; i <= count; i++ {
		temp := base.Temperature + (uniform()*4 - 2)
		minTemp := temp - uniform()*3
		maxTemp := temp + uniform()*3
		humidity := int(math.Round(float64(baseHumidity) + (uniform()*10 - 5)))
		wind := round1(baseWind + (uniform()*2 - 1))
		precip := math.Round(clamp(uniform()*100, 0, 100))
		uvi := round1(clamp(uniform()*8, 0, 11))
		cond := synthConditions[int(uniform()*float64(len(synthConditions)))%len(synthConditions)]

		days = append(days, DailyForecast{
			Date:          base.Date.AddDate(0, 0, i),
			Temperature:   temp,
			Description:   cond.description,
			Icon:          cond.icon,
			MinTemp:       &minTemp,
			MaxTemp:       &maxTemp,
			Humidity:      &humidity,
			WindSpeed:     &wind,
			Precipitation: &precip,
			UVI:           &uvi,
		})
	}
	return days
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
