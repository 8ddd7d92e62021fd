package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func synthBase() DailyForecast {
	humidity := 60
	wind := 4.2
	return DailyForecast{
		Date:        time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC),
		Temperature: 18.5,
		Description: "scattered clouds",
		Icon:        "03d",
		Humidity:    &humidity,
		WindSpeed:   &wind,
	}
}

func TestSynthesizeDays_Count(t *testing.T) {
	days := SynthesizeDays(synthBase(), 5, rand.New(rand.NewSource(1)))
	assert.Len(t, days, 5)
}

func TestSynthesizeDays_ConsecutiveDates(t *testing.T) {
	base := synthBase()
	days := SynthesizeDays(base, 5, rand.New(rand.NewSource(1)))

	for i, d := range days {
		assert.Equal(t, base.Date.AddDate(0, 0, i+1), d.Date)
	}
}

func TestSynthesizeDays_TemperatureWithinBounds(t *testing.T) {
	base := synthBase()
	// Many draws to cover the distribution.
	days := SynthesizeDays(base, 500, rand.New(rand.NewSource(42)))

	for _, d := range days {
		assert.GreaterOrEqual(t, d.Temperature, base.Temperature-2)
		assert.LessOrEqual(t, d.Temperature, base.Temperature+2)
	}
}

func TestSynthesizeDays_OffsetsAndRanges(t *testing.T) {
	base := synthBase()
	days := SynthesizeDays(base, 200, rand.New(rand.NewSource(7)))

	for _, d := range days {
		require.NotNil(t, d.MinTemp)
		require.NotNil(t, d.MaxTemp)
		require.NotNil(t, d.Precipitation)
		require.NotNil(t, d.UVI)
		// Offsets are non-negative by construction.
		assert.LessOrEqual(t, *d.MinTemp, d.Temperature)
		assert.GreaterOrEqual(t, *d.MaxTemp, d.Temperature)
		assert.GreaterOrEqual(t, *d.Precipitation, 0.0)
		assert.LessOrEqual(t, *d.Precipitation, 100.0)
		assert.GreaterOrEqual(t, *d.UVI, 0.0)
		assert.LessOrEqual(t, *d.UVI, 8.0)
	}
}

func TestSynthesizeDays_ConditionFromPalette(t *testing.T) {
	known := make(map[string]bool, len(synthConditions))
	for _, c := range synthConditions {
		known[c.description] = true
	}

	days := SynthesizeDays(synthBase(), 100, rand.New(rand.NewSource(3)))
	for _, d := range days {
		assert.True(t, known[d.Description], "description %q not in palette", d.Description)
		assert.NotEmpty(t, d.Icon)
	}
}

func TestSynthesizeDays_Deterministic(t *testing.T) {
	a := SynthesizeDays(synthBase(), 5, rand.New(rand.NewSource(9)))
	b := SynthesizeDays(synthBase(), 5, rand.New(rand.NewSource(9)))
	assert.Equal(t, a, b)
}

func TestSynthesizeDays_NilOptionalBaseFields(t *testing.T) {
	base := synthBase()
	base.Humidity = nil
	base.WindSpeed = nil

	days := SynthesizeDays(base, 3, rand.New(rand.NewSource(1)))
	require.Len(t, days, 3)
	for _, d := range days {
		// Perturbation around zero when the base carries no value.
		require.NotNil(t, d.Humidity)
		require.NotNil(t, d.WindSpeed)
		assert.LessOrEqual(t, *d.WindSpeed, 1.0)
		assert.GreaterOrEqual(t, *d.WindSpeed, -1.0)
	}
}
