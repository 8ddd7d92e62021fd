package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCelsiusToFahrenheit(t *testing.T) {
	assert.Equal(t, 32.0, CelsiusToFahrenheit(0))
	assert.Equal(t, 212.0, CelsiusToFahrenheit(100))
	assert.Equal(t, -40.0, CelsiusToFahrenheit(-40))
}

func TestConvertTemp_RoundTripPreservesCelsius(t *testing.T) {
	for _, c := range []float64{-40, -0.5, 0, 17.3, 21.55, 100} {
		back := FahrenheitToCelsius(CelsiusToFahrenheit(c))
		assert.InDelta(t, c, back, 1e-9, "round trip must not alter the stored value")
	}
}

func TestFormatTemp(t *testing.T) {
	tests := []struct {
		celsius float64
		unit    Unit
		want    string
	}{
		{21.4, UnitCelsius, "21°C"},
		{21.5, UnitCelsius, "22°C"},
		{0, UnitFahrenheit, "32°F"},
		{21.0, UnitFahrenheit, "70°F"},
		{-5.4, UnitCelsius, "-5°C"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTemp(tt.celsius, tt.unit))
	}
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit("")
	require.NoError(t, err)
	assert.Equal(t, UnitCelsius, u)

	u, err = ParseUnit("fahrenheit")
	require.NoError(t, err)
	assert.Equal(t, UnitFahrenheit, u)

	_, err = ParseUnit("kelvin")
	require.Error(t, err)
}
