package domain

import (
	"fmt"
	"math"
)

// Unit is a display temperature unit. Canonical storage is always Celsius.
type Unit string

const (
	UnitCelsius    Unit = "celsius"
	UnitFahrenheit Unit = "fahrenheit"
)

// ParseUnit validates a unit string, defaulting to Celsius for empty input.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case "":
		return UnitCelsius, nil
	case UnitCelsius, UnitFahrenheit:
		return Unit(s), nil
	default:
		return "", fmt.Errorf("unknown temperature unit %q", s)
	}
}

// CelsiusToFahrenheit converts a Celsius value to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FahrenheitToCelsius converts a Fahrenheit value to Celsius.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// ConvertTemp converts a stored Celsius value to the requested display
// unit without rounding. The input is never mutated.
func ConvertTemp(celsius float64, unit Unit) float64 {
	if unit == UnitFahrenheit {
		return CelsiusToFahrenheit(celsius)
	}
	return celsius
}

// FormatTemp renders a stored Celsius value for display in the requested
// unit, rounded to the nearest whole degree, e.g. "21°C" or "70°F".
func FormatTemp(celsius float64, unit Unit) string {
	v := math.Round(ConvertTemp(celsius, unit))
	suffix := "C"
	if unit == UnitFahrenheit {
		suffix = "F"
	}
	return fmt.Sprintf("%d°%s", int(v), suffix)
}
