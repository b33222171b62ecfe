// Package units holds the pure conversion helpers shared by the
// normalization pipeline. All functions are stateless.
package units

import "math"

// System is the display unit system forwarded verbatim to the upstream API.
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// Valid reports whether s is one of the two supported unit systems.
func (s System) Valid() bool {
	return s == Metric || s == Imperial
}

const (
	// MpsToKmh converts meters per second to kilometers per hour.
	MpsToKmh = 3.6

	// DefaultVisibilityMeters is assumed when the upstream omits visibility.
	DefaultVisibilityMeters = 10000
)

// Round rounds to the nearest whole number. Temperatures and wind speeds
// are always displayed as whole values.
func Round(v float64) int {
	return int(math.Round(v))
}

// WindSpeed converts an upstream wind speed into the display value for the
// given system. Under metric the upstream reports m/s, which is converted to
// km/h; under imperial the upstream already reports mph, so the value is only
// rounded.
func WindSpeed(raw float64, sys System) int {
	if sys == Imperial {
		return Round(raw)
	}
	return Round(raw * MpsToKmh)
}

// VisibilityKm converts an upstream visibility in meters to whole kilometers.
// A nil pointer means the field was absent, in which case 10 km is assumed.
func VisibilityKm(meters *int) int {
	m := DefaultVisibilityMeters
	if meters != nil {
		m = *meters
	}
	return Round(float64(m) / 1000)
}

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Compass maps a wind direction in degrees to an 8-point compass label.
func Compass(degrees int) string {
	idx := Round(float64(degrees)/45) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}
