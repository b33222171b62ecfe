package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindSpeedMetric(t *testing.T) {
	// 4.12 m/s -> 14.832 km/h -> 15; precision is lost only at the final
	// rounding step.
	assert.Equal(t, 15, WindSpeed(4.12, Metric))
	assert.Equal(t, 0, WindSpeed(0, Metric))
	assert.Equal(t, 36, WindSpeed(10, Metric))
}

func TestWindSpeedImperial(t *testing.T) {
	// Upstream already reports mph under imperial; no factor applied.
	assert.Equal(t, 4, WindSpeed(4.12, Imperial))
	assert.Equal(t, 10, WindSpeed(10.4, Imperial))
}

func TestVisibilityKm(t *testing.T) {
	m := 8500
	assert.Equal(t, 9, VisibilityKm(&m))

	zero := 0
	assert.Equal(t, 0, VisibilityKm(&zero))

	// Absent visibility defaults to 10 km.
	assert.Equal(t, 10, VisibilityKm(nil))
}

func TestCompass(t *testing.T) {
	cases := []struct {
		deg  int
		want string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{360, "N"},
		{350, "N"},
		// Each point owns a 45 degree band centered on its heading, so
		// 200 still rounds to S and SW starts at 203.
		{200, "S"},
		{202, "S"},
		{203, "SW"},
		{247, "SW"},
		{248, "W"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Compass(tc.deg), "degrees=%d", tc.deg)
	}
}

func TestSystemValid(t *testing.T) {
	assert.True(t, Metric.Valid())
	assert.True(t, Imperial.Valid())
	assert.False(t, System("kelvin").Valid())
	assert.False(t, System("").Valid())
}
