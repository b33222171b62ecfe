package airquality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	// Boundary values map to the lower tier.
	cases := []struct {
		aqi  float64
		want string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{101, "Unhealthy for Sensitive Groups"},
		{150, "Unhealthy for Sensitive Groups"},
		{151, "Unhealthy"},
		{200, "Unhealthy"},
		{201, "Hazardous"},
		{500, "Hazardous"},
		{9999, "Hazardous"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.aqi).Level, "aqi=%v", tc.aqi)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := -1
	for aqi := 0.0; aqi <= 600; aqi++ {
		tier := Classify(aqi).Tier
		assert.GreaterOrEqual(t, tier, prev, "aqi=%v", aqi)
		prev = tier
	}
}

func TestFromUpstreamScale(t *testing.T) {
	assert.Equal(t, 50, FromUpstreamScale(1))
	assert.Equal(t, 150, FromUpstreamScale(3))
	assert.Equal(t, 250, FromUpstreamScale(5))
}
