// Package uvindex derives an approximate UV index from cloud cover and time
// of day. No dedicated UV data source is consumed: the result is a heuristic
// estimate and is labeled as such wherever it is displayed.
package uvindex

import "math"

// Estimate is a heuristic UV index. Value is 0-10; Level is the matching
// entry of the severity ladder.
type Estimate struct {
	Value int    `json:"value"`
	Level string `json:"level"`
}

// Severity ladder indexed by the rounded UV value.
var levels = [11]string{
	"Low", "Low", "Low",
	"Moderate", "Moderate", "Moderate",
	"High", "High",
	"Very High", "Very High",
	"Extreme",
}

// FromConditions estimates the UV index for the given cloud cover percentage
// (0-100) and local hour (0-23). During core daylight hours under a clear sky
// the estimate starts near the top of the scale and drops with cloud cover;
// during broader daylight hours it uses a gentler slope; outside daylight it
// is zero.
func FromConditions(cloudCoverPct int, localHour int, clearSky bool) Estimate {
	cloud := float64(cloudCoverPct)

	var value float64
	switch {
	case localHour >= 10 && localHour <= 16 && clearSky:
		value = math.Min(10, math.Max(1, 11-cloud/10))
	case localHour >= 8 && localHour <= 18:
		value = math.Max(1, 6-cloud/20)
	}

	rounded := int(math.Round(value))
	idx := rounded
	if idx > 10 {
		idx = 10
	}
	if idx < 0 {
		idx = 0
	}

	return Estimate{Value: rounded, Level: levels[idx]}
}
