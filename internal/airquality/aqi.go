// Package airquality classifies air-quality index values into severity tiers.
package airquality

// Classification pairs the textual AQI level with its numeric severity tier.
// Tiers increase with severity, starting at 0 for Good.
type Classification struct {
	Level string `json:"level"`
	Tier  int    `json:"tier"`
}

// US EPA style breakpoints. Boundary values belong to the lower tier.
var breakpoints = []struct {
	max   float64
	level string
}{
	{50, "Good"},
	{100, "Moderate"},
	{150, "Unhealthy for Sensitive Groups"},
	{200, "Unhealthy"},
}

// Classify maps an AQI value to its severity classification. The function is
// total: anything above the highest breakpoint is Hazardous.
func Classify(aqi float64) Classification {
	for tier, bp := range breakpoints {
		if aqi <= bp.max {
			return Classification{Level: bp.level, Tier: tier}
		}
	}
	return Classification{Level: "Hazardous", Tier: len(breakpoints)}
}

// FromUpstreamScale converts the upstream 1-5 pollution index to the
// approximate 0-250 scale used for classification.
func FromUpstreamScale(index int) int {
	return index * 50
}
