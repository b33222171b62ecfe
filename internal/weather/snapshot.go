package weather

import (
	"time"

	"github.com/skycast/skycast/internal/airquality"
	"github.com/skycast/skycast/internal/forecast"
	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/units"
	"github.com/skycast/skycast/internal/uvindex"
)

// CurrentConditions is the normalized current-weather block. Temperatures are
// whole degrees and wind speed is in the display unit system.
type CurrentConditions struct {
	Temp          int    `json:"temp"`
	FeelsLike     int    `json:"feels_like"`
	Humidity      int    `json:"humidity"`
	WindSpeed     int    `json:"wind_speed"`
	WindDirection int    `json:"wind_direction"`
	WindCompass   string `json:"wind_compass"`
	// Visibility is in kilometers, defaulting to 10 when the upstream omits it.
	Visibility  int       `json:"visibility"`
	Pressure    int       `json:"pressure"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Code        int       `json:"code"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	IsDay       bool      `json:"is_day"`
}

// AirQuality is the pollutant sample relabeled onto the approximate US scale.
type AirQuality struct {
	AQI            int                       `json:"aqi"`
	Classification airquality.Classification `json:"classification"`
	PM25           float64                   `json:"pm25"`
	PM10           float64                   `json:"pm10"`
	CO             float64                   `json:"co"`
	NO2            float64                   `json:"no2"`
	O3             float64                   `json:"o3"`
}

// Alert is a weather alert forwarded from the upstream payload.
type Alert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Snapshot is the complete weather view model for one location at one point
// in time. It is composed once per fetch and replaced atomically; consumers
// never observe a partially built snapshot. AirQuality is nil when the
// air-pollution call failed.
type Snapshot struct {
	Location   location.Location        `json:"location"`
	Current    CurrentConditions        `json:"current"`
	Hourly     []forecast.HourlySample  `json:"hourly"`
	Daily      []forecast.DailyForecast `json:"daily"`
	AirQuality *AirQuality              `json:"air_quality,omitempty"`
	// UV is a heuristic estimate, not an authoritative measurement.
	UV        uvindex.Estimate `json:"uv"`
	Alerts    []Alert          `json:"alerts"`
	Units     units.System     `json:"units"`
	FetchedAt time.Time        `json:"fetched_at"`
}
