// Package forecast buckets the flat 3-hour forecast list into daily
// summaries and extracts the rolling 24-hour hourly slice.
package forecast

import (
	"math"
	"strings"
	"time"

	"github.com/skycast/skycast/internal/openweather"
	"github.com/skycast/skycast/internal/units"
)

const (
	// MaxDailyEntries caps the daily forecast at one week.
	MaxDailyEntries = 7

	// HourlySamples is 24 hours at the upstream 3-hour resolution.
	HourlySamples = 8

	dateKeyLayout = "2006-01-02"
)

// HourlySample is one 3-hour slot of the next-24-hours view.
type HourlySample struct {
	Time      time.Time `json:"time"`
	Temp      int       `json:"temp"`
	Condition string    `json:"condition"`
	Code      int       `json:"code"`
	Humidity  int       `json:"humidity"`
	WindSpeed int       `json:"wind_speed"`
	// Precipitation is the probability of precipitation, 0-100.
	Precipitation int `json:"precipitation"`
}

// DailyForecast is the aggregate over all samples sharing one local calendar
// date. The representative condition is taken from the first sample of the
// day; earliest-in-day wins by source order.
type DailyForecast struct {
	Date          time.Time `json:"date"`
	TempMax       int       `json:"temp_max"`
	TempMin       int       `json:"temp_min"`
	Condition     string    `json:"condition"`
	Code          int       `json:"code"`
	Description   string    `json:"description"`
	Humidity      int       `json:"humidity"`
	WindSpeed     int       `json:"wind_speed"`
	Precipitation int       `json:"precipitation"`
}

// AggregateHourly projects the first eight forecast samples into hourly
// slices, preserving source order.
func AggregateHourly(list []openweather.ForecastEntry, tz *time.Location, sys units.System) []HourlySample {
	n := len(list)
	if n > HourlySamples {
		n = HourlySamples
	}

	hourly := make([]HourlySample, 0, n)
	for _, entry := range list[:n] {
		condition, code, _ := representativeCondition(entry)
		hourly = append(hourly, HourlySample{
			Time:          time.Unix(entry.Dt, 0).In(tz),
			Temp:          units.Round(entry.Main.Temp),
			Condition:     condition,
			Code:          code,
			Humidity:      entry.Main.Humidity,
			WindSpeed:     units.WindSpeed(entry.Wind.Speed, sys),
			Precipitation: units.Round(entry.Pop * 100),
		})
	}
	return hourly
}

// AggregateDaily traverses the sample list once in source order and emits one
// aggregate per distinct local calendar date, stopping after seven. Min and
// max temperatures are exact sample values; humidity, wind and precipitation
// probability are arithmetic means rounded to the nearest integer. If the
// list starts mid-day the first bucket covers only the remaining readings of
// that day.
func AggregateDaily(list []openweather.ForecastEntry, tz *time.Location, sys units.System) []DailyForecast {
	daily := make([]DailyForecast, 0, MaxDailyEntries)
	seen := make(map[string]bool, MaxDailyEntries)

	for _, entry := range list {
		local := time.Unix(entry.Dt, 0).In(tz)
		key := local.Format(dateKeyLayout)

		if seen[key] || len(daily) >= MaxDailyEntries {
			continue
		}
		seen[key] = true

		daily = append(daily, aggregateDay(entry, local, key, list, tz, sys))
	}

	return daily
}

func aggregateDay(first openweather.ForecastEntry, local time.Time, key string, list []openweather.ForecastEntry, tz *time.Location, sys units.System) DailyForecast {
	var (
		tempMax = math.Inf(-1)
		tempMin = math.Inf(1)
		sumHum  float64
		sumWind float64
		sumPop  float64
		count   float64
	)

	for _, entry := range list {
		if time.Unix(entry.Dt, 0).In(tz).Format(dateKeyLayout) != key {
			continue
		}
		tempMax = math.Max(tempMax, entry.Main.Temp)
		tempMin = math.Min(tempMin, entry.Main.Temp)
		sumHum += float64(entry.Main.Humidity)
		sumWind += entry.Wind.Speed
		sumPop += entry.Pop
		count++
	}

	condition, code, description := representativeCondition(first)

	return DailyForecast{
		Date:          local,
		TempMax:       units.Round(tempMax),
		TempMin:       units.Round(tempMin),
		Condition:     condition,
		Code:          code,
		Description:   description,
		Humidity:      units.Round(sumHum / count),
		WindSpeed:     units.WindSpeed(sumWind/count, sys),
		Precipitation: units.Round(sumPop / count * 100),
	}
}

func representativeCondition(entry openweather.ForecastEntry) (condition string, code int, description string) {
	if len(entry.Weather) == 0 {
		return "", 0, ""
	}
	w := entry.Weather[0]
	return strings.ToLower(w.Main), w.ID, w.Description
}
