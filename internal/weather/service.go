// Package weather orchestrates the upstream calls for one fetch cycle and
// composes the normalized snapshot.
package weather

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/airquality"
	"github.com/skycast/skycast/internal/forecast"
	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/openweather"
	"github.com/skycast/skycast/internal/units"
	"github.com/skycast/skycast/internal/uvindex"
	"github.com/skycast/skycast/pkg/telemetry"
)

// Upstream is the slice of the OpenWeatherMap client the service needs.
type Upstream interface {
	CurrentWeather(ctx context.Context, lat, lon float64, units string) (*openweather.CurrentResponse, error)
	Forecast(ctx context.Context, lat, lon float64, units string) (*openweather.ForecastResponse, error)
	AirPollution(ctx context.Context, lat, lon float64) (*openweather.AirPollutionResponse, error)
}

// Service produces WeatherSnapshots. One FetchSnapshot call issues the three
// upstream requests concurrently; current conditions and forecast must both
// succeed, air quality is optional.
type Service struct {
	api    Upstream
	logger *zap.Logger
	tele   *telemetry.Telemetry
	now    func() time.Time
}

func NewService(api Upstream, logger *zap.Logger, tele *telemetry.Telemetry) *Service {
	return &Service{
		api:    api,
		logger: logger,
		tele:   tele,
		now:    time.Now,
	}
}

// FetchSnapshot fetches and normalizes all weather data for a location. An
// error from the current-conditions or forecast request aborts the whole
// operation; an air-quality failure only leaves the AirQuality field nil.
// The call is never retried here; retry is a user-initiated re-invocation.
func (s *Service) FetchSnapshot(ctx context.Context, loc location.Location, sys units.System) (*Snapshot, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "weather.FetchSnapshot")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lat", loc.Lat),
		attribute.Float64("lon", loc.Lon),
		attribute.String("units", string(sys)),
	)

	var (
		wg     sync.WaitGroup
		cur    *openweather.CurrentResponse
		fc     *openweather.ForecastResponse
		air    *openweather.AirPollutionResponse
		curErr error
		fcErr  error
		airErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		cur, curErr = s.api.CurrentWeather(ctx, loc.Lat, loc.Lon, string(sys))
	}()
	go func() {
		defer wg.Done()
		fc, fcErr = s.api.Forecast(ctx, loc.Lat, loc.Lon, string(sys))
	}()
	go func() {
		defer wg.Done()
		air, airErr = s.api.AirPollution(ctx, loc.Lat, loc.Lon)
	}()
	wg.Wait()

	if curErr != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, curErr
	}
	if fcErr != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, fcErr
	}

	// Air quality is non-fatal: log and continue without it.
	if airErr != nil {
		s.logger.Warn("Air quality data not available", zap.Error(airErr))
		air = nil
	}

	now := s.now()
	tz := time.FixedZone("local", cur.Timezone)

	current := normalizeCurrent(cur, now, tz, sys)

	snapshot := &Snapshot{
		Location:   loc,
		Current:    current,
		Hourly:     forecast.AggregateHourly(fc.List, tz, sys),
		Daily:      forecast.AggregateDaily(fc.List, tz, sys),
		AirQuality: normalizeAirQuality(air),
		UV: uvindex.FromConditions(
			cur.Clouds.All,
			now.In(tz).Hour(),
			current.Condition == "clear",
		),
		Alerts:    normalizeAlerts(cur.Alerts),
		Units:     sys,
		FetchedAt: now,
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("hourly_count", len(snapshot.Hourly)),
		attribute.Int("daily_count", len(snapshot.Daily)),
		attribute.Bool("air_quality", snapshot.AirQuality != nil),
	)

	s.logger.Info("Weather snapshot composed",
		zap.String("location", loc.Name),
		zap.Int("daily_count", len(snapshot.Daily)),
		zap.Bool("air_quality", snapshot.AirQuality != nil))

	return snapshot, nil
}

func normalizeCurrent(cur *openweather.CurrentResponse, now time.Time, tz *time.Location, sys units.System) CurrentConditions {
	var condition, description string
	var code int
	if len(cur.Weather) > 0 {
		condition = strings.ToLower(cur.Weather[0].Main)
		description = cur.Weather[0].Description
		code = cur.Weather[0].ID
	}

	return CurrentConditions{
		Temp:          units.Round(cur.Main.Temp),
		FeelsLike:     units.Round(cur.Main.FeelsLike),
		Humidity:      cur.Main.Humidity,
		WindSpeed:     units.WindSpeed(cur.Wind.Speed, sys),
		WindDirection: cur.Wind.Deg,
		WindCompass:   units.Compass(cur.Wind.Deg),
		Visibility:    units.VisibilityKm(cur.Visibility),
		Pressure:      cur.Main.Pressure,
		Condition:     condition,
		Description:   description,
		Code:          code,
		Sunrise:       time.Unix(cur.Sys.Sunrise, 0).In(tz),
		Sunset:        time.Unix(cur.Sys.Sunset, 0).In(tz),
		IsDay:         now.Unix() > cur.Sys.Sunrise && now.Unix() < cur.Sys.Sunset,
	}
}

func normalizeAirQuality(air *openweather.AirPollutionResponse) *AirQuality {
	if air == nil || len(air.List) == 0 {
		return nil
	}

	sample := air.List[0]
	aqi := airquality.FromUpstreamScale(sample.Main.AQI)

	return &AirQuality{
		AQI:            aqi,
		Classification: airquality.Classify(float64(aqi)),
		PM25:           sample.Components.PM25,
		PM10:           sample.Components.PM10,
		CO:             sample.Components.CO,
		NO2:            sample.Components.NO2,
		O3:             sample.Components.O3,
	}
}

func normalizeAlerts(alerts []openweather.AlertInfo) []Alert {
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		severity := a.Severity
		if severity == "" {
			severity = "moderate"
		}
		out = append(out, Alert{
			Title:       a.Event,
			Description: a.Description,
			Severity:    severity,
		})
	}
	return out
}
