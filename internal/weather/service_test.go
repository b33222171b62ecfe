package weather

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/config"
	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/openweather"
	"github.com/skycast/skycast/internal/units"
	"github.com/skycast/skycast/pkg/telemetry"
)

type fakeUpstream struct {
	current  *openweather.CurrentResponse
	forecast *openweather.ForecastResponse
	air      *openweather.AirPollutionResponse

	currentErr  error
	forecastErr error
	airErr      error
}

func (f *fakeUpstream) CurrentWeather(context.Context, float64, float64, string) (*openweather.CurrentResponse, error) {
	return f.current, f.currentErr
}

func (f *fakeUpstream) Forecast(context.Context, float64, float64, string) (*openweather.ForecastResponse, error) {
	return f.forecast, f.forecastErr
}

func (f *fakeUpstream) AirPollution(context.Context, float64, float64) (*openweather.AirPollutionResponse, error) {
	return f.air, f.airErr
}

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func testCurrent() *openweather.CurrentResponse {
	cur := &openweather.CurrentResponse{}
	cur.Main.Temp = 21.6
	cur.Main.FeelsLike = 20.4
	cur.Main.Humidity = 65
	cur.Main.Pressure = 1014
	cur.Wind.Speed = 4.12
	cur.Wind.Deg = 240
	cur.Clouds.All = 0
	cur.Timezone = 0
	cur.Sys.Country = "DE"
	cur.Sys.Sunrise = testNow.Add(-6 * time.Hour).Unix()
	cur.Sys.Sunset = testNow.Add(6 * time.Hour).Unix()
	cur.Weather = []openweather.ConditionInfo{{ID: 800, Main: "Clear", Description: "clear sky"}}
	return cur
}

func testForecast() *openweather.ForecastResponse {
	fc := &openweather.ForecastResponse{}
	start := testNow.Truncate(24 * time.Hour)
	for i := 0; i < 40; i++ {
		var e openweather.ForecastEntry
		e.Dt = start.Add(time.Duration(i) * 3 * time.Hour).Unix()
		e.Main.Temp = 15 + float64(i%8)
		e.Main.Humidity = 60
		e.Wind.Speed = 3.0
		e.Pop = 0.2
		e.Weather = []openweather.ConditionInfo{{ID: 801, Main: "Clouds", Description: "few clouds"}}
		fc.List = append(fc.List, e)
	}
	return fc
}

func testAir() *openweather.AirPollutionResponse {
	air := &openweather.AirPollutionResponse{}
	var sample openweather.AirPollutionSample
	sample.Main.AQI = 2
	sample.Components.PM25 = 8.2
	sample.Components.PM10 = 14.1
	sample.Components.CO = 220.3
	sample.Components.NO2 = 11.9
	sample.Components.O3 = 68.7
	air.List = append(air.List, sample)
	return air
}

func newTestService(api Upstream) *Service {
	tele, _ := telemetry.New(context.Background(), config.TelemetryConfig{Enabled: false})
	svc := NewService(api, zap.NewNop(), tele)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestFetchSnapshotComposesFullView(t *testing.T) {
	api := &fakeUpstream{current: testCurrent(), forecast: testForecast(), air: testAir()}
	svc := newTestService(api)
	loc := location.Location{Name: "Berlin", Country: "DE", Lat: 52.52, Lon: 13.41}

	snap, err := svc.FetchSnapshot(context.Background(), loc, units.Metric)
	require.NoError(t, err)

	assert.Equal(t, loc, snap.Location)
	assert.Equal(t, units.Metric, snap.Units)
	assert.Equal(t, testNow, snap.FetchedAt)

	// Normalized current conditions.
	assert.Equal(t, 22, snap.Current.Temp)
	assert.Equal(t, 20, snap.Current.FeelsLike)
	assert.Equal(t, 15, snap.Current.WindSpeed) // 4.12 m/s -> 14.8 km/h
	assert.Equal(t, "SW", snap.Current.WindCompass)
	assert.Equal(t, 10, snap.Current.Visibility) // absent upstream -> 10 km
	assert.Equal(t, "clear", snap.Current.Condition)
	assert.True(t, snap.Current.IsDay)

	// 40 samples over 5 days starting today.
	assert.Len(t, snap.Hourly, 8)
	assert.Len(t, snap.Daily, 5)

	// Clear sky at noon with no clouds pins the UV estimate to the top.
	assert.Equal(t, 10, snap.UV.Value)
	assert.Equal(t, "Extreme", snap.UV.Level)

	require.NotNil(t, snap.AirQuality)
	assert.Equal(t, 100, snap.AirQuality.AQI)
	assert.Equal(t, "Moderate", snap.AirQuality.Classification.Level)
	assert.InDelta(t, 8.2, snap.AirQuality.PM25, 0.001)

	assert.Empty(t, snap.Alerts)
}

func TestFetchSnapshotAirFailureIsNonFatal(t *testing.T) {
	api := &fakeUpstream{
		current:  testCurrent(),
		forecast: testForecast(),
		airErr:   &openweather.UpstreamError{Endpoint: "air_pollution", Status: 500},
	}
	svc := newTestService(api)

	snap, err := svc.FetchSnapshot(context.Background(), location.Location{}, units.Metric)
	require.NoError(t, err)
	assert.Nil(t, snap.AirQuality)
}

func TestFetchSnapshotCurrentFailureAborts(t *testing.T) {
	api := &fakeUpstream{
		currentErr: &openweather.UpstreamError{Endpoint: "current", Status: 401},
		forecast:   testForecast(),
		air:        testAir(),
	}
	svc := newTestService(api)

	snap, err := svc.FetchSnapshot(context.Background(), location.Location{}, units.Metric)
	require.Error(t, err)
	assert.Nil(t, snap)

	ue, ok := openweather.IsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, 401, ue.Status)
}

func TestFetchSnapshotForecastFailureAborts(t *testing.T) {
	api := &fakeUpstream{
		current:     testCurrent(),
		forecastErr: &openweather.UpstreamError{Endpoint: "forecast", Status: 503},
		air:         testAir(),
	}
	svc := newTestService(api)

	snap, err := svc.FetchSnapshot(context.Background(), location.Location{}, units.Metric)
	require.Error(t, err)
	assert.Nil(t, snap)
}

func TestFetchSnapshotNight(t *testing.T) {
	cur := testCurrent()
	// Sun already set.
	cur.Sys.Sunrise = testNow.Add(-16 * time.Hour).Unix()
	cur.Sys.Sunset = testNow.Add(-4 * time.Hour).Unix()

	api := &fakeUpstream{current: cur, forecast: testForecast(), air: testAir()}
	svc := newTestService(api)

	snap, err := svc.FetchSnapshot(context.Background(), location.Location{}, units.Metric)
	require.NoError(t, err)
	assert.False(t, snap.Current.IsDay)
}

func TestFetchSnapshotAlertsMapped(t *testing.T) {
	cur := testCurrent()
	cur.Alerts = []openweather.AlertInfo{
		{Event: "Storm warning", Description: "Severe thunderstorms expected"},
		{Event: "Heat advisory", Description: "High temperatures", Severity: "severe"},
	}

	api := &fakeUpstream{current: cur, forecast: testForecast()}
	svc := newTestService(api)

	snap, err := svc.FetchSnapshot(context.Background(), location.Location{}, units.Metric)
	require.NoError(t, err)
	require.Len(t, snap.Alerts, 2)
	assert.Equal(t, "Storm warning", snap.Alerts[0].Title)
	assert.Equal(t, "moderate", snap.Alerts[0].Severity)
	assert.Equal(t, "severe", snap.Alerts[1].Severity)
}

func TestFetchSnapshotVisibilityPresent(t *testing.T) {
	cur := testCurrent()
	vis := 6500
	cur.Visibility = &vis

	api := &fakeUpstream{current: cur, forecast: testForecast()}
	svc := newTestService(api)

	snap, err := svc.FetchSnapshot(context.Background(), location.Location{}, units.Metric)
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Current.Visibility) // 6500 m -> 6.5 km, rounded up
}
