// Package openweather is the typed HTTP client for the OpenWeatherMap
// endpoints: current conditions, 5-day/3-hour forecast, air pollution and
// direct geocoding. All requests are read-only GETs authenticated with an
// API-key query parameter.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/config"
	"github.com/skycast/skycast/pkg/telemetry"
)

// Endpoint names used for breakers, spans, metrics and error reporting.
const (
	EndpointCurrent      = "current"
	EndpointForecast     = "forecast"
	EndpointAirPollution = "air_pollution"
	EndpointGeocoding    = "geocoding"
)

var upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "skycast_upstream_requests_total",
	Help: "Total number of upstream OpenWeatherMap requests by endpoint and outcome.",
}, []string{"endpoint", "outcome"})

// UpstreamError is returned when an endpoint answers with a non-2xx status.
type UpstreamError struct {
	Endpoint string
	Status   int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request returned status %d", e.Endpoint, e.Status)
}

// IsUpstreamError reports whether err carries an upstream HTTP status and
// returns it if so.
func IsUpstreamError(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// Client calls the OpenWeatherMap API. Each endpoint is wrapped in its own
// circuit breaker so a failing endpoint fails fast without being retried.
type Client struct {
	baseURL    string
	geoURL     string
	apiKey     string
	geocodeLim int
	httpClient *http.Client
	logger     *zap.Logger
	tele       *telemetry.Telemetry
	breakers   map[string]*gobreaker.CircuitBreaker
}

// NewClient builds a Client from the weather section of the configuration.
func NewClient(cfg config.WeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Client {
	breakers := make(map[string]*gobreaker.CircuitBreaker, 4)
	for _, name := range []string{EndpointCurrent, EndpointForecast, EndpointAirPollution, EndpointGeocoding} {
		breakers[name] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		})
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		geoURL:     cfg.GeoURL,
		apiKey:     cfg.APIKey,
		geocodeLim: cfg.GeocodeLimit,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger:   logger,
		tele:     tele,
		breakers: breakers,
	}
}

// CurrentWeather fetches current conditions for the coordinates. The units
// parameter is forwarded verbatim to the upstream API.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64, units string) (*CurrentResponse, error) {
	q := coordQuery(lat, lon)
	q.Set("units", units)

	var out CurrentResponse
	if err := c.get(ctx, EndpointCurrent, c.baseURL+"/weather", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Forecast fetches the 5-day/3-hour forecast list for the coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, units string) (*ForecastResponse, error) {
	q := coordQuery(lat, lon)
	q.Set("units", units)

	var out ForecastResponse
	if err := c.get(ctx, EndpointForecast, c.baseURL+"/forecast", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AirPollution fetches the pollutant sample for the coordinates. The endpoint
// takes no units parameter.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64) (*AirPollutionResponse, error) {
	var out AirPollutionResponse
	if err := c.get(ctx, EndpointAirPollution, c.baseURL+"/air_pollution", coordQuery(lat, lon), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DirectGeocode resolves a free-text city query into candidate locations,
// capped at the configured limit.
func (c *Client) DirectGeocode(ctx context.Context, query string) ([]GeoCandidate, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(c.geocodeLim))

	var out []GeoCandidate
	if err := c.get(ctx, EndpointGeocoding, c.geoURL+"/direct", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get performs one breaker-guarded GET against an endpoint and decodes the
// JSON body into out.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, q url.Values, out any) error {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "openweather."+endpoint)
	defer span.End()

	q.Set("appid", c.apiKey)

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s URL: %w", endpoint, err)
	}
	u.RawQuery = q.Encode()

	span.SetAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("http.url", u.Redacted()),
	)

	_, err = c.breakers[endpoint].Execute(func() (any, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if reqErr != nil {
			return nil, reqErr
		}

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return nil, fmt.Errorf("%s request failed: %w", endpoint, doErr)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &UpstreamError{Endpoint: endpoint, Status: resp.StatusCode}
		}

		if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
			return nil, fmt.Errorf("failed to decode %s response: %w", endpoint, decErr)
		}
		return nil, nil
	})

	if err != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		span.SetAttributes(attribute.Bool("success", false))
		c.tele.RecordError(err, ctx, map[string]interface{}{"endpoint": endpoint})
		c.logger.Warn("Upstream request failed",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return err
	}

	upstreamRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	span.SetAttributes(attribute.Bool("success", true))
	return nil
}

func coordQuery(lat, lon float64) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return q
}
