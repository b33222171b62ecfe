package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/openweather"
	"github.com/skycast/skycast/internal/server/utils"
	"github.com/skycast/skycast/internal/session"
	"github.com/skycast/skycast/internal/units"
	"github.com/skycast/skycast/internal/weather"
)

// SnapshotFetcher is the weather service surface this handler needs.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, loc location.Location, sys units.System) (*weather.Snapshot, error)
}

type WeatherHandler struct {
	resolver *location.Resolver
	service  SnapshotFetcher
	store    *session.Store
	logger   *zap.Logger
}

func NewWeatherHandler(resolver *location.Resolver, service SnapshotFetcher, store *session.Store, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		resolver: resolver,
		service:  service,
		store:    store,
		logger:   logger,
	}
}

// GetWeather resolves the requested location, fetches a fresh snapshot with
// the session's unit system and publishes it. A stale fetch (one overtaken by
// a newer request) still answers its own caller but is not published.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req WeatherRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	loc, ok := h.resolveLocation(c, ctx, req, reqLogger)
	if !ok {
		return
	}

	gen := h.store.Begin()

	snapshot, err := h.service.FetchSnapshot(ctx, loc, h.store.Units())
	if err != nil {
		reqLogger.Error("Failed to fetch weather snapshot",
			zap.String("location", loc.Name),
			zap.Error(err))
		writeFetchError(c, err)
		return
	}

	if !h.store.Publish(gen, snapshot) {
		reqLogger.Debug("Snapshot superseded by a newer fetch",
			zap.Uint64("generation", gen))
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetSnapshot returns the last published snapshot without refetching.
func (h *WeatherHandler) GetSnapshot(c *gin.Context) {
	snapshot := h.store.Snapshot()
	if snapshot == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "No weather snapshot available yet",
			Code:  "NO_SNAPSHOT",
		})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *WeatherHandler) resolveLocation(c *gin.Context, ctx context.Context, req WeatherRequest, reqLogger *zap.Logger) (location.Location, bool) {
	switch {
	case req.GeoError != 0:
		err := location.GeolocationFailure(req.GeoError)
		status := http.StatusBadRequest
		var ge *location.GeolocationError
		if errors.As(err, &ge) && ge.Cause == location.PermissionDenied {
			status = http.StatusForbidden
		}
		c.JSON(status, ErrorResponse{
			Error: err.Error(),
			Code:  "GEOLOCATION_FAILED",
		})
		return location.Location{}, false

	case req.Query != "":
		loc, err := h.resolver.ResolveByName(ctx, req.Query)
		if err != nil {
			reqLogger.Warn("Location search failed",
				zap.String("query", req.Query),
				zap.Error(err))
			writeFetchError(c, err)
			return location.Location{}, false
		}
		return loc, true

	case req.Lat != nil && req.Lon != nil:
		if errs := utils.ValidateStruct(req); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid coordinates",
				Code:    "INVALID_PARAMS",
				Details: errs[0].Message,
			})
			return location.Location{}, false
		}
		return h.resolver.ResolveByCoordinates(*req.Lat, *req.Lon), true

	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Either q or lat and lon must be provided",
			Code:  "INVALID_PARAMS",
		})
		return location.Location{}, false
	}
}

// writeFetchError maps the error taxonomy onto HTTP statuses: unknown city is
// a 404, upstream rejections are 502 carrying the upstream status, and
// transport failures are a plain 502.
func writeFetchError(c *gin.Context, err error) {
	if errors.Is(err, location.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: err.Error(),
			Code:  "NOT_FOUND",
		})
		return
	}

	if ue, ok := openweather.IsUpstreamError(err); ok {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "Weather data is currently unavailable, try again",
			Code:    "UPSTREAM_ERROR",
			Details: ue.Error(),
		})
		return
	}

	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   "Weather data is currently unavailable, try again",
		Code:    "NETWORK_ERROR",
		Details: err.Error(),
	})
}
