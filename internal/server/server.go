package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/skycast/skycast/internal/config"
	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/openweather"
	"github.com/skycast/skycast/internal/server/handlers"
	"github.com/skycast/skycast/internal/server/middlewares"
	"github.com/skycast/skycast/internal/session"
	"github.com/skycast/skycast/internal/units"
	"github.com/skycast/skycast/internal/weather"
	"github.com/skycast/skycast/pkg/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	engine   *gin.Engine
	server   *http.Server
	resolver *location.Resolver
	service  *weather.Service
	store    *session.Store
	logger   *zap.Logger
	tele     *telemetry.Telemetry
}

var (
	instance *Server
	once     sync.Once
)

func NewServer(logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	once.Do(func() {
		cfg := config.GetConfig()

		client := openweather.NewClient(cfg.Weather, logger, tele)
		resolver := location.NewResolver(client, logger)
		service := weather.NewService(client, logger, tele)
		store := session.NewStore(units.System(cfg.Weather.DefaultUnits))

		gin.SetMode(gin.ReleaseMode)
		engine := gin.New()

		engine.Use(middlewares.RequestIDMiddleware())
		engine.Use(middlewares.LoggingMiddleware(logger))
		engine.Use(middlewares.RecoveryMiddleware(logger))
		engine.Use(middlewares.MetricsMiddleware())
		engine.Use(middlewares.TelemetryMiddleware(tele))

		instance = &Server{
			engine:   engine,
			resolver: resolver,
			service:  service,
			store:    store,
			logger:   logger,
			tele:     tele,
		}

		instance.setupRoutes()
	})

	return instance
}

func (s *Server) setupRoutes() {
	// Business endpoints
	api := s.engine.Group("/api")
	{
		weatherHandler := handlers.NewWeatherHandler(s.resolver, s.service, s.store, s.logger)
		api.GET("/weather", weatherHandler.GetWeather)
		api.GET("/snapshot", weatherHandler.GetSnapshot)

		api.GET("/locations/search", handlers.NewLocationHandler(s.resolver, s.logger).Search)

		favorites := handlers.NewFavoritesHandler(s.store, s.logger)
		api.GET("/favorites", favorites.List)
		api.POST("/favorites", favorites.Add)
		api.DELETE("/favorites/:name", favorites.Remove)
		api.DELETE("/favorites", favorites.Clear)

		settings := handlers.NewSettingsHandler(s.store, s.logger)
		api.GET("/settings", settings.Get)
		api.PUT("/settings/units", settings.UpdateUnits)
	}

	// Health endpoints (Kubernetes friendly)
	health := handlers.NewHealthHandler(s.logger)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) Start() error {
	cfg := config.GetConfig()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
