// Package main provides the API server entry point.
package main

import (
	"github.com/labstack/echo/v4"

	"github.com/okodanev/deskhub/internal/infrastructure/httpserver"
	"github.com/okodanev/deskhub/internal/middleware"
)

// SetupRoutes configures all API routes and middleware chains.
func SetupRoutes(c *Container) *httpserver.Router {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	corsConfig := middleware.DefaultCORSConfig()
	if origins := c.Config.CORS.AllowedOrigins; len(origins) > 0 {
		corsConfig = middleware.CORSConfigForOrigins(origins...)
	}

	routerConfig := httpserver.RouterConfig{
		Logger:         c.Logger,
		CORSConfig:     corsConfig,
		LoggingConfig:  middleware.DefaultLoggingConfig(),
		RecoveryConfig: middleware.DefaultRecoveryConfig(),
		APIPrefix:      "/api/v1",
	}

	router := httpserver.NewRouter(e, routerConfig)

	// Container implements httpserver.HealthChecker.
	router.RegisterHealthEndpoints(c)
	router.RegisterMetricsEndpoint()

	router.RegisterAll(
		c.ScheduleHandler,
		c.DirectoryHandler,
	)

	c.WSHandler.RegisterRoutes(e)

	if c.Config.IsDevelopment() {
		router.PrintRoutes()
	}

	return router
}
