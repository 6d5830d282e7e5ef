package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health status constants.
const (
	// StatusHealthy indicates the component is fully operational.
	StatusHealthy = "healthy"

	// StatusUnhealthy indicates the component is not operational.
	StatusUnhealthy = "unhealthy"

	// StatusReady indicates the service is ready to accept traffic.
	StatusReady = "ready"

	// StatusNotReady indicates the service is not ready to accept traffic.
	StatusNotReady = "not_ready"
)

// ComponentStatus represents the health status of a single component.
type ComponentStatus struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the response for health endpoints.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components []ComponentStatus `json:"components,omitempty"`
}

// HealthChecker reports whether the application's components are ready.
type HealthChecker interface {
	// IsReady checks if all components are ready to serve traffic.
	IsReady(ctx context.Context) bool

	// GetHealthStatus returns detailed health status of all components.
	GetHealthStatus(ctx context.Context) []ComponentStatus
}

// RegisterHealthEndpoints registers the health probe endpoints:
//   - GET /health - liveness probe (200 whenever the process runs)
//   - GET /ready - readiness probe (200 when ready, 503 when not)
func (r *Router) RegisterHealthEndpoints(checker HealthChecker) {
	r.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{Status: StatusHealthy})
	})

	r.echo.GET("/ready", func(c echo.Context) error {
		ctx := c.Request().Context()

		var components []ComponentStatus
		if checker != nil {
			components = checker.GetHealthStatus(ctx)
		}

		if checker == nil || checker.IsReady(ctx) {
			return c.JSON(http.StatusOK, HealthResponse{
				Status:     StatusReady,
				Components: components,
			})
		}
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:     StatusNotReady,
			Components: components,
		})
	})
}
