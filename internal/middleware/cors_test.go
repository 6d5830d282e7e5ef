package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okodanev/deskhub/internal/middleware"
)

// newCORSEcho builds an echo instance with the routes the widgets actually
// hit cross-origin.
func newCORSEcho(config middleware.CORSConfig) *echo.Echo {
	e := echo.New()
	e.Use(middleware.CORS(config))

	e.GET("/api/v1/tasks", func(c echo.Context) error {
		return c.String(http.StatusOK, "[]")
	})
	e.PUT("/api/v1/calendar/selected", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return e
}

func TestDefaultCORSConfig(t *testing.T) {
	config := middleware.DefaultCORSConfig()

	assert.Equal(t, []string{"*"}, config.AllowOrigins)
	assert.Contains(t, config.AllowMethods, echo.GET)
	assert.Contains(t, config.AllowMethods, echo.PUT)
	assert.Contains(t, config.AllowMethods, echo.POST)
	assert.Contains(t, config.AllowMethods, echo.DELETE)
	assert.Contains(t, config.AllowHeaders, echo.HeaderContentType)
	assert.Contains(t, config.AllowHeaders, echo.HeaderXRequestID)
	// No auth on this API, so no credential sharing by default.
	assert.NotContains(t, config.AllowHeaders, echo.HeaderAuthorization)
	assert.False(t, config.AllowCredentials)
	assert.Equal(t, middleware.DefaultCORSMaxAge, config.MaxAge)
}

func TestCORS_DefaultAllowsAnyDashboard(t *testing.T) {
	e := newCORSEcho(middleware.DefaultCORSConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set(echo.HeaderOrigin, "http://dashboard.example.com")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}

func TestCORSConfigForOrigins(t *testing.T) {
	tests := []struct {
		name                string
		requestOrigin       string
		expectedAllowOrigin string
	}{
		{
			name:                "pinned origin allowed",
			requestOrigin:       "http://localhost:3000",
			expectedAllowOrigin: "http://localhost:3000",
		},
		{
			name:                "unknown origin rejected",
			requestOrigin:       "http://evil.example.com",
			expectedAllowOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newCORSEcho(middleware.CORSConfigForOrigins("http://localhost:3000"))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
			req.Header.Set(echo.HeaderOrigin, tt.requestOrigin)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expectedAllowOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		})
	}
}

func TestCORSConfigForOrigins_EnablesCredentials(t *testing.T) {
	e := newCORSEcho(middleware.CORSConfigForOrigins("http://localhost:3000"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}

func TestCORSPreflight_SelectDate(t *testing.T) {
	e := newCORSEcho(middleware.CORSConfigForOrigins("http://localhost:3000"))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/calendar/selected", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPut)
	req.Header.Set(echo.HeaderAccessControlRequestHeaders, "Content-Type")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodPut)
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderContentType)
	assert.Equal(t, "86400", rec.Header().Get(echo.HeaderAccessControlMaxAge))
}

func TestCORSNoOriginHeader(t *testing.T) {
	e := newCORSEcho(middleware.DefaultCORSConfig())

	// Same-origin request: no Origin header, no CORS headers in response.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}
