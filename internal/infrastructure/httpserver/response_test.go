package httpserver_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okodanev/deskhub/internal/domain/errs"
	"github.com/okodanev/deskhub/internal/infrastructure/httpserver"
)

func TestRespondJSON(t *testing.T) {
	tests := []struct {
		name           string
		code           int
		data           any
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success with data",
			code:           http.StatusOK,
			data:           map[string]string{"key": "value"},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"data":{"key":"value"}}`,
		},
		{
			name:           "success with nil data",
			code:           http.StatusOK,
			data:           nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true}`,
		},
		{
			name: "created with struct",
			code: http.StatusCreated,
			data: struct {
				ID string `json:"id"`
			}{ID: "123"},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"success":true,"data":{"id":"123"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := httpserver.RespondJSON(c, tt.code, tt.data)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
		})
	}
}

func TestRespondNoContent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := httpserver.RespondNoContent(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            fmt.Errorf("task lookup: %w", errs.ErrNotFound),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "already exists",
			err:            errs.ErrAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedCode:   "ALREADY_EXISTS",
		},
		{
			name:           "invalid input",
			err:            fmt.Errorf("title: %w", errs.ErrInvalidInput),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_INPUT",
		},
		{
			name:           "malformed payload",
			err:            fmt.Errorf("decode: %w", errs.ErrMalformedPayload),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MALFORMED_PAYLOAD",
		},
		{
			name:           "unsupported payload",
			err:            errs.ErrUnsupportedPayload,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "UNSUPPORTED_PAYLOAD",
		},
		{
			name:           "invalid state",
			err:            errs.ErrInvalidState,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "INVALID_STATE",
		},
		{
			name:           "unknown error",
			err:            errors.New("something broke"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := httpserver.RespondError(c, tt.err)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
			assert.Contains(t, rec.Body.String(), tt.expectedCode)
		})
	}
}
