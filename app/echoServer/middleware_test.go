package echoServer_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/config"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/util/ratelimit"
)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	Details   any             `json:"details"`
	Timestamp string          `json:"timestamp"`
	RequestID string          `json:"requestId"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.HTTPErrorHandler = echoServer.ErrorHandler(slog.Default())
	return e
}

func do(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_AdmitsThenRejects(t *testing.T) {
	e := newEcho()
	class := config.RateClass{Limit: 2, Window: time.Minute}
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	}, echoServer.RateLimit(ratelimit.NewFixedWindow(), class))

	for i := 0; i < 2; i++ {
		rec := do(e, http.MethodGet, "/ping")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := do(e, http.MethodGet, "/ping")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	require.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

	env := decode(t, rec)
	require.False(t, env.Success)
	require.Equal(t, "RATE_LIMIT_EXCEEDED", env.Code)
	require.Equal(t, "Rate limit exceeded", env.Error)
	require.NotEmpty(t, env.Timestamp)
	require.NotEmpty(t, env.RequestID)
}

func TestRateLimit_HeadersOnSuccess(t *testing.T) {
	e := newEcho()
	class := config.RateClass{Limit: 5, Window: time.Minute}
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, echoServer.RateLimit(ratelimit.NewFixedWindow(), class))

	rec := do(e, http.MethodGet, "/ping")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	e := newEcho()
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("pq: connection refused")
	})

	rec := do(e, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	env := decode(t, rec)
	require.False(t, env.Success)
	require.Equal(t, "INTERNAL_ERROR", env.Code)
	require.Equal(t, "Internal server error", env.Error)
	// raw error must not leak outside debug mode
	require.Nil(t, env.Details)
	require.NotContains(t, rec.Body.String(), "connection refused")
}

func TestErrorHandler_DebugExposesDetails(t *testing.T) {
	e := newEcho()
	e.Debug = true
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("pq: connection refused")
	})

	rec := do(e, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "connection refused")
}

func TestErrorHandler_HTTPErrorMapping(t *testing.T) {
	e := newEcho()
	e.GET("/auth-only", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized)
	})

	rec := do(e, http.MethodGet, "/auth-only")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode(t, rec)
	require.Equal(t, "UNAUTHORIZED", env.Code)
	require.Equal(t, "Authentication required", env.Error)

	rec = do(e, http.MethodGet, "/no-such-route")
	require.Equal(t, http.StatusNotFound, rec.Code)
	env = decode(t, rec)
	require.Equal(t, "NOT_FOUND", env.Code)
}

func TestRequestID_PresentInEnvelope(t *testing.T) {
	e := newEcho()
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := do(e, http.MethodGet, "/ok")
	require.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
