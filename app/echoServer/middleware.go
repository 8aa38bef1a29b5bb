package echoServer

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/jwtx"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/respond"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/config"
	jwtutil "github.com/LakshyaVerma123kl/Clone-Linkendin/util/jwt"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/util/ratelimit"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			attrs := []any{
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			}
			if uid, uerr := jwtx.UserID(c); uerr == nil {
				attrs = append(attrs, "user_id", uid)
			}
			slog.Info("http", attrs...)
			return err
		}
	}
}

// RateLimit admits requests under the given class, keyed by caller IP.
// Admission metadata is mirrored onto X-RateLimit-* headers; rejected
// requests get a 429 envelope.
func RateLimit(l ratelimit.Limiter, class config.RateClass) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := l.Admit(c.RealIP(), class.Limit, class.Window)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(class.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt/1000, 10))

			if !res.Allowed {
				return respond.Fail(c, http.StatusTooManyRequests,
					respond.CodeRateLimited, "Rate limit exceeded",
					map[string]any{
						"limit":     class.Limit,
						"window":    class.Window.Milliseconds(),
						"remaining": res.Remaining,
						"resetTime": res.ResetAt,
					})
			}
			return next(c)
		}
	}
}

// OptionalIdentity resolves the caller's user id on routes that serve
// anonymous traffic too, reading the bearer header with the session cookie
// as fallback. Invalid or absent tokens pass through untouched; guarded
// routes do their own rejection.
func OptionalIdentity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			if raw == "" {
				if ck, err := c.Cookie("token"); err == nil {
					raw = ck.Value
				}
			}
			if uid, err := jwtutil.ParseAuth(raw, secret); err == nil {
				jwtx.SetUserID(c, uid)
			}
			return next(c)
		}
	}
}

// ErrorHandler is the single funnel for errors no handler enveloped itself.
// Raw internals never reach the client; unclassified failures leave as an
// INTERNAL_ERROR envelope and are logged with the request id.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		code := respond.CodeInternal
		message := "Internal server error"

		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			switch status {
			case http.StatusBadRequest:
				code, message = respond.CodeInvalidPayload, "Invalid payload"
			case http.StatusUnauthorized:
				code, message = respond.CodeUnauthorized, "Authentication required"
			case http.StatusForbidden:
				code, message = respond.CodeForbidden, "Forbidden"
			case http.StatusNotFound:
				code, message = respond.CodeNotFound, "Not found"
			case http.StatusMethodNotAllowed:
				code, message = respond.CodeInvalidPayload, "Method not allowed"
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				"err", err,
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"path", c.Path(),
				"method", c.Request().Method,
			)
		}

		_ = respond.Fail(c, status, code, message, err.Error())
	}
}
