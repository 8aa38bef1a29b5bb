// Package respond builds the uniform success/failure envelope every API
// operation returns.
package respond

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Error codes of the API taxonomy.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidPayload  = "INVALID_PAYLOAD"
	CodeInvalidImageURL = "INVALID_IMAGE_URL"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeDuplicate       = "DUPLICATE_ERROR"
	CodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	CodeInternal        = "INTERNAL_ERROR"
)

type successBody struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

type failureBody struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	Details   any    `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func stamp() string { return time.Now().UTC().Format(time.RFC3339) }

// OK writes a success envelope with the given status.
func OK(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, successBody{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: stamp(),
		RequestID: requestID(c),
	})
}

// Fail writes a failure envelope. Details are only exposed when echo runs
// in debug mode; production responses omit internals.
func Fail(c echo.Context, status int, code, message string, details any) error {
	if !c.Echo().Debug {
		details = nil
	}
	return c.JSON(status, failureBody{
		Success:   false,
		Error:     message,
		Code:      code,
		Details:   details,
		Timestamp: stamp(),
		RequestID: requestID(c),
	})
}
