package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// UserIDFromToken digs the subject claim out of the token echo-jwt stored
// in the context.
func UserIDFromToken(c echo.Context) (int64, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return 0, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid jwt claims")
	}
	if f, ok := claims["sub"].(float64); ok {
		return int64(f), nil
	}
	return 0, errors.New("sub missing in claims")
}

// SetUserID records the authenticated user id for downstream handlers.
func SetUserID(c echo.Context, id int64) { c.Set(userIDKey, id) }

// UserID returns the authenticated user id placed by the auth middleware.
func UserID(c echo.Context) (int64, error) {
	id, ok := c.Get(userIDKey).(int64)
	if !ok || id <= 0 {
		return 0, errors.New("no authenticated user in context")
	}
	return id, nil
}
