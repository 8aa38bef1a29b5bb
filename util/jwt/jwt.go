package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issue signs an HS256 token carrying the user id as the subject claim.
func Issue(secret string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

var ErrUnauthenticated = errors.New("missing or invalid token")

// Parse verifies a raw token string and returns the user id it carries.
func Parse(tokenStr, secret string) (int64, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return 0, ErrUnauthenticated
	}

	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return 0, ErrUnauthenticated
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrUnauthenticated
	}
	sub, ok := mc["sub"].(float64)
	if !ok {
		return 0, ErrUnauthenticated
	}
	return int64(sub), nil
}

// ParseAuth resolves an Authorization header value ("Bearer <token>" or a
// bare token) to a user id. Invalid or absent tokens yield an error, never
// a panic; callers treat the error as anonymous.
func ParseAuth(authHeader, secret string) (int64, error) {
	tokenStr := strings.TrimSpace(authHeader)
	if strings.HasPrefix(strings.ToLower(tokenStr), "bearer ") {
		tokenStr = strings.TrimSpace(tokenStr[7:])
	}
	return Parse(tokenStr, secret)
}
