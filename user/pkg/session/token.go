package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	commonErrors "github.com/Alturino/restaurant/internal/errors"
)

// ParseClaims reads the registered claims of a JWT without verifying its
// signature, the client holds no key. ok is false for opaque tokens.
func ParseClaims(token string) (claims jwt.RegisteredClaims, ok bool) {
	if strings.Count(token, ".") != 2 {
		return jwt.RegisteredClaims{}, false
	}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return jwt.RegisteredClaims{}, false
	}
	return claims, true
}

// Expired reports whether token is a JWT whose exp lies before now. Opaque
// tokens and tokens without exp never expire on the client.
func Expired(token string, now time.Time) bool {
	claims, ok := ParseClaims(token)
	if !ok || claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}

// CheckToken rejects empty and expired tokens.
func CheckToken(token string, now time.Time) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", commonErrors.ErrTokenInvalid)
	}
	if Expired(token, now) {
		return fmt.Errorf("%w: token expired", commonErrors.ErrTokenInvalid)
	}
	return nil
}

type tokenKey struct{}

// ContextWithToken makes token take precedence over the stored session for
// calls made with c.
func ContextWithToken(c context.Context, token string) context.Context {
	return context.WithValue(c, tokenKey{}, token)
}

func TokenFromContext(c context.Context) string {
	token, ok := c.Value(tokenKey{}).(string)
	if !ok {
		return ""
	}
	return token
}
