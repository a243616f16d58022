package transport

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned when the configured bearer token has expired
var ErrTokenExpired = errors.New("access token expired")

// TokenSource supplies the bearer token attached to every request
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a fixed bearer token. When it is a JWT its exp claim is
// checked before each use; opaque tokens are passed through untouched.
type StaticToken struct {
	Value string
	now   func() time.Time
}

// NewStaticToken creates a token source for value
func NewStaticToken(value string) *StaticToken {
	return &StaticToken{Value: strings.TrimSpace(value), now: time.Now}
}

// Token returns the token or ErrTokenExpired
func (s *StaticToken) Token() (string, error) {
	if s == nil || s.Value == "" {
		return "", nil
	}

	exp, ok := expiresAt(s.Value)
	if ok {
		now := time.Now
		if s.now != nil {
			now = s.now
		}
		if !exp.After(now()) {
			return "", ErrTokenExpired
		}
	}
	return s.Value, nil
}

// expiresAt reads the exp claim without verifying the signature; the
// backend is the one validating it
func expiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
