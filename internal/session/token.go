package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
)

// Claims are the fields the API embeds in an access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"id"`
	Fullname string `json:"fullname"`
}

// DecodeClaims reads the claims of an access token without checking its
// signature. The dashboard never holds the API's signing key; the API
// verifies every call itself. A token without exp is invalid.
func DecodeClaims(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expired reports whether the token is no longer usable at now.
func (c *Claims) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt.Time)
}

// Identity returns the user identity carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:    c.UserID,
		Fullname:  c.Fullname,
		ExpiresAt: c.ExpiresAt.Time,
	}
}

// Check decodes token and rejects it when expired at now.
func Check(token string, now time.Time) (Identity, error) {
	claims, err := DecodeClaims(token)
	if err != nil {
		return Identity{}, err
	}
	if claims.Expired(now) {
		return Identity{}, ErrTokenExpired
	}
	return claims.Identity(), nil
}
