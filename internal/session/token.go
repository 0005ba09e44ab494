package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired decodes the token without verifying its signature (the server
// does that) and compares the exp claim with now. A token that cannot be
// decoded counts as expired; a token without exp never expires.
func TokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Time.Before(now)
}
