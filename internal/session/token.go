// ABOUTME: Best-effort inspection of bearer tokens that happen to be JWTs
// ABOUTME: Reads the exp claim without verifying the signature

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns the exp claim of a JWT bearer token.
// The token stays opaque to the console: ok is false for non-JWT tokens
// or JWTs without an exp claim.
func TokenExpiry(token string) (expiry time.Time, ok bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
