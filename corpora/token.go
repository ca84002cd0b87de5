package corpora

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims of interest inside an access token. They are
// decoded without signature verification, for display purposes only; the
// server remains the authority on token validity.
type SessionClaims struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed. A token without an
// exp claim is never considered expired locally.
func (c *SessionClaims) Expired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// TokenClaims decodes the claims of a JWT access token without verifying
// its signature.
func TokenClaims(token string) (*SessionClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	out := &SessionClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
