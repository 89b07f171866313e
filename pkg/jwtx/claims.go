package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime for session access tokens.
// Short-lived for security - typical range is 15m to 1h.
const DefaultSessionTTL = 15 * time.Minute

// Session scopes understood by the service. A coach token carries ScopeCoach,
// a player portal token carries ScopePlayer. Kept as claims rather than roles
// in the database so the HTTP layer can authorize without a store round trip.
const (
	ScopeCoach  = "coach"
	ScopePlayer = "player"
)

// Claims are the session-token claims. Subject is the domain actor the
// session belongs to (coach id or player id), not the identity account id.
type Claims struct {
	jwt.RegisteredClaims

	// Permission scopes, e.g. ["coach"] or ["player"]
	Scopes []string `json:"scopes,omitempty"`

	// Email the session was authenticated with
	Email string `json:"email,omitempty"`

	// FullName is the display name for the session owner
	FullName string `json:"full_name,omitempty"`
}

// NewSessionClaims builds minimally-correct claims for a session token.
func NewSessionClaims(
	subject, email, fullName string,
	scopes []string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Scopes:   scopes,
		Email:    email,
		FullName: fullName,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// HasScope reports whether the claims carry the given scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
