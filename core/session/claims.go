package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Claims is the subset of the backend token payload the hub cares about.
// The backend holds the signing key; the hub only introspects.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role,omitempty"`
}

// ParseClaims decodes the token payload without verifying the signature.
// Verification is the backend's job on every API call; the hub only needs
// the expiry and subject to know when a persisted session has gone stale.
func ParseClaims(token string) (*Claims, error) {
	claims := new(Claims)
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(err, "parsing token claims")
	}
	return claims, nil
}

// Expired reports whether the session token passed its expiry claim.
// Tokens without a parsable expiry are treated as live; the backend rejects
// them with 401 if they are not.
func (s Session) Expired(now time.Time) bool {
	if !s.Authenticated() {
		return true
	}
	claims, err := ParseClaims(s.Token)
	if err != nil || claims.ExpiresAt == 0 {
		return false
	}
	return now.After(time.Unix(claims.ExpiresAt, 0))
}

// UserID returns the subject claim of the session token, if any.
func (s Session) UserID() string {
	claims, err := ParseClaims(s.Token)
	if err != nil {
		return ""
	}
	return claims.Subject
}
