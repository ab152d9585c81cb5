// Package auth implements the client-side authentication gate: decoding a
// bearer token's claims and deciding page-level access.
//
// The client only decodes, it never verifies. The decoded role is a UX hint
// for routing; the server independently re-checks the admin claim on every
// request, so nothing here is a security boundary.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"qrstudio/internal/client/models"
)

// Claims is the payload segment of the backend's JWT: the registered claims
// (subject is the username) plus the application role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Username returns the token subject.
func (c *Claims) Username() string { return c.Subject }

// DecodeClaims extracts the claims from a token without verifying its
// signature. Any malformation (wrong segment count, invalid base64,
// non-JSON payload, empty token) yields nil rather than an error; an
// unreadable token and an absent token route the same way.
func DecodeClaims(token string) *Claims {
	if token == "" {
		return nil
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}

// IsAdmin reports whether the token decodes to an admin role. Callers must
// run this before issuing any admin request and route to the admin login
// flow when it fails.
func IsAdmin(token string) bool {
	claims := DecodeClaims(token)
	return claims != nil && claims.Role == models.RoleAdmin
}
