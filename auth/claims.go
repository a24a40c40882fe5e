package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set carried by every issued token: subject,
// capability tags, issued-at, and expiry. The signature covers the full
// set; nothing else rides along.
type Claims struct {
	jwt.RegisteredClaims
	Capabilities []string `json:"cap,omitempty"`
}

// Subject returns the subject claim (the login identifier).
func (c *Claims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time
func (c *Claims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued at time
func (c *Claims) Issued() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
