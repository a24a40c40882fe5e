package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an identity as the credential store
// knows it. Capability tags are an open set; the core never enumerates
// the tags a deployment uses.
type Identity interface {
	ID() string
	Subject() string
	Capabilities() []string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (string, error)
	PrincipalFromToken(token string) (*Principal, error)
}

// TokenIssuer creates a signed bearer token for an identity.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}

// TokenVerifier validates a raw token and extracts the principal without
// tying callers to a specific signing implementation.
type TokenVerifier interface {
	Verify(tokenString string) (*Principal, error)
}

// Config holds auth options. Values are read once at construction time;
// the resulting components are immutable and safe for concurrent use.
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int // hours
	GetIssuer() string
	GetAuthScheme() string
	GetContextKey() string
}

// IdentityProvider ensures we have a store to retrieve auth identities.
// It is only consulted by the login flow; request authentication is
// purely token driven.
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error)
	FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
