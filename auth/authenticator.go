package auth

import (
	"context"
	"reflect"

	"github.com/goliatone/go-errors"
)

// Auther is the login boundary: it verifies a credential against the
// identity provider and hands the resulting identity to the token service.
// Request authentication never goes through here; it is token driven.
type Auther struct {
	provider     IdentityProvider
	tokenService *TokenServiceImpl
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.tokenService.logger = logger
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() *TokenServiceImpl {
	return s.tokenService
}

// Login verifies the identifier/password pair and returns a signed token.
// Every failure collapses into ErrLoginFailed so callers can not probe
// which credential component was wrong.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "identifier", identifier, "error", err)
		return "", ErrLoginFailed
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrLoginFailed
	}

	token, err := s.tokenService.Issue(identity)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to issue token")
	}

	return token, nil
}

// PrincipalFromToken verifies a raw token and returns the principal it
// carries.
func (s *Auther) PrincipalFromToken(raw string) (*Principal, error) {
	principal, err := s.tokenService.Verify(raw)
	if err != nil {
		s.logger.Debug("PrincipalFromToken validation failed", "error", err)
		return nil, err
	}
	return principal, nil
}

var _ Authenticator = (*Auther)(nil)
