package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storekit/backoffice/auth"
)

func TestAuthenticator_Login(t *testing.T) {
	cfg := newTestConfig()

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", mock.Anything, "alice@example.com", "s3cr3t-password").
			Return(testIdentity{
				id:           "usr-1",
				subject:      "alice@example.com",
				capabilities: []string{"franchisee"},
			}, nil)

		auther := auth.NewAuthenticator(provider, cfg)

		token, err := auther.Login(context.Background(), "alice@example.com", "s3cr3t-password")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		principal, err := auther.PrincipalFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", principal.Subject)
		assert.True(t, principal.HasCapability("franchisee"))

		provider.AssertExpectations(t)
	})

	t.Run("collapses provider errors into login failure", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", mock.Anything, "alice@example.com", "wrong").
			Return(nil, auth.ErrMismatchedHashAndPassword)

		auther := auth.NewAuthenticator(provider, cfg).WithLogger(auth.NopLogger())

		token, err := auther.Login(context.Background(), "alice@example.com", "wrong")
		assert.Empty(t, token)
		assert.ErrorIs(t, err, auth.ErrLoginFailed)
	})

	t.Run("collapses unknown identifier into login failure", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", mock.Anything, "nobody@example.com", "s3cr3t-password").
			Return(nil, auth.ErrIdentityNotFound)

		auther := auth.NewAuthenticator(provider, cfg).WithLogger(auth.NopLogger())

		_, err := auther.Login(context.Background(), "nobody@example.com", "s3cr3t-password")
		assert.ErrorIs(t, err, auth.ErrLoginFailed)
	})

	t.Run("rejects nil identity from provider", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", mock.Anything, "alice@example.com", "s3cr3t-password").
			Return(nil, nil)

		auther := auth.NewAuthenticator(provider, cfg).WithLogger(auth.NopLogger())

		_, err := auther.Login(context.Background(), "alice@example.com", "s3cr3t-password")
		assert.ErrorIs(t, err, auth.ErrLoginFailed)
	})
}

func TestAuthenticator_PrincipalFromToken(t *testing.T) {
	cfg := newTestConfig()
	provider := &MockIdentityProvider{}
	auther := auth.NewAuthenticator(provider, cfg).WithLogger(auth.NopLogger())

	t.Run("rejects garbage token", func(t *testing.T) {
		principal, err := auther.PrincipalFromToken("not-a-token")
		assert.Nil(t, principal)
		assert.ErrorIs(t, err, auth.ErrTokenMalformed)
	})

	t.Run("round trips through the token service", func(t *testing.T) {
		token, err := auther.TokenService().Issue(testIdentity{
			subject:      "bob@example.com",
			capabilities: []string{"franchise_owner"},
		})
		require.NoError(t, err)

		principal, err := auther.PrincipalFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", principal.Subject)
		assert.True(t, principal.HasAnyCapability("admin", "franchise_owner"))
	})
}
