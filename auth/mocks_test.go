package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storekit/backoffice/auth"
)

// MockIdentity implements auth.Identity
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Subject() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Capabilities() []string {
	args := m.Called()
	caps, _ := args.Get(0).([]string)
	return caps
}

// MockIdentityProvider implements auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

// MockLogger implements auth.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// testIdentity is a plain value identity for tests that do not need
// expectations.
type testIdentity struct {
	id           string
	subject      string
	capabilities []string
}

func (t testIdentity) ID() string             { return t.id }
func (t testIdentity) Subject() string        { return t.subject }
func (t testIdentity) Capabilities() []string { return t.capabilities }

type testConfig struct {
	signingKey      string
	tokenExpiration int
	issuer          string
	authScheme      string
	contextKey      string
}

func (c testConfig) GetSigningKey() string   { return c.signingKey }
func (c testConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c testConfig) GetIssuer() string       { return c.issuer }
func (c testConfig) GetAuthScheme() string   { return c.authScheme }
func (c testConfig) GetContextKey() string   { return c.contextKey }

func newTestConfig() testConfig {
	return testConfig{
		signingKey:      "test-signing-key",
		tokenExpiration: 24,
		issuer:          "test-issuer",
		authScheme:      "Bearer",
		contextKey:      "principal",
	}
}
