package member_test

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/mock"

	"github.com/storekit/backoffice/auth"
	"github.com/storekit/backoffice/member"
)

// MockMembers implements the member store for the methods the workflows
// exercise. The embedded interface backs everything else.
type MockMembers struct {
	mock.Mock
	member.Members
}

func (m *MockMembers) GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*member.Member, error) {
	args := m.Called(ctx, email)
	record, _ := args.Get(0).(*member.Member)
	return record, args.Error(1)
}

func (m *MockMembers) Create(ctx context.Context, record *member.Member, criteria ...repository.InsertCriteria) (*member.Member, error) {
	args := m.Called(ctx, record)
	created, _ := args.Get(0).(*member.Member)
	return created, args.Error(1)
}

// MockAuthenticator implements auth.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) (string, error) {
	args := m.Called(ctx, identifier, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) PrincipalFromToken(token string) (*auth.Principal, error) {
	args := m.Called(token)
	principal, _ := args.Get(0).(*auth.Principal)
	return principal, args.Error(1)
}

var _ auth.Authenticator = (*MockAuthenticator)(nil)
