package member_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storekit/backoffice/auth"
	"github.com/storekit/backoffice/member"
)

func signUpMessage() member.SignUpMessage {
	return member.SignUpMessage{
		Email:     "alice@example.com",
		Password:  "s3cr3t-password",
		Name:      "Alice",
		StoreName: "Alice's Store",
		Role:      member.CapabilityFranchisee,
	}
}

func TestService_SignUp(t *testing.T) {
	t.Run("registers a new member", func(t *testing.T) {
		store := &MockMembers{}
		store.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(nil, repository.NewRecordNotFound())
		store.On("Create", mock.Anything, mock.MatchedBy(func(m *member.Member) bool {
			return m.Email == "alice@example.com" &&
				m.Role == member.CapabilityFranchisee &&
				m.PasswordHash != "" &&
				m.PasswordHash != "s3cr3t-password"
		})).Return(&member.Member{Email: "alice@example.com", Role: member.CapabilityFranchisee}, nil)

		service := member.NewService(store)

		created, err := service.SignUp(context.Background(), signUpMessage())
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", created.Email)

		store.AssertExpectations(t)
	})

	t.Run("normalizes the email", func(t *testing.T) {
		store := &MockMembers{}
		store.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(nil, repository.NewRecordNotFound())
		store.On("Create", mock.Anything, mock.MatchedBy(func(m *member.Member) bool {
			return m.Email == "alice@example.com"
		})).Return(&member.Member{Email: "alice@example.com"}, nil)

		service := member.NewService(store)

		msg := signUpMessage()
		msg.Email = "  Alice@Example.COM "

		_, err := service.SignUp(context.Background(), msg)
		require.NoError(t, err)

		store.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		store := &MockMembers{}
		store.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(&member.Member{Email: "alice@example.com"}, nil)

		service := member.NewService(store)

		created, err := service.SignUp(context.Background(), signUpMessage())
		assert.Nil(t, created)
		assert.ErrorIs(t, err, member.ErrDuplicateEmail)

		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("surfaces store failures", func(t *testing.T) {
		store := &MockMembers{}
		store.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(nil, errors.New("connection lost", errors.CategoryInternal))

		service := member.NewService(store)

		_, err := service.SignUp(context.Background(), signUpMessage())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, member.ErrDuplicateEmail)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		store := &MockMembers{}
		store.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(nil, repository.NewRecordNotFound())

		service := member.NewService(store)

		msg := signUpMessage()
		msg.Password = ""

		_, err := service.SignUp(context.Background(), msg)
		assert.ErrorIs(t, err, auth.ErrNoEmptyString)
	})
}
