package member

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"

	"github.com/storekit/backoffice/auth"
)

// TextCodeDuplicateEmail marks signup attempts with an email that already
// has an account.
const TextCodeDuplicateEmail = "DUPLICATE_EMAIL"

// ErrDuplicateEmail is returned when a signup reuses an existing email.
var ErrDuplicateEmail = errors.New("an account with this email already exists", errors.CategoryConflict).
	WithCode(errors.CodeConflict).
	WithTextCode(TextCodeDuplicateEmail)

// SignUpMessage carries a signup request into the service.
type SignUpMessage struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	StoreName string `json:"store_name"`
	Role      string `json:"role"`
}

func (e SignUpMessage) Type() string { return "member.signup" }

// Service implements member account workflows over the store.
type Service struct {
	store  Members
	logger auth.Logger
}

// NewService will create a member service.
func NewService(store Members) *Service {
	return &Service{
		store:  store,
		logger: auth.NopLogger(),
	}
}

func (s *Service) WithLogger(logger auth.Logger) *Service {
	s.logger = logger
	return s
}

// SignUp registers a new member: duplicate email check, password hash,
// deterministic ID derived from the email.
func (s *Service) SignUp(ctx context.Context, msg SignUpMessage) (*Member, error) {
	email := normalizeEmail(msg.Email)

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed duplicate email lookup")
	}

	hash, err := auth.HashPassword(msg.Password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	record := &Member{
		Email:        email,
		PasswordHash: hash,
		Name:         msg.Name,
		StoreName:    msg.StoreName,
		Role:         msg.Role,
	}

	if id, err := hashid.NewUUID(email); err == nil {
		record.ID = id
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConflict, "could not create member")
	}

	s.logger.Info("member registered", "email", created.Email, "role", created.Role)

	return created, nil
}
