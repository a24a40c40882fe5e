package member

import (
	"context"

	"github.com/goliatone/go-errors"

	"github.com/storekit/backoffice/auth"
)

// Provider exposes the member store as the credential store adapter the
// login flow consults. Request authentication never touches it.
type Provider struct {
	store  Members
	logger auth.Logger
}

// NewProvider will create a new identity provider over the member store.
func NewProvider(store Members) *Provider {
	return &Provider{
		store:  store,
		logger: auth.NopLogger(),
	}
}

func (p *Provider) WithLogger(logger auth.Logger) *Provider {
	p.logger = logger
	return p
}

// VerifyIdentity finds the member, compares the password against the
// stored hash, and returns the identity. Not-found and bad-password both
// come back as credential mismatches so callers can not tell them apart.
func (p *Provider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	record, err := p.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, auth.ErrMismatchedHashAndPassword
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve member during verification")
	}

	if err := auth.ComparePasswordAndHash(password, record.PasswordHash); err != nil {
		p.logger.Debug("VerifyIdentity password mismatch", "email", identifier)
		return nil, err
	}

	return NewIdentity(record), nil
}

// FindIdentityByIdentifier returns the identity without a credential check.
func (p *Provider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	record, err := p.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, err
	}
	return NewIdentity(record), nil
}

var _ auth.IdentityProvider = (*Provider)(nil)
