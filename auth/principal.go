package auth

import "slices"

// Principal is the authenticated identity for the duration of one request
// or login attempt. It is constructed once and never mutated.
//
// A Principal decoded from a token carries only Subject and Capabilities;
// ID is populated only when the Principal comes from a store lookup.
// Credential hashes are never part of a Principal.
type Principal struct {
	ID           string
	Subject      string
	Capabilities []string
}

// NewPrincipal builds a Principal from a store-backed identity.
func NewPrincipal(identity Identity) *Principal {
	if identity == nil {
		return nil
	}
	return &Principal{
		ID:           identity.ID(),
		Subject:      identity.Subject(),
		Capabilities: slices.Clone(identity.Capabilities()),
	}
}

func principalFromClaims(claims *Claims) *Principal {
	return &Principal{
		Subject:      claims.Subject(),
		Capabilities: slices.Clone(claims.Capabilities),
	}
}

// HasCapability reports whether the principal carries the given tag.
func (p *Principal) HasCapability(tag string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Capabilities, tag)
}

// HasAnyCapability reports whether the principal's capability set
// intersects the given tags.
func (p *Principal) HasAnyCapability(tags ...string) bool {
	if p == nil {
		return false
	}
	for _, tag := range tags {
		if slices.Contains(p.Capabilities, tag) {
			return true
		}
	}
	return false
}
