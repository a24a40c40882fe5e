// Package member implements member accounts for the back office: signup,
// the credential store consulted at login, and the HTTP surface for both.
package member

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Capability tags this deployment assigns to members. The auth core treats
// tags as an open set; these constants only exist so the rule table and
// the signup payload agree on spelling.
const (
	CapabilityFranchisee     = "franchisee"
	CapabilityFranchiseOwner = "franchise_owner"
	CapabilityAdmin          = "admin"
)

// Member is the account model
type Member struct {
	bun.BaseModel `bun:"table:members,alias:mbr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	StoreName     string     `bun:"store_name,notnull" json:"store_name,omitempty"`
	Role          string     `bun:"role,notnull" json:"role,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Identity adapts a Member into the auth.Identity interface for token
// issuance. The password hash stays behind; only the login flow compares it.
type Identity struct {
	member *Member
}

// NewIdentity returns an identity adapter for the provided member.
func NewIdentity(member *Member) *Identity {
	if member == nil {
		return nil
	}
	return &Identity{member: member}
}

// ID returns the member's ID as a string.
func (i *Identity) ID() string {
	if i == nil || i.member == nil {
		return ""
	}
	return i.member.ID.String()
}

// Subject returns the member's login identifier.
func (i *Identity) Subject() string {
	if i == nil || i.member == nil {
		return ""
	}
	return i.member.Email
}

// Capabilities returns the member's capability tags.
func (i *Identity) Capabilities() []string {
	if i == nil || i.member == nil || i.member.Role == "" {
		return nil
	}
	return []string{i.member.Role}
}
