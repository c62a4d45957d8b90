package session

import (
	"context"
	"time"
)

// UserType distinguishes how a user authenticates into QueueDesk and which
// login surface they return to after a session teardown.
type UserType string

const (
	// UserTypeBusiness is a business (tenant) account
	UserTypeBusiness UserType = "business"
	// UserTypeCollaborator is a staff member of a business
	UserTypeCollaborator UserType = "collaborator"
	// UserTypeMaster is a platform administrator
	UserTypeMaster UserType = "master"
	// UserTypeInvited is an anonymous/invited client without credentials
	UserTypeInvited UserType = "invited"
)

// ParseUserType normalizes a user type string. Unknown values map to
// UserTypeInvited, the least-privileged type.
func ParseUserType(s string) UserType {
	switch UserType(s) {
	case UserTypeBusiness, UserTypeCollaborator, UserTypeMaster, UserTypeInvited:
		return UserType(s)
	default:
		return UserTypeInvited
	}
}

// User is the cached identity attached to the current session.
// Token may lag behind the identity provider's live token; the transport
// layer reconciles the two on every request.
type User struct {
	Active bool   `json:"active"`
	Token  string `json:"token"`
	Email  string `json:"email"`
}

// Session is the process-wide session record
type Session struct {
	User     User     `json:"user"`
	UserType UserType `json:"user_type"`

	// RefreshToken lets the identity provider mint new access tokens
	// without re-prompting for credentials
	RefreshToken string `json:"refresh_token,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Store defines session persistence.
//
// Implementations must be safe for concurrent use: the transport layer
// reads the session on every outbound request while teardown may reset it.
type Store interface {
	// Current returns the cached session, if any.
	Current() (Session, bool)

	// Save replaces the cached session.
	Save(s Session) error

	// Reset clears the session. Used by the cascading teardown; must be
	// safe to call when no session exists.
	Reset(ctx context.Context) error
}
