package identity

import (
	"context"

	"github.com/queuedesk/queuedesk-go/internal/session"
)

// Provider is the identity provider capability consumed by the transport
// layer.
//
// CurrentToken resolves the live bearer token once the provider's auth
// state is known. It returns "" with a nil error when no identity session
// exists; that is not a failure.
type Provider interface {
	// CurrentToken returns the live access token, or "" when there is no
	// identity session.
	CurrentToken(ctx context.Context) (string, error)

	// Refresh re-acquires a fresh access token. An empty token from the
	// provider is treated as a refresh failure by callers.
	Refresh(ctx context.Context) (string, error)

	// SignOut revokes the identity session for the given user. Best-effort;
	// callers ignore failures during teardown.
	SignOut(ctx context.Context, email string, userType session.UserType) error
}
