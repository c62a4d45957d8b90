package transport

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/queuedesk/queuedesk-go/internal/config"
	"github.com/queuedesk/queuedesk-go/internal/errors"
	"github.com/queuedesk/queuedesk-go/internal/identity"
	"github.com/queuedesk/queuedesk-go/internal/log"
	"github.com/queuedesk/queuedesk-go/internal/navigate"
	"github.com/queuedesk/queuedesk-go/internal/session"
)

// SessionBroker owns the authenticated request session shared by every
// transport client: bearer header resolution, the single-flight token
// refresh, and the cascading teardown after an unrecoverable auth failure.
//
// One broker is constructed at startup and passed to NewClients; the
// refresh and logout state is never package-level.
type SessionBroker struct {
	env      config.Environment
	identity identity.Provider
	sessions session.Store
	nav      navigate.Navigator
	log      *log.Logger

	// refresh guarantees at most one in-flight token refresh; every 401
	// observed while one is running settles with its outcome
	refresh singleflight.Group

	mu         sync.Mutex
	loggingOut bool
}

// NewSessionBroker creates the broker shared by all transport clients
func NewSessionBroker(
	env config.Environment,
	provider identity.Provider,
	sessions session.Store,
	nav navigate.Navigator,
	logger *log.Logger,
) *SessionBroker {
	return &SessionBroker{
		env:      env,
		identity: provider,
		sessions: sessions,
		nav:      nav,
		log:      logger,
	}
}

// AuthHeaders resolves the header map to attach to an outgoing request.
//
// In the local environment no auth is attached, regardless of session
// state. Otherwise the cached session token is reconciled against the
// identity provider's live token: the live token wins when both are
// present and differ, and the cached token is the fallback when the
// provider is transiently unavailable. An inactive or token-less session
// resolves to no headers — the caller is presumed anonymous.
func (b *SessionBroker) AuthHeaders(ctx context.Context) (map[string]string, error) {
	if b.env.IsLocal() {
		return map[string]string{}, nil
	}

	sess, ok := b.sessions.Current()

	live, err := b.identity.CurrentToken(ctx)
	if err != nil {
		// An unreachable identity provider must not block the request.
		b.log.DebugContext(ctx, "live token lookup failed, falling back to cached token",
			"error", err.Error())
		live = ""
	}

	if !ok || !sess.User.Active || sess.User.Token == "" {
		return map[string]string{}, nil
	}

	token := sess.User.Token
	if live != "" && live != token {
		token = live
	}

	return map[string]string{"Authorization": "Bearer " + token}, nil
}

// RequestMiddleware resolves auth headers and merges them into the
// request. Authorization is always overwritten; unrelated caller headers
// are preserved. A header resolution failure aborts the request.
func (b *SessionBroker) RequestMiddleware() RequestMiddleware {
	return func(ctx context.Context, req *Request) error {
		headers, err := b.AuthHeaders(ctx)
		if err != nil {
			return errors.Wrap(errors.ErrCodeTransportHeaders, "failed to resolve auth headers", err)
		}

		for key, value := range headers {
			req.Header.Set(key, value)
		}

		return nil
	}
}

// ResponseMiddleware returns the retry/suppression stage for one named
// client. The transitions run in a fixed order for every response:
// pass-through, 401 refresh-and-replay, event-store 404 absorption,
// silent network failure, diagnostic classification.
func (b *SessionBroker) ResponseMiddleware(clientName string) ResponseMiddleware {
	return func(ctx context.Context, c *Client, req *Request, resp *Response, err error) (*Response, error) {
		if err == nil {
			return resp, nil
		}

		status, isStatus := StatusOf(err)

		// Authorization failure on a request that has not been replayed
		// yet: refresh once, replay with the new token.
		if isStatus && status == http.StatusUnauthorized && !req.Retried() {
			req.MarkRetried()

			token, refreshErr := b.refreshToken(ctx)
			if refreshErr != nil {
				cls := Classify(err, clientName)
				b.log.WarnContext(ctx, "token refresh failed",
					"client", clientName,
					"status", cls.Status,
					"error", refreshErr.Error())

				// The caller sees the original 401, not the refresh error.
				// The teardown was already triggered (once) inside the
				// shared refresh.
				return nil, err
			}

			req.Header.Set("Authorization", "Bearer "+token)
			return c.Do(ctx, req)
		}

		// The event store backs best-effort history features; its absence
		// must never surface as a user-facing error.
		if clientName == ClientEvents && isStatus && status == http.StatusNotFound {
			return emptyResult(), nil
		}

		// Silent requests fail quietly on network-level errors: no
		// classification, no diagnostics, no logout.
		if req.Silent && IsNetworkError(err) {
			return nil, err
		}

		cls := Classify(err, clientName)
		b.log.DebugContext(ctx, "request failed",
			"client", clientName,
			"status", cls.Status,
			"message", cls.Message,
			"should_retry", cls.ShouldRetry)

		return nil, err
	}
}

// refreshToken re-acquires the live identity token. Concurrent callers
// share a single in-flight refresh, and a failed refresh starts the
// cascading teardown exactly once no matter how many callers shared the
// outcome.
func (b *SessionBroker) refreshToken(ctx context.Context) (string, error) {
	value, err, _ := b.refresh.Do("refresh", func() (interface{}, error) {
		// Detached from the triggering request so one caller's
		// cancellation cannot poison the shared outcome.
		token, err := b.identity.Refresh(context.WithoutCancel(ctx))
		if err == nil && token == "" {
			err = errors.New(errors.ErrCodeIdentityRefreshFailed, "identity provider returned no token")
		}
		if err != nil {
			// Only expired sessions reach the refresh, so failure here
			// means the session is unrecoverable. Triggering inside the
			// single-flight closure runs the teardown once per refresh,
			// not once per waiting caller.
			if b.beginTeardown() {
				// Fire-and-forget: callers are never blocked on, nor
				// aware of, the teardown's outcome.
				go b.teardown(context.WithoutCancel(ctx))
			}
			return nil, err
		}
		return token, nil
	})
	if err != nil {
		return "", err
	}

	return value.(string), nil
}

// beginTeardown claims the logout guard. First caller wins; everyone else
// no-ops rather than waiting.
func (b *SessionBroker) beginTeardown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.loggingOut {
		return false
	}
	b.loggingOut = true
	return true
}

// finishTeardown releases the logout guard so a later independent session
// failure can trigger teardown again
func (b *SessionBroker) finishTeardown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loggingOut = false
}

// teardown runs the cascading logout: best-effort identity sign-out,
// session reset, then navigation to the login surface for the user type.
func (b *SessionBroker) teardown(ctx context.Context) {
	defer b.finishTeardown()
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("session teardown panicked", "panic", r)
			b.nav.SetLocation(navigate.PathRoot)
		}
	}()

	sess, _ := b.sessions.Current()

	if err := b.identity.SignOut(ctx, sess.User.Email, sess.UserType); err != nil {
		b.log.Warn("identity sign-out failed during teardown", "error", err.Error())
	}

	if err := b.sessions.Reset(ctx); err != nil {
		b.log.Warn("session reset failed during teardown", "error", err.Error())
	}

	route, path := navigate.LoginRoute(sess.UserType)
	if err := b.nav.NavigateTo(route, true); err != nil {
		b.nav.SetLocation(path)
	}

	b.log.Info("session teardown complete", "user_type", string(sess.UserType))
}

// emptyResult is the synthesized success shape for absorbed event-store
// 404s: a JSON envelope with an empty data list
func emptyResult() *Response {
	return &Response{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   []byte(`{"data":[]}`),
	}
}
