package identity

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/queuedesk/queuedesk-go/internal/errors"
	"github.com/queuedesk/queuedesk-go/internal/session"
)

// expiryLeeway is how close to expiration a cached token may get before
// CurrentToken refreshes it proactively.
const expiryLeeway = 30 * time.Second

// CachingProvider decorates a Provider so CurrentToken is cheap.
//
// The wrapped provider's token is kept until its JWT `exp` claim gets
// within expiryLeeway of now, then a refresh is performed transparently.
// This mirrors how hosted identity SDKs hand out live tokens: callers
// always get a usable token without tracking expiry themselves.
type CachingProvider struct {
	inner Provider

	mu     sync.Mutex
	cached string
}

// NewCachingProvider wraps a provider with expiry-aware token caching
func NewCachingProvider(inner Provider) *CachingProvider {
	return &CachingProvider{inner: inner}
}

// CurrentToken returns the cached token while it is still comfortably
// valid, refreshing through the wrapped provider otherwise.
func (c *CachingProvider) CurrentToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.cached
	c.mu.Unlock()

	if cached == "" {
		tok, err := c.inner.CurrentToken(ctx)
		if err != nil || tok == "" {
			return tok, err
		}
		cached = tok
	}

	if exp, err := TokenExpiry(cached); err == nil && time.Until(exp) > expiryLeeway {
		c.mu.Lock()
		c.cached = cached
		c.mu.Unlock()
		return cached, nil
	}

	// Expired or opaque token: go through the wrapped provider.
	tok, err := c.inner.Refresh(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.cached = tok
	c.mu.Unlock()

	return tok, nil
}

// Refresh always goes to the wrapped provider and replaces the cache
func (c *CachingProvider) Refresh(ctx context.Context) (string, error) {
	tok, err := c.inner.Refresh(ctx)

	c.mu.Lock()
	if err != nil {
		c.cached = ""
	} else {
		c.cached = tok
	}
	c.mu.Unlock()

	return tok, err
}

// SignOut drops the cache and signs out through the wrapped provider
func (c *CachingProvider) SignOut(ctx context.Context, email string, userType session.UserType) error {
	c.mu.Lock()
	c.cached = ""
	c.mu.Unlock()

	return c.inner.SignOut(ctx, email, userType)
}

// TokenExpiry extracts the `exp` claim from a JWT without verifying the
// signature. Verification belongs to the backend; the client only needs
// the expiry to decide whether a refresh is due.
func TokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeIdentityTokenMalformed, "failed to parse token", err)
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New(errors.ErrCodeIdentityTokenMalformed, "token has no expiration claim")
	}

	return exp.Time, nil
}
