package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/queuedesk/queuedesk-go/internal/errors"
	"github.com/queuedesk/queuedesk-go/internal/session"
)

// HTTPProvider talks to the QueueDesk identity service.
//
// It holds the token pair from the last login (or from a restored session)
// and mints new access tokens with the refresh token.
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewHTTPProvider creates an identity provider bound to the given base URL
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetTokens seeds the provider from a restored session
func (p *HTTPProvider) SetTokens(accessToken, refreshToken string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accessToken = accessToken
	p.refreshToken = refreshToken
}

// LoginResult is the identity service's login response
type LoginResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Email        string `json:"email"`
	UserType     string `json:"user_type"`
	Active       bool   `json:"active"`
}

// Login authenticates with email and password and stores the token pair
func (p *HTTPProvider) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var result LoginResult
	if err := p.post(ctx, "/v1/auth/login", body, &result); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIdentityLoginFailed, "login failed", err).
			WithContext("email", email)
	}

	p.SetTokens(result.AccessToken, result.RefreshToken)

	return &result, nil
}

// CurrentToken returns the access token from the last login or refresh.
// Returns "" when no identity session exists.
func (p *HTTPProvider) CurrentToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.accessToken, nil
}

// Refresh exchanges the refresh token for a new access token
func (p *HTTPProvider) Refresh(ctx context.Context) (string, error) {
	p.mu.Lock()
	refreshToken := p.refreshToken
	p.mu.Unlock()

	if refreshToken == "" {
		return "", errors.New(errors.ErrCodeIdentityRefreshFailed, "no refresh token available")
	}

	body := map[string]string{
		"refresh_token": refreshToken,
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := p.post(ctx, "/v1/auth/refresh", body, &result); err != nil {
		return "", errors.NewRefreshFailedError(err)
	}

	p.mu.Lock()
	p.accessToken = result.AccessToken
	p.mu.Unlock()

	return result.AccessToken, nil
}

// SignOut revokes the identity session and forgets the token pair
func (p *HTTPProvider) SignOut(ctx context.Context, email string, userType session.UserType) error {
	body := map[string]string{
		"email":     email,
		"user_type": string(userType),
	}

	err := p.post(ctx, "/v1/auth/logout", body, nil)

	p.mu.Lock()
	p.accessToken = ""
	p.refreshToken = ""
	p.mu.Unlock()

	if err != nil {
		return errors.Wrap(errors.ErrCodeIdentitySignOutFailed, "sign-out failed", err)
	}
	return nil
}

// post performs a JSON POST against the identity service
func (p *HTTPProvider) post(ctx context.Context, path string, body, target interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)

		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			if errResp.Error != "" {
				return fmt.Errorf("%s", errResp.Error)
			}
			if errResp.Message != "" {
				return fmt.Errorf("%s", errResp.Message)
			}
		}

		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
