package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queuedesk/queuedesk-go/internal/session"
)

func TestHTTPProviderLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "owner@clinic.example", body["email"])

		json.NewEncoder(w).Encode(LoginResult{
			AccessToken:  "A1",
			RefreshToken: "R1",
			Email:        body["email"],
			UserType:     "business",
			Active:       true,
		})
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, 5*time.Second)

	result, err := provider.Login(context.Background(), "owner@clinic.example", "secret")
	require.NoError(t, err)
	assert.Equal(t, "A1", result.AccessToken)
	assert.True(t, result.Active)

	// Login seeds the provider's token state.
	tok, err := provider.CurrentToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A1", tok)
}

func TestHTTPProviderLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, 5*time.Second)

	_, err := provider.Login(context.Background(), "owner@clinic.example", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestHTTPProviderRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/refresh", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "R1", body["refresh_token"])

		json.NewEncoder(w).Encode(map[string]string{"access_token": "A2"})
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, 5*time.Second)
	provider.SetTokens("A1", "R1")

	tok, err := provider.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A2", tok)

	current, err := provider.CurrentToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A2", current)
}

func TestHTTPProviderRefreshWithoutToken(t *testing.T) {
	provider := NewHTTPProvider("http://localhost:0", 5*time.Second)

	_, err := provider.Refresh(context.Background())
	require.Error(t, err, "refresh without a refresh token must fail, not call the network")
}

func TestHTTPProviderSignOut(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/logout", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, 5*time.Second)
	provider.SetTokens("A1", "R1")

	err := provider.SignOut(context.Background(), "owner@clinic.example", session.UserTypeBusiness)
	require.NoError(t, err)
	assert.Equal(t, "business", gotBody["user_type"])

	// Token state is cleared even on sign-out.
	tok, err := provider.CurrentToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}
