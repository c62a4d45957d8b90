package exitcode

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/queuedesk/queuedesk-go/internal/errors"
	"github.com/queuedesk/queuedesk-go/internal/transport"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"AuthError", AuthError, 3},
		{"NetworkError", NetworkError, 4},
		{"ConfigError", ConfigError, 5},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: Success,
		},
		{
			name:     "config error code",
			err:      errors.New(errors.ErrCodeConfigNotFound, "config file not found"),
			expected: ConfigError,
		},
		{
			name:     "identity error code",
			err:      errors.New(errors.ErrCodeIdentityRefreshFailed, "refresh failed"),
			expected: AuthError,
		},
		{
			name:     "wrapped session error code",
			err:      fmt.Errorf("login: %w", errors.New(errors.ErrCodeSessionNotFound, "no session")),
			expected: AuthError,
		},
		{
			name: "unauthorized status",
			err: &transport.StatusError{
				ClientName: transport.ClientQuery,
				Status:     401,
				Message:    "unauthorized",
			},
			expected: AuthError,
		},
		{
			name: "server status",
			err: &transport.StatusError{
				ClientName: transport.ClientCommand,
				Status:     500,
				Message:    "server error",
			},
			expected: GeneralError,
		},
		{
			name: "network error",
			err: &transport.RequestError{
				ClientName: transport.ClientQuery,
				Err:        stderrors.New("connection refused"),
			},
			expected: NetworkError,
		},
		{
			name:     "unknown command",
			err:      stderrors.New(`unknown command "quues" for "queuedesk"`),
			expected: UsageError,
		},
		{
			name:     "plain error",
			err:      stderrors.New("something broke"),
			expected: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.expected {
				t.Errorf("DetermineExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	if got := GetExitCodeDescription(AuthError); got != "Authentication error or expired session" {
		t.Errorf("unexpected description: %s", got)
	}
	if got := GetExitCodeDescription(99); got != "Unknown error" {
		t.Errorf("unexpected description for unknown code: %s", got)
	}
}
