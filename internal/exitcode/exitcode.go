package exitcode

import (
	stderrors "errors"
	"net/http"
	"os"
	"strings"

	"github.com/queuedesk/queuedesk-go/internal/errors"
	"github.com/queuedesk/queuedesk-go/internal/transport"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure or an expired session
	AuthError = 3

	// NetworkError indicates a network connectivity issue
	NetworkError = 4

	// ConfigError indicates missing or invalid configuration
	ConfigError = 5

	// Interrupted indicates the run was cancelled by a signal
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var platformErr *errors.PlatformError
	if stderrors.As(err, &platformErr) {
		switch {
		case strings.HasPrefix(string(platformErr.Code), "CONFIG-"):
			return ConfigError
		case strings.HasPrefix(string(platformErr.Code), "SESSION-"),
			strings.HasPrefix(string(platformErr.Code), "IDENTITY-"):
			return AuthError
		}
	}

	if status, ok := transport.StatusOf(err); ok {
		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return AuthError
		default:
			return GeneralError
		}
	}

	if transport.IsNetworkError(err) {
		return NetworkError
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unknown command") || strings.Contains(errMsg, "unknown flag") ||
		strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "accepts") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error or expired session"
	case NetworkError:
		return "Network error"
	case ConfigError:
		return "Configuration error"
	case Interrupted:
		return "Interrupted by signal"
	default:
		return "Unknown error"
	}
}
