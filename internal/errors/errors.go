package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound         ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid          ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal        ErrorCode = "CONFIG-003"
	ErrCodeConfigInsecureEndpoint ErrorCode = "CONFIG-004"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionNotFound    ErrorCode = "SESSION-001"
	ErrCodeSessionInvalid     ErrorCode = "SESSION-002"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION-003"

	// Identity provider errors (IDENTITY-001 to IDENTITY-099)
	ErrCodeIdentityUnavailable    ErrorCode = "IDENTITY-001"
	ErrCodeIdentityLoginFailed    ErrorCode = "IDENTITY-002"
	ErrCodeIdentityRefreshFailed  ErrorCode = "IDENTITY-003"
	ErrCodeIdentitySignOutFailed  ErrorCode = "IDENTITY-004"
	ErrCodeIdentityTokenMalformed ErrorCode = "IDENTITY-005"

	// Transport errors (TRANSPORT-001 to TRANSPORT-099)
	ErrCodeTransportSetup   ErrorCode = "TRANSPORT-001"
	ErrCodeTransportMarshal ErrorCode = "TRANSPORT-002"
	ErrCodeTransportDecode  ErrorCode = "TRANSPORT-003"
	ErrCodeTransportHeaders ErrorCode = "TRANSPORT-004"
)

// PlatformError represents an error with a stable code and structured context
type PlatformError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
	Cause   error
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *PlatformError) Unwrap() error {
	return e.Cause
}

// New creates a new PlatformError
func New(code ErrorCode, message string) *PlatformError {
	return &PlatformError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new PlatformError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *PlatformError {
	return &PlatformError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext adds a context value to the error
func (e *PlatformError) WithContext(key string, value interface{}) *PlatformError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Common error constructors for frequently used errors

// NewConfigNotFoundError creates a config file not found error
func NewConfigNotFoundError(path string) *PlatformError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithContext("path", path)
}

// NewInsecureEndpointError creates a plaintext-transport-in-production error
func NewInsecureEndpointError(name, url string) *PlatformError {
	return New(ErrCodeConfigInsecureEndpoint,
		fmt.Sprintf("endpoint %q uses plaintext transport in production: %s", name, url)).
		WithContext("endpoint", name).
		WithContext("url", url)
}

// NewRefreshFailedError creates a token refresh failure error
func NewRefreshFailedError(cause error) *PlatformError {
	return Wrap(ErrCodeIdentityRefreshFailed, "failed to refresh identity token", cause)
}
