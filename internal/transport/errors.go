package transport

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StatusError is the original transport error for a non-2xx response.
// Callers always receive this error unmodified; classification output is
// advisory and never substituted for it.
type StatusError struct {
	ClientName string
	Method     string
	URL        string
	Status     int

	// Message is extracted from the response body's message/error field
	Message string
	Body    []byte
}

// Error implements the error interface
func (e *StatusError) Error() string {
	s := fmt.Sprintf("%s: %s %s: status %d", e.ClientName, e.Method, e.URL, e.Status)
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

// newStatusError builds a StatusError, pulling a human-readable message out
// of the JSON error envelope when the backend provides one
func newStatusError(clientName, method, url string, status int, body []byte) *StatusError {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	message := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			message = envelope.Message
		case envelope.Error != "":
			message = envelope.Error
		}
	}

	return &StatusError{
		ClientName: clientName,
		Method:     method,
		URL:        url,
		Status:     status,
		Message:    message,
		Body:       body,
	}
}

// RequestError is a network-level failure: the request left the process but
// no response came back (connection refused, DNS failure, timeout).
type RequestError struct {
	ClientName string
	Method     string
	URL        string
	Err        error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.ClientName, e.Method, e.URL, e.Err)
}

// Unwrap implements error unwrapping
func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusOf extracts the HTTP status from an error, if it carries one
func StatusOf(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	return 0, false
}

// IsNetworkError reports whether the error is a network-level failure with
// no response received
func IsNetworkError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
