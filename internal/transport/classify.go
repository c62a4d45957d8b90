package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Classification is the structured result of classifying a transport
// failure. It is advisory: the retry coordinator consults ShouldLogout and
// callers may consult ShouldRetry, but the original error object is what
// propagates.
type Classification struct {
	Message      string
	Status       int
	ShouldLogout bool
	ShouldRetry  bool
}

// Classify maps a raw transport failure plus a context label (the client
// name) to a Classification.
//
// The function is total: any input, including nil and malformed errors,
// yields a well-formed result and it never panics.
func Classify(err error, context string) Classification {
	if err == nil {
		return Classification{}
	}

	var se *StatusError
	if errors.As(err, &se) {
		cls := Classification{Status: se.Status}

		switch se.Status {
		case http.StatusUnauthorized:
			cls.Message = "session expired"
			cls.ShouldLogout = true
		case http.StatusForbidden:
			cls.Message = "access denied"
		case http.StatusNotFound:
			cls.Message = "resource not found"
		case http.StatusUnprocessableEntity:
			if se.Message != "" {
				cls.Message = se.Message
			} else {
				cls.Message = "validation failed"
			}
		case http.StatusTooManyRequests:
			cls.Message = "too many requests"
			cls.ShouldRetry = true
		case http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			cls.Message = "server error"
			cls.ShouldRetry = true
		default:
			if se.Message != "" {
				cls.Message = se.Message
			} else {
				cls.Message = fmt.Sprintf("error %d", se.Status)
			}
		}

		return cls
	}

	// Request went out but no response came back.
	if IsNetworkError(err) {
		return Classification{
			Message:     "network error",
			ShouldRetry: true,
		}
	}

	// Failure before a request was even issued.
	message := err.Error()
	if message == "" {
		message = "unexpected error"
	}
	return Classification{Message: message}
}
