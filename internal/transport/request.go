package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Request is a snapshot of one outbound call. A fresh Request is built for
// every verb invocation; the retry marker therefore never leaks between
// independent calls to the same endpoint.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   interface{}

	// Silent marks a best-effort call whose network-level failures should
	// not be logged or escalated
	Silent bool

	// retried guards against more than one automatic 401 replay
	retried bool
}

// NewRequest builds a request with the given options applied
func NewRequest(method, path string, body interface{}, opts ...RequestOption) *Request {
	req := &Request{
		Method: method,
		Path:   path,
		Query:  url.Values{},
		Header: http.Header{},
		Body:   body,
	}

	for _, opt := range opts {
		opt(req)
	}

	return req
}

// Retried reports whether this request has already been replayed once
func (r *Request) Retried() bool {
	return r.retried
}

// MarkRetried flags the request so a second 401 cannot start another
// refresh cycle
func (r *Request) MarkRetried() {
	r.retried = true
}

// RequestOption customizes a single request
type RequestOption func(*Request)

// WithHeader sets a request header
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.Header.Set(key, value)
	}
}

// WithQuery adds a query parameter
func WithQuery(key, value string) RequestOption {
	return func(r *Request) {
		r.Query.Set(key, value)
	}
}

// Silent marks the request as best-effort: network-level failures are
// passed through without classification or diagnostics
func Silent() RequestOption {
	return func(r *Request) {
		r.Silent = true
	}
}

// Response is a successful (or synthesized) backend reply
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the response body into target
func (r *Response) Decode(target interface{}) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
