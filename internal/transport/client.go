package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/queuedesk/queuedesk-go/internal/log"
)

// RequestMiddleware runs before a request is sent. Returning an error
// aborts the request; it is never sent.
type RequestMiddleware func(ctx context.Context, req *Request) error

// ResponseMiddleware runs after a response (or failure) is received.
// Middleware may pass the result through, transform it, or replay the
// request through the client.
type ResponseMiddleware func(ctx context.Context, c *Client, req *Request, resp *Response, err error) (*Response, error)

// Client is one configured transport client bound to a backend base URL.
//
// The retry/suppression policy is not hidden inside the client: it is
// composed as ordered, named middleware stages at construction time.
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	requestMW  []RequestMiddleware
	responseMW []ResponseMiddleware
	log        *log.Logger
}

// NewClient creates a transport client with no middleware attached
func NewClient(name, baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		name:    name,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

// Name returns the client's name, used for error-classification context
func (c *Client) Name() string {
	return c.name
}

// WithRequestMiddleware appends a request middleware stage
func (c *Client) WithRequestMiddleware(mw RequestMiddleware) *Client {
	c.requestMW = append(c.requestMW, mw)
	return c
}

// WithResponseMiddleware appends a response middleware stage
func (c *Client) WithResponseMiddleware(mw ResponseMiddleware) *Client {
	c.responseMW = append(c.responseMW, mw)
	return c
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodGet, path, nil, opts...))
}

// Post performs a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body interface{}, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPost, path, body, opts...))
}

// Put performs a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body interface{}, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPut, path, body, opts...))
}

// Patch performs a PATCH request with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body interface{}, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodPatch, path, body, opts...))
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodDelete, path, nil, opts...))
}

// Do runs the full middleware pipeline around one request. Replays re-enter
// here, so replayed responses see the same response stages.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	for _, mw := range c.requestMW {
		if err := mw(ctx, req); err != nil {
			return nil, err
		}
	}

	resp, err := c.send(ctx, req)

	for _, mw := range c.responseMW {
		resp, err = mw(ctx, c, req, resp, err)
	}

	return resp, err
}

// send performs the HTTP round trip
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	var reqBody io.Reader
	if req.Body != nil {
		jsonBody, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Set(key, value)
		}
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RequestError{
			ClientName: c.name,
			Method:     req.Method,
			URL:        fullURL,
			Err:        err,
		}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &RequestError{
			ClientName: c.name,
			Method:     req.Method,
			URL:        fullURL,
			Err:        err,
		}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, newStatusError(c.name, req.Method, fullURL, httpResp.StatusCode, body)
	}

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   body,
	}, nil
}
