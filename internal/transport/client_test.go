package transport

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/queuedesk/queuedesk-go/internal/log"
)

func quietLogger() *log.Logger {
	return log.New(log.Config{
		Level:  log.LevelError,
		Format: log.FormatJSON,
		Output: log.NewOutput(io.Discard),
	})
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientCommand, srv.URL, 5*time.Second, quietLogger()), srv
}

func TestClientGet(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/queues/q1", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "tenant-7", r.Header.Get("X-Tenant"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{"id":"q1","name":"Front Desk"}}`)
	}))

	resp, err := client.Get(context.Background(), "/v1/queues/q1",
		WithQuery("limit", "50"),
		WithHeader("X-Tenant", "tenant-7"))
	require.NoError(t, err)

	var payload struct {
		Data struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, resp.Decode(&payload))
	assert.Equal(t, "q1", payload.Data.ID)
	assert.Equal(t, "Front Desk", payload.Data.Name)
}

func TestClientPostMarshalsBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, readErr := io.ReadAll(r.Body)
		require.NoError(t, readErr)
		assert.JSONEq(t, `{"name":"Walk-ins"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"q2"}}`)
	}))

	resp, err := client.Post(context.Background(), "/v1/queues", map[string]string{"name": "Walk-ins"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
}

func TestClientStatusError(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"name is required"}`)
	}))

	_, err := client.Post(context.Background(), "/v1/queues", map[string]string{})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, stderrors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.Status)
	assert.Equal(t, "name is required", statusErr.Message)
	assert.Equal(t, ClientCommand, statusErr.ClientName)
	assert.Contains(t, statusErr.URL, srv.URL)

	status, ok := StatusOf(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestClientStatusErrorAltEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error":"queue already exists"}`)
	}))

	_, err := client.Post(context.Background(), "/v1/queues", map[string]string{"name": "dup"})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, stderrors.As(err, &statusErr))
	assert.Equal(t, "queue already exists", statusErr.Message)
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(ClientQuery, baseURL, time.Second, quietLogger())

	_, err := client.Get(context.Background(), "/v1/queues")
	require.Error(t, err)

	var reqErr *RequestError
	assert.True(t, stderrors.As(err, &reqErr))
	assert.True(t, IsNetworkError(err))

	_, ok := StatusOf(err)
	assert.False(t, ok)
}

func TestClientRequestMiddlewareAbortsDispatch(t *testing.T) {
	dispatched := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dispatched = true
	}))

	client.WithRequestMiddleware(func(ctx context.Context, req *Request) error {
		return fmt.Errorf("no credentials available")
	})

	_, err := client.Get(context.Background(), "/v1/queues")
	require.Error(t, err)
	assert.False(t, dispatched)
	assert.False(t, IsNetworkError(err))
}

func TestClientMiddlewareOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "second", r.Header.Get("X-Stage"))
		fmt.Fprint(w, `{}`)
	}))

	client.
		WithRequestMiddleware(func(ctx context.Context, req *Request) error {
			req.Header.Set("X-Stage", "first")
			return nil
		}).
		WithRequestMiddleware(func(ctx context.Context, req *Request) error {
			req.Header.Set("X-Stage", "second")
			return nil
		})

	_, err := client.Get(context.Background(), "/v1/ping")
	require.NoError(t, err)
}

func TestClientResponseMiddlewareRewritesOutcome(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	client.WithResponseMiddleware(func(ctx context.Context, c *Client, req *Request, resp *Response, err error) (*Response, error) {
		if status, ok := StatusOf(err); ok && status == http.StatusNotFound {
			return emptyResult(), nil
		}
		return resp, err
	})

	resp, err := client.Get(context.Background(), "/v1/history")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"data":[]}`, string(resp.Body))
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("X-Request-Id"))
		fmt.Fprint(w, `{}`)
	}))

	client.WithRequestMiddleware(RequestIDMiddleware())

	_, err := client.Get(context.Background(), "/v1/ping")
	require.NoError(t, err)
	_, err = client.Get(context.Background(), "/v1/ping", WithHeader("X-Request-Id", "caller-chosen"))
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.Equal(t, "caller-chosen", seen[1])
}
