package transport

import (
	"context"

	"github.com/google/uuid"

	"github.com/queuedesk/queuedesk-go/internal/config"
	"github.com/queuedesk/queuedesk-go/internal/log"
)

// Client names, used for error-classification context and per-client
// suppression policy
const (
	ClientCommand = "command"
	ClientEvents  = "events"
	ClientQuery   = "query"
)

// Clients bundles the three backend transport clients. All three share one
// SessionBroker, so a refresh triggered through any of them is observed by
// all.
type Clients struct {
	Command *Client
	Events  *Client
	Query   *Client
}

// NewClients builds the three decorated transport clients.
//
// The decoration is identical across all three — request ID, auth header
// resolution, then the retry/suppression stage — only the base URL and the
// client name differ. Construction fails fast when a production
// configuration carries a plaintext endpoint.
func NewClients(cfg *config.Config, broker *SessionBroker, logger *log.Logger) (*Clients, error) {
	endpoints := []struct {
		name string
		url  string
	}{
		{ClientCommand, cfg.Endpoints.Command},
		{ClientEvents, cfg.Endpoints.Events},
		{ClientQuery, cfg.Endpoints.Query},
	}

	for _, e := range endpoints {
		if err := config.CheckTransport(cfg.Environment, e.name, e.url); err != nil {
			return nil, err
		}
	}

	build := func(name, baseURL string) *Client {
		return NewClient(name, baseURL, cfg.RequestTimeout, logger).
			WithRequestMiddleware(RequestIDMiddleware()).
			WithRequestMiddleware(broker.RequestMiddleware()).
			WithResponseMiddleware(broker.ResponseMiddleware(name))
	}

	return &Clients{
		Command: build(ClientCommand, cfg.Endpoints.Command),
		Events:  build(ClientEvents, cfg.Endpoints.Events),
		Query:   build(ClientQuery, cfg.Endpoints.Query),
	}, nil
}

// RequestIDMiddleware stamps every outbound request with a correlation ID.
// A caller-supplied ID is kept; replays keep the original request's ID.
func RequestIDMiddleware() RequestMiddleware {
	return func(ctx context.Context, req *Request) error {
		if req.Header.Get("X-Request-Id") == "" {
			req.Header.Set("X-Request-Id", uuid.NewString())
		}
		return nil
	}
}
