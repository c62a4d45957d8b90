package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/queuedesk/queuedesk-go/internal/transport"
)

// Queue fetches one queue by ID
func (a *API) Queue(ctx context.Context, queueID string) (*Queue, error) {
	path := fmt.Sprintf("/v1/queues/%s", url.PathEscape(queueID))

	resp, err := a.clients.Query.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data Queue `json:"data"`
	}
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode queue: %w", err)
	}

	return &payload.Data, nil
}

// ListQueues fetches every queue visible to the current session
func (a *API) ListQueues(ctx context.Context) ([]Queue, error) {
	resp, err := a.clients.Query.Get(ctx, "/v1/queues")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []Queue `json:"data"`
	}
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode queues: %w", err)
	}

	return payload.Data, nil
}

// ListAppointmentsOptions filters an appointment listing
type ListAppointmentsOptions struct {
	QueueID string
	From    time.Time
	To      time.Time
	Limit   int
}

// ListAppointments fetches scheduled visits matching the options
func (a *API) ListAppointments(ctx context.Context, opts ListAppointmentsOptions) ([]Appointment, error) {
	var reqOpts []transport.RequestOption
	if opts.QueueID != "" {
		reqOpts = append(reqOpts, transport.WithQuery("queue_id", opts.QueueID))
	}
	if !opts.From.IsZero() {
		reqOpts = append(reqOpts, transport.WithQuery("from", opts.From.Format(time.RFC3339)))
	}
	if !opts.To.IsZero() {
		reqOpts = append(reqOpts, transport.WithQuery("to", opts.To.Format(time.RFC3339)))
	}
	if opts.Limit > 0 {
		reqOpts = append(reqOpts, transport.WithQuery("limit", strconv.Itoa(opts.Limit)))
	}

	resp, err := a.clients.Query.Get(ctx, "/v1/appointments", reqOpts...)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []Appointment `json:"data"`
	}
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}

	return payload.Data, nil
}
