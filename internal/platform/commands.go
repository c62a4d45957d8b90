package platform

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/queuedesk/queuedesk-go/internal/transport"
)

// CreateAppointmentRequest describes a new scheduled visit
type CreateAppointmentRequest struct {
	QueueID     string    `json:"queue_id"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// CreateAppointment schedules a visit. The command carries an idempotency
// key so a replayed request after a token refresh cannot double-book.
func (a *API) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	resp, err := a.clients.Command.Post(ctx, "/v1/appointments", req,
		transport.WithHeader("X-Idempotency-Key", uuid.NewString()))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data Appointment `json:"data"`
	}
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode appointment: %w", err)
	}

	return &payload.Data, nil
}

// CancelAppointment cancels a scheduled visit
func (a *API) CancelAppointment(ctx context.Context, appointmentID string) error {
	path := fmt.Sprintf("/v1/appointments/%s/cancel", url.PathEscape(appointmentID))

	_, err := a.clients.Command.Post(ctx, path, nil,
		transport.WithHeader("X-Idempotency-Key", uuid.NewString()))
	return err
}

// CheckIn takes a ticket for a client in the given queue
func (a *API) CheckIn(ctx context.Context, queueID, clientName string) (*Ticket, error) {
	path := fmt.Sprintf("/v1/queues/%s/check-in", url.PathEscape(queueID))

	body := map[string]string{"client_name": clientName}
	resp, err := a.clients.Command.Post(ctx, path, body,
		transport.WithHeader("X-Idempotency-Key", uuid.NewString()))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data Ticket `json:"data"`
	}
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode ticket: %w", err)
	}

	return &payload.Data, nil
}
