package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/queuedesk/queuedesk-go/internal/transport"
)

// AttendanceHistory fetches a client's past visits from the event store.
//
// The event store is best-effort infrastructure: when it has no record of
// the client (or the store itself is absent) the transport layer resolves
// the 404 to an empty envelope, so callers always get a list.
func (a *API) AttendanceHistory(ctx context.Context, clientID string) ([]AttendanceRecord, error) {
	path := fmt.Sprintf("/v1/history/%s", url.PathEscape(clientID))

	resp, err := a.clients.Events.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []AttendanceRecord `json:"data"`
	}
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode attendance history: %w", err)
	}

	return payload.Data, nil
}

// RecordHeartbeat reports presence to the event store. The call is silent:
// a failure to reach the store is returned but never logged, classified or
// escalated into a logout.
func (a *API) RecordHeartbeat(ctx context.Context) error {
	_, err := a.clients.Events.Post(ctx, "/v1/presence", nil, transport.Silent())
	return err
}
