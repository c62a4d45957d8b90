// Package platform is the typed QueueDesk API surface over the three
// transport clients: commands for writes, queries for reads, and the
// event store for best-effort history features.
package platform

import (
	"time"

	"github.com/queuedesk/queuedesk-go/internal/log"
	"github.com/queuedesk/queuedesk-go/internal/transport"
)

// API exposes QueueDesk backend operations. All calls go through the
// shared session broker wired into the transport clients, so token
// attachment, refresh and teardown behave identically regardless of which
// surface is used.
type API struct {
	clients *transport.Clients
	log     *log.Logger
}

// New creates the API surface over the given transport clients
func New(clients *transport.Clients, logger *log.Logger) *API {
	return &API{
		clients: clients,
		log:     logger,
	}
}

// Queue is a waiting line inside a business
type Queue struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Open    bool   `json:"open"`
	Waiting int    `json:"waiting"`
}

// Ticket is one client's position in a queue
type Ticket struct {
	ID       string    `json:"id"`
	QueueID  string    `json:"queue_id"`
	Number   int       `json:"number"`
	Status   string    `json:"status"`
	IssuedAt time.Time `json:"issued_at"`
}

// Appointment is a scheduled visit
type Appointment struct {
	ID          string    `json:"id"`
	QueueID     string    `json:"queue_id"`
	ClientName  string    `json:"client_name"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
}

// AttendanceRecord is one historical visit kept in the event store
type AttendanceRecord struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	QueueID    string    `json:"queue_id"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}
