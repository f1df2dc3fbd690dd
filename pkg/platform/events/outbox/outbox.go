// Package outbox implements the transactional outbox for workflow events.
//
// The Postgres store is an events.Sink: publishing inserts a row, inside the
// caller's transaction when one is in context. A Relay drains pending rows to
// the real bus with a bounded number of attempts per message.
package outbox

import (
	"time"

	"github.com/google/uuid"

	"doctorat/pkg/platform/events"
)

// Status of an outbox row.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusParked    Status = "parked"
)

// Message is one outbox row.
type Message struct {
	ID          uuid.UUID
	Topic       events.Topic
	Key         string
	Payload     []byte
	Status      Status
	Attempts    int
	LastError   string
	CreatedAt   time.Time
	PublishedAt *time.Time
}
