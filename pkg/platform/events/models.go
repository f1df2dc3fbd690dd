// Package events carries workflow transition notifications to an external bus.
//
// Emission is fire-and-forget: a transition is durable once persisted, and a
// publication failure is logged and counted but never returned to the caller.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Topic names a stream of workflow events.
type Topic string

const (
	TopicInscriptionCreated       Topic = "inscription.created"
	TopicInscriptionStatusChanged Topic = "inscription.status_changed"
	TopicDerogationRequested      Topic = "derogation.requested"
	TopicDerogationDecision       Topic = "derogation.decision"
	TopicSoutenanceCreated        Topic = "soutenance.created"
	TopicSoutenanceStatusChanged  Topic = "soutenance.status_changed"
	TopicSoutenanceScheduled      Topic = "soutenance.scheduled"
	TopicJuryInvitation           Topic = "soutenance.jury_invitation"
)

// AllTopics lists every topic the workflows emit, for provisioning.
func AllTopics() []Topic {
	return []Topic{
		TopicInscriptionCreated,
		TopicInscriptionStatusChanged,
		TopicDerogationRequested,
		TopicDerogationDecision,
		TopicSoutenanceCreated,
		TopicSoutenanceStatusChanged,
		TopicSoutenanceScheduled,
		TopicJuryInvitation,
	}
}

// Event is the flat payload published for every committed transition.
// Attributes carries topic-specific scalars (scheduled date and place,
// invited member email and role) without nesting.
type Event struct {
	ID          uuid.UUID         `json:"id"`
	Topic       Topic             `json:"topic"`
	Aggregate   string            `json:"aggregate"`
	AggregateID string            `json:"aggregate_id"`
	DoctorantID string            `json:"doctorant_id"`
	FromState   string            `json:"from_state,omitempty"`
	ToState     string            `json:"to_state"`
	Subject     string            `json:"subject,omitempty"`
	Comment     string            `json:"comment,omitempty"`
	ActorID     string            `json:"actor_id,omitempty"`
	ActorRole   string            `json:"actor_role,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Key is the partition key. Events for one record stay ordered.
func (e Event) Key() string {
	return e.AggregateID
}

// Marshal encodes the event payload.
func (e Event) Marshal() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", e.Topic, err)
	}
	return b, nil
}

// Unmarshal decodes a payload produced by Marshal.
func Unmarshal(payload []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return e, nil
}
