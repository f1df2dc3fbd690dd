package events

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"doctorat/pkg/requestcontext"
)

// Emitter stamps events with request metadata and hands them to a Sink.
// Emit never fails from the caller's point of view.
type Emitter struct {
	sink    Sink
	logger  *slog.Logger
	metrics *Metrics
}

type EmitterOption func(*Emitter)

func WithLogger(logger *slog.Logger) EmitterOption {
	return func(e *Emitter) {
		e.logger = logger
	}
}

func WithMetrics(m *Metrics) EmitterOption {
	return func(e *Emitter) {
		e.metrics = m
	}
}

func NewEmitter(sink Sink, opts ...EmitterOption) *Emitter {
	e := &Emitter{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit publishes one event. Missing ID, timestamp, request id and actor are
// filled from ctx.
func (e *Emitter) Emit(ctx context.Context, event Event) {
	if e == nil || e.sink == nil {
		return
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ActorRole == "" {
		if actor := requestcontext.Actor(ctx); actor.Present() {
			event.ActorRole = actor.Role.String()
			if !actor.ID.IsNil() {
				event.ActorID = actor.ID.String()
			}
		}
	}

	payload, err := event.Marshal()
	if err != nil {
		e.fail(ctx, event, err)
		return
	}
	if err := e.sink.Publish(ctx, event.Topic, event.Key(), payload); err != nil {
		e.fail(ctx, event, err)
		return
	}
	if e.metrics != nil {
		e.metrics.IncPublished(event.Topic)
	}
}

// EmitAll publishes events in order. A failure on one does not stop the rest.
func (e *Emitter) EmitAll(ctx context.Context, batch []Event) {
	for _, event := range batch {
		e.Emit(ctx, event)
	}
}

func (e *Emitter) fail(ctx context.Context, event Event, err error) {
	e.logger.ErrorContext(ctx, "failed to publish workflow event",
		"topic", string(event.Topic),
		"aggregate_id", event.AggregateID,
		"to_state", event.ToState,
		"request_id", event.RequestID,
		"error", err,
	)
	if e.metrics != nil {
		e.metrics.IncFailed(event.Topic)
	}
}
