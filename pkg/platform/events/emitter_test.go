package events_test

//go:generate mockgen -source=sink.go -destination=mocks/mocks.go -package=mocks Sink

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/events"
	"doctorat/pkg/platform/events/memory"
	eventmocks "doctorat/pkg/platform/events/mocks"
	"doctorat/pkg/requestcontext"
)

func TestEmitter_StampsRequestMetadata(t *testing.T) {
	sink := memory.NewSink()
	emitter := events.NewEmitter(sink)

	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	actorID := id.ActorID(uuid.New())
	ctx := requestcontext.WithTime(context.Background(), now)
	ctx = requestcontext.WithRequestID(ctx, "req-42")
	ctx = requestcontext.WithActor(ctx, actorID, id.RoleSupervisor)

	emitter.Emit(ctx, events.Event{
		Topic:       events.TopicInscriptionStatusChanged,
		Aggregate:   "inscription",
		AggregateID: "ins-1",
		FromState:   "PENDING_SUPERVISOR",
		ToState:     "PENDING_ADMIN",
		Comment:     "ok",
	})

	got := sink.Events(events.TopicInscriptionStatusChanged)
	require.Len(t, got, 1)
	assert.NotEqual(t, uuid.Nil, got[0].ID)
	assert.True(t, now.Equal(got[0].OccurredAt))
	assert.Equal(t, "req-42", got[0].RequestID)
	assert.Equal(t, actorID.String(), got[0].ActorID)
	assert.Equal(t, "SUPERVISOR", got[0].ActorRole)
	assert.Equal(t, "ins-1", sink.Messages()[0].Key)
}

func TestEmitter_SwallowsSinkFailures(t *testing.T) {
	var logs bytes.Buffer
	sink := memory.NewSink()
	sink.FailWith(errors.New("broker down"))
	emitter := events.NewEmitter(sink, events.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), events.Event{Topic: events.TopicSoutenanceCreated, AggregateID: "s-1"})
	})
	assert.Empty(t, sink.Messages())
	assert.Contains(t, logs.String(), "failed to publish workflow event")
	assert.Contains(t, logs.String(), "broker down")
}

func TestEmitter_EmitAllContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := eventmocks.NewMockSink(ctrl)

	gomock.InOrder(
		sink.EXPECT().Publish(gomock.Any(), events.TopicJuryInvitation, "s-1", gomock.Any()).Return(errors.New("timeout")),
		sink.EXPECT().Publish(gomock.Any(), events.TopicJuryInvitation, "s-1", gomock.Any()).Return(nil),
	)

	emitter := events.NewEmitter(sink, events.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	emitter.EmitAll(context.Background(), []events.Event{
		{Topic: events.TopicJuryInvitation, AggregateID: "s-1", Attributes: map[string]string{"member_email": "a@univ.fr"}},
		{Topic: events.TopicJuryInvitation, AggregateID: "s-1", Attributes: map[string]string{"member_email": "b@univ.fr"}},
	})
}

func TestEmitter_NilSafe(t *testing.T) {
	var emitter *events.Emitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), events.Event{Topic: events.TopicInscriptionCreated})
	})
}
