package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"doctorat/pkg/platform/events"
)

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(nil, "doctorat")
	require.Error(t, err)
}

func TestTopicName(t *testing.T) {
	p, err := NewProducer([]string{"localhost:9092"}, "doctorat.")
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "doctorat.soutenance.jury_invitation", p.TopicName(events.TopicJuryInvitation))

	p.prefix = ""
	assert.Equal(t, "inscription.created", p.TopicName(events.TopicInscriptionCreated))
}

func TestPublish_DoesNotWaitForTheBroker(t *testing.T) {
	p, err := NewProducer([]string{"127.0.0.1:1"}, "doctorat",
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClientOpts(kgo.RecordDeliveryTimeout(100*time.Millisecond)),
	)
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err = p.Publish(ctx, events.TopicInscriptionCreated, "ins-1", []byte(`{}`))
	assert.NoError(t, err, "delivery errors surface in the callback")
	assert.Less(t, time.Since(start), time.Second)
}
