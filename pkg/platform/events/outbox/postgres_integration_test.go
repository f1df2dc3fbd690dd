//go:build integration

package outbox_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"doctorat/pkg/platform/events"
	"doctorat/pkg/platform/events/memory"
	"doctorat/pkg/platform/events/outbox"
	"doctorat/pkg/testutil/containers"
)

type PostgresOutboxSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *outbox.PostgresStore
	sink     *memory.Sink
}

func TestPostgresOutboxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresOutboxSuite))
}

func (s *PostgresOutboxSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = outbox.NewPostgresStore(s.postgres.DB)
}

func (s *PostgresOutboxSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "outbox"))
	s.sink = memory.NewSink()
}

func (s *PostgresOutboxSuite) enqueue(n int) {
	ctx := context.Background()
	for range n {
		payload, err := events.Event{Topic: events.TopicInscriptionCreated, AggregateID: "ins-1", ToState: "DRAFT"}.Marshal()
		s.Require().NoError(err)
		s.Require().NoError(s.store.Publish(ctx, events.TopicInscriptionCreated, "ins-1", payload))
	}
}

func (s *PostgresOutboxSuite) countByStatus(status string) int {
	var n int
	err := s.postgres.DB.QueryRowContext(context.Background(),
		`SELECT count(*) FROM outbox WHERE status = $1`, status).Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *PostgresOutboxSuite) TestRelayDeliversInOrder() {
	s.enqueue(3)
	relay := outbox.NewRelay(s.store, s.sink, outbox.Config{BatchSize: 10})

	delivered, err := relay.RelayOnce(context.Background())
	s.Require().NoError(err)
	s.Equal(3, delivered)
	s.Len(s.sink.Events(events.TopicInscriptionCreated), 3)
	s.Equal(3, s.countByStatus("published"))

	delivered, err = relay.RelayOnce(context.Background())
	s.Require().NoError(err)
	s.Zero(delivered, "published rows are not resent")
}

func (s *PostgresOutboxSuite) TestFailingBusParksAfterMaxAttempts() {
	s.enqueue(1)
	s.sink.FailWith(errors.New("broker unreachable"))
	relay := outbox.NewRelay(s.store, s.sink, outbox.Config{MaxAttempts: 2})

	_, err := relay.RelayOnce(context.Background())
	s.Require().NoError(err)
	s.Equal(1, s.countByStatus("pending"))

	_, err = relay.RelayOnce(context.Background())
	s.Require().NoError(err)
	s.Equal(1, s.countByStatus("parked"))

	var lastError string
	s.Require().NoError(s.postgres.DB.QueryRow(`SELECT last_error FROM outbox`).Scan(&lastError))
	s.Contains(lastError, "broker unreachable")
}
