package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"doctorat/pkg/platform/events"
)

// MemoryStore is an in-process outbox with the same semantics as PostgresStore.
// Rows are kept in insertion order.
type MemoryStore struct {
	mu   sync.Mutex
	rows []*Message
	byID map[uuid.UUID]*Message
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[uuid.UUID]*Message), now: time.Now}
}

func (s *MemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *MemoryStore) Publish(_ context.Context, topic events.Topic, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m := &Message{ID: uuid.New(), Topic: topic, Key: key, Payload: cp, Status: StatusPending, CreatedAt: s.now()}
	s.rows = append(s.rows, m)
	s.byID[m.ID] = m
	return nil
}

func (s *MemoryStore) FetchPending(_ context.Context, limit int) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Message
	for _, m := range s.rows {
		if m.Status == StatusPending {
			out = append(out, *m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) MarkPublished(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.byID[id]; ok {
		m.Status = StatusPublished
		m.Attempts++
		m.PublishedAt = &at
	}
	return nil
}

func (s *MemoryStore) MarkFailed(_ context.Context, id uuid.UUID, cause string, maxAttempts int) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return "", nil
	}
	m.Attempts++
	m.LastError = cause
	if m.Attempts >= maxAttempts {
		m.Status = StatusParked
	}
	return m.Status, nil
}

// All returns every row in insertion order; test helper.
func (s *MemoryStore) All() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, 0, len(s.rows))
	for _, m := range s.rows {
		out = append(out, *m)
	}
	return out
}
