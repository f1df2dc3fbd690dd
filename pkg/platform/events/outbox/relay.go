package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"doctorat/pkg/platform/events"
)

// Store is the persistence side of the outbox used by the relay.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	FetchPending(ctx context.Context, limit int) ([]Message, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, cause string, maxAttempts int) (Status, error)
}

// Config tunes the relay. Zero fields take the defaults below.
type Config struct {
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
}

const (
	defaultInterval    = 2 * time.Second
	defaultBatchSize   = 100
	defaultMaxAttempts = 5
)

// Relay delivers pending outbox rows to the bus. Delivery is at-least-once:
// a crash between publish and mark resends the row. Rows sharing a key are
// delivered in insertion order.
type Relay struct {
	store   Store
	sink    events.Sink
	cfg     Config
	logger  *slog.Logger
	metrics *events.Metrics
	now     func() time.Time
}

type RelayOption func(*Relay)

func WithRelayLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithRelayMetrics(m *events.Metrics) RelayOption {
	return func(r *Relay) {
		r.metrics = m
	}
}

func NewRelay(store Store, sink events.Sink, cfg Config, opts ...RelayOption) *Relay {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	r := &Relay{store: store, sink: sink, cfg: cfg, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drains the outbox every Interval until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()
	for {
		if _, err := r.RelayOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.ErrorContext(ctx, "outbox relay batch failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes one batch and returns how many rows were delivered.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	delivered := 0
	err := r.store.RunInTx(ctx, func(txCtx context.Context) error {
		batch, err := r.store.FetchPending(txCtx, r.cfg.BatchSize)
		if err != nil {
			return err
		}
		// A failed row holds back later rows with the same key until it is
		// delivered or parked.
		blocked := make(map[string]struct{})
		for _, m := range batch {
			if _, held := blocked[m.Key]; held && m.Key != "" {
				continue
			}
			if err := r.sink.Publish(txCtx, m.Topic, m.Key, m.Payload); err != nil {
				blocked[m.Key] = struct{}{}
				status, markErr := r.store.MarkFailed(txCtx, m.ID, err.Error(), r.cfg.MaxAttempts)
				if markErr != nil {
					return markErr
				}
				r.logger.WarnContext(txCtx, "outbox delivery failed",
					"outbox_id", m.ID,
					"topic", string(m.Topic),
					"attempt", m.Attempts+1,
					"status", string(status),
					"error", err,
				)
				if status == StatusParked && r.metrics != nil {
					r.metrics.IncParked()
				}
				continue
			}
			if err := r.store.MarkPublished(txCtx, m.ID, r.now()); err != nil {
				return err
			}
			delivered++
			if r.metrics != nil {
				r.metrics.IncRelayed()
			}
		}
		return nil
	})
	return delivered, err
}
