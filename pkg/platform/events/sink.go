package events

import (
	"context"
	"log/slog"
)

// Sink delivers an encoded event. Implementations: Kafka producer, Postgres
// outbox, in-memory recorder, log-only.
type Sink interface {
	Publish(ctx context.Context, topic Topic, key string, payload []byte) error
}

// LogSink writes events to the logger. Used when no bus is configured.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(ctx context.Context, topic Topic, key string, payload []byte) error {
	s.logger.InfoContext(ctx, "workflow event",
		"topic", string(topic),
		"key", key,
		"payload", string(payload),
	)
	return nil
}
