// Package kafka publishes workflow events to Kafka-compatible brokers.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"doctorat/pkg/platform/events"
)

const (
	clientID           = "doctorat"
	defaultPartitions  = 3
	defaultReplication = 1
	produceTimeout     = 10 * time.Second
	closeFlushTimeout  = 5 * time.Second
)

// Producer is an events.Sink backed by a franz-go client. Topic names are
// "<prefix>.<event topic>".
//
// Publish is asynchronous: it buffers the record and returns, and delivery
// failures are logged and counted from the produce callback. Sync returns a
// sink that waits for the broker ack, for callers that must know the outcome.
type Producer struct {
	client  *kgo.Client
	prefix  string
	logger  *slog.Logger
	metrics *events.Metrics
	kopts   []kgo.Opt
}

type Option func(*Producer)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Producer) {
		p.logger = logger
	}
}

func WithMetrics(m *events.Metrics) Option {
	return func(p *Producer) {
		p.metrics = m
	}
}

// WithClientOpts appends franz-go options to the defaults.
func WithClientOpts(opts ...kgo.Opt) Option {
	return func(p *Producer) {
		p.kopts = append(p.kopts, opts...)
	}
}

// NewProducer connects to brokers.
func NewProducer(brokers []string, prefix string, opts ...Option) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	p := &Producer{prefix: strings.TrimSuffix(prefix, "."), logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.RecordDeliveryTimeout(produceTimeout),
	}
	client, err := kgo.NewClient(append(base, p.kopts...)...)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	p.client = client
	return p, nil
}

// TopicName maps an event topic to the broker topic.
func (p *Producer) TopicName(topic events.Topic) string {
	if p.prefix == "" {
		return string(topic)
	}
	return p.prefix + "." + string(topic)
}

func (p *Producer) record(topic events.Topic, key string, payload []byte) *kgo.Record {
	return &kgo.Record{
		Topic: p.TopicName(topic),
		Key:   []byte(key),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}
}

// Publish buffers the record and returns without waiting for the broker.
// The record outlives ctx cancellation; it is bounded by the delivery timeout.
func (p *Producer) Publish(ctx context.Context, topic events.Topic, key string, payload []byte) error {
	p.client.Produce(context.WithoutCancel(ctx), p.record(topic, key, payload), func(r *kgo.Record, err error) {
		if err == nil {
			return
		}
		if p.metrics != nil {
			p.metrics.IncFailed(topic)
		}
		p.logger.Error("kafka delivery failed",
			"topic", r.Topic,
			"key", string(r.Key),
			"error", err,
		)
	})
	return nil
}

// Sync returns a sink whose Publish waits for the broker ack.
func (p *Producer) Sync() events.Sink {
	return syncSink{p: p}
}

type syncSink struct {
	p *Producer
}

func (s syncSink) Publish(ctx context.Context, topic events.Topic, key string, payload []byte) error {
	record := s.p.record(topic, key, payload)
	if err := s.p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce %s: %w", record.Topic, err)
	}
	return nil
}

// Flush waits until every buffered record is acked or failed.
func (p *Producer) Flush(ctx context.Context) error {
	return p.client.Flush(ctx)
}

// EnsureTopics creates every workflow topic that does not exist yet.
func (p *Producer) EnsureTopics(ctx context.Context) error {
	names := make([]string, 0, len(events.AllTopics()))
	for _, t := range events.AllTopics() {
		names = append(names, p.TopicName(t))
	}
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopics(ctx, defaultPartitions, defaultReplication, nil, names...)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for _, r := range resp.Sorted() {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Health pings any seed broker.
func (p *Producer) Health(ctx context.Context) error {
	return p.client.Ping(ctx)
}

// Close flushes buffered records, waiting at most closeFlushTimeout, and
// closes the client.
func (p *Producer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeFlushTimeout)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("kafka flush on close failed", "error", err)
	}
	p.client.Close()
}
