package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks event publication outcomes per topic.
type Metrics struct {
	Published       *prometheus.CounterVec
	PublishFailures *prometheus.CounterVec
	OutboxRelayed   prometheus.Counter
	OutboxParked    prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		Published: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorat_events_published_total",
			Help: "Total number of workflow events accepted by the sink",
		}, []string{"topic"}),
		PublishFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorat_events_publish_failures_total",
			Help: "Total number of workflow events the sink refused (logged and dropped)",
		}, []string{"topic"}),
		OutboxRelayed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_outbox_relayed_total",
			Help: "Total number of outbox messages delivered to the bus",
		}),
		OutboxParked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_outbox_parked_total",
			Help: "Total number of outbox messages parked after exhausting delivery attempts",
		}),
	}
}

func (m *Metrics) IncPublished(topic Topic) {
	m.Published.WithLabelValues(string(topic)).Inc()
}

func (m *Metrics) IncFailed(topic Topic) {
	m.PublishFailures.WithLabelValues(string(topic)).Inc()
}

func (m *Metrics) IncRelayed() {
	m.OutboxRelayed.Inc()
}

func (m *Metrics) IncParked() {
	m.OutboxParked.Inc()
}
