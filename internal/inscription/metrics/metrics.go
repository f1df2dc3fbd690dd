package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the inscription workflow.
type Metrics struct {
	Created            *prometheus.CounterVec
	Transitions        *prometheus.CounterVec
	EligibilityDenied  prometheus.Counter
	TransitionDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Created: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorat_inscriptions_created_total",
			Help: "Total number of inscription drafts created by kind",
		}, []string{"kind"}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorat_inscription_transitions_total",
			Help: "Total number of committed inscription transitions",
		}, []string{"from", "to"}),
		EligibilityDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_inscription_eligibility_denied_total",
			Help: "Total number of renewals blocked by the duration rules",
		}),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "doctorat_inscription_transition_duration_seconds",
			Help:    "Duration of inscription transitions including persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncCreated(kind string) {
	m.Created.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncTransition(from, to string) {
	m.Transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) IncEligibilityDenied() {
	m.EligibilityDenied.Inc()
}

func (m *Metrics) ObserveTransition(start time.Time) {
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}
