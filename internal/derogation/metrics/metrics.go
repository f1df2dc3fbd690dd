package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the derogation workflow.
type Metrics struct {
	Requested          *prometheus.CounterVec
	Transitions        *prometheus.CounterVec
	Expired            prometheus.Counter
	TransitionDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Requested: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorat_derogations_requested_total",
			Help: "Total number of derogation requests by exemption type",
		}, []string{"type"}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorat_derogation_transitions_total",
			Help: "Total number of committed derogation transitions",
		}, []string{"from", "to"}),
		Expired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_derogations_expired_total",
			Help: "Total number of approved derogations moved to EXPIRED by the sweep",
		}),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "doctorat_derogation_transition_duration_seconds",
			Help:    "Duration of derogation transitions including persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncRequested(exemptionType string) {
	m.Requested.WithLabelValues(exemptionType).Inc()
}

func (m *Metrics) IncTransition(from, to string) {
	m.Transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) IncExpired() {
	m.Expired.Inc()
}

// ObserveTransition records the duration of a transition started at start.
func (m *Metrics) ObserveTransition(start time.Time) {
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}
