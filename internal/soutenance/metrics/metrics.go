package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the defense workflow.
type Metrics struct {
	Transitions          *prometheus.CounterVec
	Rejections           prometheus.Counter
	Invitations          prometheus.Counter
	PrerequisiteFailures prometheus.Counter
	TransitionDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorat_soutenance_transitions_total",
			Help: "Total number of committed defense state changes",
		}, []string{"from", "to"}),
		Rejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_soutenance_rejections_total",
			Help: "Total number of defenses rejected",
		}),
		Invitations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_soutenance_jury_invitations_total",
			Help: "Total number of jury invitations emitted",
		}),
		PrerequisiteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_soutenance_prerequisite_failures_total",
			Help: "Total number of prerequisite validations refused for unmet thresholds",
		}),
		TransitionDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "doctorat_soutenance_action_duration_seconds",
			Help:    "Duration of defense actions including persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"action"}),
	}
}

func (m *Metrics) IncTransition(from, to string) {
	m.Transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) IncRejected() {
	m.Rejections.Inc()
}

func (m *Metrics) AddInvitations(n int) {
	m.Invitations.Add(float64(n))
}

func (m *Metrics) IncPrerequisiteFailure() {
	m.PrerequisiteFailures.Inc()
}

func (m *Metrics) ObserveAction(action string, start time.Time) {
	m.TransitionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}
