package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds process-wide HTTP and dependency metrics. Workflow metrics
// live with each workflow.
type Metrics struct {
	Requests         *prometheus.CounterVec
	DependencyHealth *prometheus.GaugeVec
}

func New() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doctorat_http_requests_total",
			Help: "HTTP requests by route pattern and status class",
		}, []string{"route", "status"}),
		DependencyHealth: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "doctorat_dependency_up",
			Help: "1 when the dependency answered its last health check",
		}, []string{"dependency"}),
	}
}

func (m *Metrics) ObserveRequest(route string, status int) {
	m.Requests.WithLabelValues(route, statusClass(status)).Inc()
}

func (m *Metrics) SetDependencyUp(name string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	m.DependencyHealth.WithLabelValues(name).Set(v)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
