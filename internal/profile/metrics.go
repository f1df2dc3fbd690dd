package profile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks cache efficiency and degraded lookups.
type Metrics struct {
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	Degraded     prometheus.Counter
	BreakerState prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_profile_cache_hits_total",
			Help: "Profile lookups served from the cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_profile_cache_misses_total",
			Help: "Profile lookups that went to the directory",
		}),
		Degraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doctorat_profile_degraded_total",
			Help: "Profile lookups answered with a placeholder",
		}),
		BreakerState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "doctorat_profile_breaker_open",
			Help: "1 while the directory circuit breaker is open",
		}),
	}
}
