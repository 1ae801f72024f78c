// Package metrics provides observability for the eligibility engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the eligibility module.
type Metrics struct {
	// Per-scheme verdicts by status
	SchemeOutcome *prometheus.CounterVec

	// Full batch evaluation latency
	EvaluateLatency prometheus.Histogram

	// Report cache effectiveness
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates a Metrics instance with all eligibility metrics registered.
func New() *Metrics {
	return &Metrics{
		SchemeOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "yojana_eligibility_outcomes_total",
			Help: "Total per-scheme eligibility verdicts by status",
		}, []string{"status"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "yojana_eligibility_evaluate_duration_seconds",
			Help:    "Duration of full batch eligibility evaluation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "yojana_eligibility_report_cache_hits_total",
			Help: "Eligibility report cache hits",
		}),

		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "yojana_eligibility_report_cache_misses_total",
			Help: "Eligibility report cache misses",
		}),
	}
}

// IncrementOutcome records one per-scheme verdict.
func (m *Metrics) IncrementOutcome(status string) {
	if m != nil {
		m.SchemeOutcome.WithLabelValues(status).Inc()
	}
}

// ObserveEvaluateLatency records the batch evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// IncrementCache records a report cache lookup outcome.
func (m *Metrics) IncrementCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Inc()
	} else {
		m.CacheMisses.Inc()
	}
}
