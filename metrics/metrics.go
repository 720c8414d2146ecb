package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the planner's Prometheus collectors.
type Metrics struct {
	PlansSynthesized   prometheus.Counter
	ValidationFailures prometheus.Counter
	SynthesisFailures  prometheus.Counter
	Exports            *prometheus.CounterVec
	SynthesisDuration  prometheus.Histogram
	ActiveSessions     prometheus.GaugeFunc
}

// New registers the collectors on reg. activeSessions is sampled on scrape.
func New(reg prometheus.Registerer, activeSessions func() float64) *Metrics {
	m := &Metrics{
		PlansSynthesized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "plans_synthesized_total",
			Help:      "Trip plans synthesized successfully.",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "validation_failures_total",
			Help:      "Requests rejected for missing required fields.",
		}),
		SynthesisFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "synthesis_failures_total",
			Help:      "Synthesis attempts that failed after validation.",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tripplanner",
			Name:      "exports_total",
			Help:      "Plan exports by format.",
		}, []string{"format"}),
		SynthesisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tripplanner",
			Name:      "synthesis_duration_seconds",
			Help:      "Time spent validating and synthesizing a plan.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		ActiveSessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "tripplanner",
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}, activeSessions),
	}
	reg.MustRegister(
		m.PlansSynthesized,
		m.ValidationFailures,
		m.SynthesisFailures,
		m.Exports,
		m.SynthesisDuration,
		m.ActiveSessions,
	)
	return m
}
