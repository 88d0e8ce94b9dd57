package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the risk
// engine.
type Metrics struct {
	AssessmentsTotal   prometheus.Counter
	AssessmentDuration prometheus.Histogram

	// Feed adapter metrics.
	FeedRequests  *prometheus.CounterVec // labels: feed={weather,events,satellite,hotspots}, outcome={success,error}
	FeedFallbacks *prometheus.CounterVec // labels: feed

	// Reasoning adapter metrics.
	ReasoningAttempts *prometheus.CounterVec // labels: model, outcome={success,error}
	ReasoningParses   *prometheus.CounterVec // labels: tier={json,text,deterministic}

	// Assessment audit stream.
	AssessmentsPublished prometheus.Counter
	PublishErrors        prometheus.Counter
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.FeedRequests,
		m.FeedFallbacks,
		m.ReasoningAttempts,
		m.ReasoningParses,
		m.AssessmentsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		AssessmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "assessments_total",
			Help:      "Total completed risk assessments.",
		}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wildfire_risk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete fetch-correlate-score-reason cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "feed_requests_total",
			Help:      "Upstream feed requests by feed and outcome.",
		}, []string{"feed", "outcome"}),
		FeedFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "feed_fallbacks_total",
			Help:      "Synthetic fallback substitutions by feed.",
		}, []string{"feed"}),
		ReasoningAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "reasoning_attempts_total",
			Help:      "Reasoning provider calls by model and outcome.",
		}, []string{"model", "outcome"}),
		ReasoningParses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "reasoning_parses_total",
			Help:      "Reasoning responses by the parse tier that produced the score.",
		}, []string{"tier"}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "assessments_published_total",
			Help:      "Assessments published to the audit stream.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "publish_errors_total",
			Help:      "Failed audit stream publishes (absorbed, never fatal).",
		}),
	}
}
