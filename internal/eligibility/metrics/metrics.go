package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the eligibility module.
type Metrics struct {
	// Upstream lookup latencies by source
	LookupLatency *prometheus.HistogramVec

	// Verdicts by status and eligibility
	VerdictOutcome *prometheus.CounterVec

	// Failed adjudications by error code
	AdjudicationFailures *prometheus.CounterVec

	// Overall adjudication latency
	AdjudicateLatency prometheus.Histogram
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the eligibility metrics on reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sotcredit_lookup_duration_seconds",
			Help:    "Duration of upstream record lookups by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}), // source: "invoice", "delivery", "credit_memos"

		VerdictOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sotcredit_verdicts_total",
			Help: "Total line verdicts by status and eligibility",
		}, []string{"status", "eligible"}),

		AdjudicationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sotcredit_adjudication_failures_total",
			Help: "Total adjudications aborted by a hard failure, by error code",
		}, []string{"code"}),

		AdjudicateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sotcredit_adjudicate_duration_seconds",
			Help:    "Duration of full adjudication including resolution and record lookups",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// ObserveLookupLatency records the duration of one upstream lookup.
func (m *Metrics) ObserveLookupLatency(source string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementVerdict records a line verdict.
func (m *Metrics) IncrementVerdict(status string, eligible bool) {
	if m != nil {
		m.VerdictOutcome.WithLabelValues(status, strconv.FormatBool(eligible)).Inc()
	}
}

// IncrementFailure records an aborted adjudication.
func (m *Metrics) IncrementFailure(code string) {
	if m != nil {
		m.AdjudicationFailures.WithLabelValues(code).Inc()
	}
}

// ObserveAdjudicateLatency records the total adjudication duration.
func (m *Metrics) ObserveAdjudicateLatency(d time.Duration) {
	if m != nil {
		m.AdjudicateLatency.Observe(d.Seconds())
	}
}
