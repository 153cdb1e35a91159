// Package metrics exposes Prometheus collectors for viewport picking.
//
// All recording methods are safe on a nil *Metrics so components can be
// constructed without instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scenepick"

// Metrics holds the picking collectors.
type Metrics struct {
	picks              *prometheus.CounterVec
	overlapDepth       prometheus.Histogram
	contractViolations prometheus.Counter
	marqueeRecomputes  prometheus.Counter
	marqueeSkipped     prometheus.Counter
	marqueeCancelled   prometheus.Counter
	piercing           *prometheus.CounterVec
	commits            *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer for
// the process-wide registry or prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		picks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pick_total",
			Help:      "Click-cycle resolutions by outcome",
		}, []string{"outcome"}),
		overlapDepth: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overlap_depth",
			Help:      "Number of candidates enumerated per overlap sequence",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		contractViolations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_contract_violations_total",
			Help:      "Nearest-candidate queries that returned an excluded candidate",
		}),
		marqueeRecomputes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marquee_recompute_total",
			Help:      "Rectangle selections that produced a new selection",
		}),
		marqueeSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marquee_unchanged_total",
			Help:      "Rectangle updates skipped because candidates and mode were unchanged",
		}),
		marqueeCancelled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marquee_cancelled_total",
			Help:      "Drag gestures cancelled before release",
		}),
		piercing: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "piercing_menu_total",
			Help:      "Piercing menu sessions by result",
		}, []string{"result"}),
		commits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_commit_total",
			Help:      "Selection replacements by source",
		}, []string{"source"}),
	}
}

// PickResolved records one resolver outcome.
func (m *Metrics) PickResolved(outcome string) {
	if m == nil {
		return
	}
	m.picks.WithLabelValues(outcome).Inc()
}

// OverlapEnumerated records how many candidates an overlap sequence produced.
func (m *Metrics) OverlapEnumerated(n int) {
	if m == nil {
		return
	}
	m.overlapDepth.Observe(float64(n))
}

// ContractViolation records a nearest-candidate query ignoring its exclusion set.
func (m *Metrics) ContractViolation() {
	if m == nil {
		return
	}
	m.contractViolations.Inc()
}

// MarqueeRecomputed records a rectangle pass that assigned a new selection.
func (m *Metrics) MarqueeRecomputed() {
	if m == nil {
		return
	}
	m.marqueeRecomputes.Inc()
}

// MarqueeSkipped records a rectangle pass that found nothing new.
func (m *Metrics) MarqueeSkipped() {
	if m == nil {
		return
	}
	m.marqueeSkipped.Inc()
}

// MarqueeCancelled records a drag cancelled by focus loss.
func (m *Metrics) MarqueeCancelled() {
	if m == nil {
		return
	}
	m.marqueeCancelled.Inc()
}

// PiercingClosed records how a piercing menu session ended ("commit" or "rollback").
func (m *Metrics) PiercingClosed(result string) {
	if m == nil {
		return
	}
	m.piercing.WithLabelValues(result).Inc()
}

// SelectionCommitted records a selection replacement from source.
func (m *Metrics) SelectionCommitted(source string) {
	if m == nil {
		return
	}
	m.commits.WithLabelValues(source).Inc()
}
