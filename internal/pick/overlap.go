package pick

import (
	"log/slog"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/metrics"
)

// Enumerator builds overlap sequences against one Picker.
type Enumerator struct {
	picker  Picker
	log     *slog.Logger
	metrics *metrics.Metrics
}

// EnumeratorOption configures an Enumerator.
type EnumeratorOption func(*Enumerator)

// WithEnumeratorLogger sets the logger used for contract-violation diagnostics.
func WithEnumeratorLogger(l *slog.Logger) EnumeratorOption {
	return func(e *Enumerator) {
		e.log = logging.WithComponent(l, "overlap")
	}
}

// WithEnumeratorMetrics sets the metrics sink.
func WithEnumeratorMetrics(m *metrics.Metrics) EnumeratorOption {
	return func(e *Enumerator) {
		e.metrics = m
	}
}

// NewEnumerator creates an enumerator over picker.
func NewEnumerator(picker Picker, opts ...EnumeratorOption) *Enumerator {
	e := &Enumerator{
		picker: picker,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Overlap starts a fresh front-to-back sequence at p.
func (e *Enumerator) Overlap(p geom.Point) *Overlap {
	return &Overlap{enum: e, point: p}
}

// Collect materializes the whole sequence at p.
func (e *Enumerator) Collect(p geom.Point) []Candidate {
	return e.Overlap(p).Collect()
}

// Reaches reports whether c lies under p. It uses the picker's Prober when
// available; otherwise it assumes c is reachable and leaves the decision to
// the walk over the sequence.
func (e *Enumerator) Reaches(p geom.Point, c Candidate) bool {
	if c == nil {
		return false
	}
	if prober, ok := e.picker.(Prober); ok {
		return prober.Reaches(p, c)
	}
	return true
}

// Overlap is a lazy sequence of distinct candidates under one point, ordered
// front to back. It is consumed once; start a new one for every pick.
type Overlap struct {
	enum    *Enumerator
	point   geom.Point
	exclude []Candidate
	done    bool
}

// Point returns the screen point being enumerated.
func (o *Overlap) Point() geom.Point {
	return o.point
}

// Next returns the next candidate behind everything yielded so far.
func (o *Overlap) Next() (Candidate, bool) {
	if o.done {
		return nil, false
	}

	c, ok := o.enum.picker.Nearest(o.point, o.exclude)
	if !ok || c == nil {
		o.finish()
		return nil, false
	}

	if Contains(o.exclude, c) {
		o.enum.log.Warn("truncating overlap sequence",
			"error", ErrExclusionIgnored,
			"point", o.point.String(),
			"fingerprint", c.Fingerprint(),
			"depth", len(o.exclude),
		)
		o.enum.metrics.ContractViolation()
		o.finish()
		return nil, false
	}

	o.exclude = append(o.exclude, c)
	return c, true
}

// Yielded returns the candidates produced so far. The slice must not be modified.
func (o *Overlap) Yielded() []Candidate {
	return o.exclude
}

// Collect drains the sequence and returns every candidate it produced,
// including any yielded before the call.
func (o *Overlap) Collect() []Candidate {
	for {
		if _, ok := o.Next(); !ok {
			break
		}
	}
	out := make([]Candidate, len(o.exclude))
	copy(out, o.exclude)
	return out
}

func (o *Overlap) finish() {
	o.done = true
	o.enum.metrics.OverlapEnumerated(len(o.exclude))
}
