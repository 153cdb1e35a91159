package pick

import (
	"log/slog"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/metrics"
)

// Outcome names the branch a pick resolved through.
type Outcome string

const (
	// OutcomeEmpty means nothing was under the point.
	OutcomeEmpty Outcome = "empty"
	// OutcomeFirst means the selection was empty and the base-or-topmost was chosen.
	OutcomeFirst Outcome = "first"
	// OutcomeRestart means the topmost candidate changed since the last pick.
	OutcomeRestart Outcome = "restart"
	// OutcomeRepeat means the base was selected and the click descended to the topmost.
	OutcomeRepeat Outcome = "repeat"
	// OutcomeBase means the base was selected by other means; it is kept.
	OutcomeBase Outcome = "base"
	// OutcomeStale means the stack in front of the active element changed.
	OutcomeStale Outcome = "stale"
	// OutcomeAdvance means the click moved one candidate deeper.
	OutcomeAdvance Outcome = "advance"
	// OutcomeWrap means the stack was exhausted and the cycle starts over.
	OutcomeWrap Outcome = "wrap"
	// OutcomeAnomaly means the active element could not be found in the stack.
	OutcomeAnomaly Outcome = "anomaly"
)

// Result describes one resolved pick.
type Result struct {
	// Candidate is the chosen candidate, nil when Outcome is OutcomeEmpty.
	Candidate Candidate
	// Topmost is the frontmost candidate under the point.
	Topmost Candidate
	// Outcome is the branch taken.
	Outcome Outcome
}

// Resolver implements click-to-cycle picking.
type Resolver struct {
	enum    *Enumerator
	bases   BaseLookup
	log     *slog.Logger
	metrics *metrics.Metrics
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the resolver logger.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.log = logging.WithComponent(l, "resolver")
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) ResolverOption {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// NewResolver creates a resolver. bases may be nil when the scene has no
// notion of group roots.
func NewResolver(enum *Enumerator, bases BaseLookup, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		enum:  enum,
		bases: bases,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enumerator returns the enumerator the resolver pulls from.
func (r *Resolver) Enumerator() *Enumerator {
	return r.enum
}

// Pick returns the candidate a click at p should select given the active
// selection, updating state. ok is false when nothing is under p.
func (r *Resolver) Pick(p geom.Point, sel Selection, state *CycleState) (Candidate, bool) {
	res := r.Resolve(p, sel, state)
	return res.Candidate, res.Candidate != nil
}

// Resolve is Pick with the full result.
func (r *Resolver) Resolve(p geom.Point, sel Selection, state *CycleState) Result {
	state.Retain()

	res := r.resolve(p, sel, state)
	r.metrics.PickResolved(string(res.Outcome))
	if res.Outcome == OutcomeAnomaly {
		r.log.Debug("pick fell back to first candidate",
			"error", ErrPrimaryNotInStack,
			"point", p.String(),
		)
	}
	return res
}

func (r *Resolver) resolve(p geom.Point, sel Selection, state *CycleState) Result {
	seq := r.enum.Overlap(p)

	topmost, ok := seq.Next()
	if !ok {
		return Result{Outcome: OutcomeEmpty}
	}

	base, hasBase := r.selectionBase(topmost)
	first := topmost
	if hasBase {
		first = base
	}
	// A base equal to the topmost candidate is not a distinct root.
	distinctBase := hasBase && base != topmost

	topFp := topmost.Fingerprint()
	prefix := topFp

	result := func(c Candidate, outcome Outcome) Result {
		return Result{Candidate: c, Topmost: topmost, Outcome: outcome}
	}
	restart := func(outcome Outcome) Result {
		state.store(topFp, topFp)
		return result(first, outcome)
	}

	var objects []Candidate
	if sel != nil {
		objects = sel.Objects()
	}
	if len(objects) == 0 {
		state.store(topFp, prefix)
		return result(first, OutcomeFirst)
	}

	onlyBase := distinctBase && len(objects) == 1 && objects[0] == base

	if !state.sameTopmost(topFp) {
		state.store(topFp, prefix)
		if onlyBase {
			return result(topmost, OutcomeRestart)
		}
		return result(first, OutcomeRestart)
	}

	if onlyBase {
		if state.samePrefix(prefix) {
			return result(topmost, OutcomeRepeat)
		}
		state.store(topFp, topFp)
		return result(base, OutcomeBase)
	}

	current := topmost
	primary := sel.Primary()
	if r.enum.Reaches(p, primary) {
		for current != primary {
			next, ok := seq.Next()
			if !ok {
				return restart(OutcomeAnomaly)
			}
			current = next
			prefix = Roll(prefix, current.Fingerprint())
		}
	}

	if !state.samePrefix(prefix) {
		return restart(OutcomeStale)
	}

	next, ok := seq.Next()
	if !ok {
		return restart(OutcomeWrap)
	}
	prefix = Roll(prefix, next.Fingerprint())

	// The base is owned by the onlyBase branch; never land on it here.
	if hasBase && next == base {
		next, ok = seq.Next()
		if !ok {
			return restart(OutcomeWrap)
		}
		prefix = Roll(prefix, next.Fingerprint())
	}

	state.store(topFp, prefix)
	return result(next, OutcomeAdvance)
}

func (r *Resolver) selectionBase(c Candidate) (Candidate, bool) {
	if r.bases == nil {
		return nil, false
	}
	base, ok := r.bases.SelectionBase(c)
	if !ok || base == nil {
		return nil, false
	}
	return base, true
}
