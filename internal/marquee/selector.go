package marquee

import (
	"log/slog"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/input/mouse"
	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/metrics"
	"github.com/dshills/scenepick/internal/pick"
	"github.com/dshills/scenepick/internal/selection"
)

// Selector drives one viewport's press/drag/release gestures.
//
// Selector is not safe for concurrent use; feed it from the input loop.
type Selector struct {
	rects    pick.RectQuerier
	resolver *pick.Resolver
	store    *selection.Store
	state    *pick.CycleState

	action  key.Modifier
	drag    *mouse.DragTracker
	log     *slog.Logger
	metrics *metrics.Metrics

	// existing is the selection captured at press time.
	existing selection.Set

	// cached is the candidate set of the last recompute.
	cached     []pick.Candidate
	cachedMode selection.Type
	hasCache   bool
}

// Option configures a Selector.
type Option func(*Selector)

// WithThreshold sets the drag threshold in pixels.
func WithThreshold(px float64) Option {
	return func(s *Selector) {
		s.drag = mouse.NewDragTracker(px)
	}
}

// WithActionModifier sets the modifier that toggles subtractive selection.
func WithActionModifier(m key.Modifier) Option {
	return func(s *Selector) {
		s.action = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Selector) {
		s.log = logging.WithComponent(l, "marquee")
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Selector) {
		s.metrics = m
	}
}

// New creates a selector. state is the cycle memory of the owning viewport
// and is used for click resolution on release.
func New(rects pick.RectQuerier, resolver *pick.Resolver, store *selection.Store, state *pick.CycleState, opts ...Option) *Selector {
	s := &Selector{
		rects:    rects,
		resolver: resolver,
		store:    store,
		state:    state,
		action:   key.DefaultAction(),
		drag:     mouse.NewDragTracker(mouse.DefaultDragThreshold),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pressed reports whether a gesture is in progress.
func (s *Selector) Pressed() bool {
	return s.drag.Pressed()
}

// Dragging reports whether the gesture crossed the drag threshold.
func (s *Selector) Dragging() bool {
	return s.drag.Dragging()
}

// Rect returns the current marquee rectangle. ok is false when not dragging.
func (s *Selector) Rect() (geom.Rect, bool) {
	if !s.drag.Dragging() {
		return geom.Rect{}, false
	}
	return s.drag.Rect(), true
}

// Press starts a gesture at p and snapshots the current selection.
func (s *Selector) Press(p geom.Point) {
	s.drag.Start(p, mouse.ButtonLeft)
	s.existing = s.store.Current()
	s.clearCache()
}

// Move updates the gesture. It reports whether the selection changed.
func (s *Selector) Move(p geom.Point, mods key.Modifier) bool {
	if !s.drag.Pressed() {
		return false
	}
	if s.drag.Update(p) {
		s.clearCache()
		s.log.Debug("drag started", "from", s.drag.StartPos().String(), "to", p.String())
	}
	if !s.drag.Dragging() {
		return false
	}
	return s.recompute(mods)
}

// Tick polls the held modifiers once per frame while dragging, so toggling
// Shift or the action modifier without moving still updates the result.
func (s *Selector) Tick(mods key.Modifier) bool {
	if !s.drag.Dragging() {
		return false
	}
	return s.recompute(mods)
}

// Release ends the gesture at p. A gesture that never became a drag is
// resolved as a click. It reports whether the selection changed.
func (s *Selector) Release(p geom.Point, mods key.Modifier) bool {
	if !s.drag.Pressed() {
		return false
	}
	defer s.reset()

	if s.drag.Dragging() {
		s.drag.Update(p)
		return s.recompute(mods)
	}
	return s.click(p, mods)
}

// Cancel abandons the gesture, keeping whatever selection was last assigned.
func (s *Selector) Cancel() {
	if !s.drag.Pressed() {
		return
	}
	s.metrics.MarqueeCancelled()
	s.log.Debug("drag cancelled", "dragging", s.drag.Dragging())
	s.reset()
}

func (s *Selector) recompute(mods key.Modifier) bool {
	mode := selection.TypeFor(mods, s.action)
	candidates := s.rects.RectOverlap(s.drag.Rect())

	if s.hasCache && mode == s.cachedMode && sameMembers(candidates, s.cached) {
		s.metrics.MarqueeSkipped()
		return false
	}
	s.cached = candidates
	s.cachedMode = mode
	s.hasCache = true

	next := selection.Combine(s.existing, candidates, mode, true)
	s.metrics.MarqueeRecomputed()
	return s.store.Replace(next, selection.SourceMarquee)
}

func (s *Selector) click(p geom.Point, mods key.Modifier) bool {
	existing := s.existing
	hovered, hasHover := s.resolver.Enumerator().Overlap(p).Next()

	actionHeld := !s.action.IsEmpty() && mods.Has(s.action)

	var next selection.Set
	if mods.HasShift() || actionHeld {
		var subtract bool
		if hasHover {
			if actionHeld {
				subtract = existing.Contains(hovered)
			} else {
				subtract = existing.Active == hovered
			}
		}

		if subtract {
			next = selection.Combine(existing, []pick.Candidate{hovered}, selection.Subtractive, false)
		} else {
			next = selection.Combine(existing, s.pick(p, existing), selection.Additive, false)
		}
	} else {
		next = selection.Combine(existing, s.pick(p, existing), selection.Normal, false)
	}

	changed := s.store.Replace(next, selection.SourceClick)
	s.state.Settle()
	return changed
}

func (s *Selector) pick(p geom.Point, existing selection.Set) []pick.Candidate {
	c, ok := s.resolver.Pick(p, existing, s.state)
	if !ok {
		return nil
	}
	return []pick.Candidate{c}
}

func (s *Selector) reset() {
	s.drag.End()
	s.existing = selection.Set{}
	s.clearCache()
}

func (s *Selector) clearCache() {
	s.cached = nil
	s.cachedMode = selection.Normal
	s.hasCache = false
}

// sameMembers reports whether a and b hold the same candidates regardless of
// order.
func sameMembers(a, b []pick.Candidate) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[pick.Candidate]struct{}, len(a))
	for _, c := range a {
		set[c] = struct{}{}
	}
	for _, c := range b {
		if _, ok := set[c]; !ok {
			return false
		}
	}
	return true
}
