// Package piercing implements the disambiguation menu that lists every
// candidate under a point and lets the user choose one directly.
//
// Opening the menu captures the overlap stack and the selection at that
// moment. Hovering an entry previews the would-be selection without touching
// the store; choosing one commits it. Closing the menu without a commit puts
// the captured selection back.
package piercing

import (
	"log/slog"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/metrics"
	"github.com/dshills/scenepick/internal/pick"
	"github.com/dshills/scenepick/internal/selection"
)

// PreviewSink receives outline previews while the menu is hovered.
// parents is the selection the entry would produce; children holds the
// hovered candidate.
type PreviewSink interface {
	Preview(parents, children []pick.Candidate)
	ClearPreview()
}

// Snapshot is the state captured when the menu opened.
type Snapshot struct {
	// Point is where the menu was opened.
	Point geom.Point

	// Overlapping is every candidate under Point, front to back.
	Overlapping []pick.Candidate

	// Prior is the selection at open time.
	Prior selection.Set
}

// Context is one viewport's menu session.
//
// Context is not safe for concurrent use.
type Context struct {
	enum      *pick.Enumerator
	store     *selection.Store
	hierarchy pick.Hierarchy
	bases     pick.BaseLookup
	sink      PreviewSink
	log       *slog.Logger
	metrics   *metrics.Metrics

	snap      Snapshot
	open      bool
	committed bool
}

// Option configures a Context.
type Option func(*Context)

// WithHierarchy sets the parent chain and base lookup used for subtractive
// entries.
func WithHierarchy(h pick.Hierarchy, bases pick.BaseLookup) Option {
	return func(c *Context) {
		c.hierarchy = h
		c.bases = bases
	}
}

// WithPreviewSink sets where previews are sent.
func WithPreviewSink(s PreviewSink) Option {
	return func(c *Context) {
		c.sink = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		c.log = logging.WithComponent(l, "piercing")
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Context) {
		c.metrics = m
	}
}

// New creates a closed menu context.
func New(enum *pick.Enumerator, store *selection.Store, opts ...Option) *Context {
	c := &Context{
		enum:  enum,
		store: store,
		sink:  nopSink{},
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open captures the overlap stack and selection at p. A menu that is already
// open is disposed first.
func (c *Context) Open(p geom.Point) Snapshot {
	if c.open {
		c.Dispose()
	}
	c.snap = Snapshot{
		Point:       p,
		Overlapping: c.enum.Collect(p),
		Prior:       c.store.Current(),
	}
	c.open = true
	c.committed = false

	c.log.Debug("menu opened", "point", p.String(), "entries", len(c.snap.Overlapping))
	return c.snap
}

// IsOpen reports whether a session is active.
func (c *Context) IsOpen() bool {
	return c.open
}

// Committed reports whether an entry was chosen in this session.
func (c *Context) Committed() bool {
	return c.committed
}

// Snapshot returns what Open captured.
func (c *Context) Snapshot() Snapshot {
	return c.snap
}

// Items returns the menu entries front to back.
func (c *Context) Items() []pick.Candidate {
	return c.snap.Overlapping
}

// Preview sends the selection that choosing cand under mode would produce to
// the preview sink and returns it. The store is not modified.
func (c *Context) Preview(cand pick.Candidate, mode selection.Type) selection.Set {
	if !c.open || cand == nil {
		return selection.Set{}
	}
	next := c.combine(cand, mode)
	c.sink.Preview(next.Items, []pick.Candidate{cand})
	return next
}

// Commit applies the selection that choosing cand under mode produces. The
// combination is always against the selection captured at open time. It
// reports whether the store changed.
func (c *Context) Commit(cand pick.Candidate, mode selection.Type) bool {
	if !c.open || cand == nil {
		return false
	}
	next := c.combine(cand, mode)
	c.committed = true
	c.log.Debug("menu committed", "candidate", cand, "mode", mode.String())
	return c.store.Replace(next, selection.SourceMenu)
}

// Dispose closes the session. Without a commit the prior selection is
// restored. The preview is cleared in both cases.
func (c *Context) Dispose() {
	if !c.open {
		return
	}
	c.sink.ClearPreview()

	result := "commit"
	if !c.committed {
		result = "rollback"
		c.store.Replace(c.snap.Prior, selection.SourceRollback)
	}
	c.metrics.PiercingClosed(result)
	c.log.Debug("menu closed", "result", result)

	c.snap = Snapshot{}
	c.open = false
	c.committed = false
}

func (c *Context) combine(cand pick.Candidate, mode selection.Type) selection.Set {
	return selection.CombineHierarchical(c.snap.Prior, cand, mode, c.hierarchy, c.bases)
}

type nopSink struct{}

func (nopSink) Preview([]pick.Candidate, []pick.Candidate) {}
func (nopSink) ClearPreview()                              {}
