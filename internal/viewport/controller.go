// Package viewport routes pointer input for one scene view to the picking
// components and owns the state they share between frames.
package viewport

import (
	"log/slog"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/input/mouse"
	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/marquee"
	"github.com/dshills/scenepick/internal/metrics"
	"github.com/dshills/scenepick/internal/pick"
	"github.com/dshills/scenepick/internal/piercing"
	"github.com/dshills/scenepick/internal/selection"
)

// World is everything the controller queries about the scene.
type World interface {
	pick.Picker
	pick.RectQuerier
	pick.BaseLookup
	pick.Hierarchy
}

// Controller handles input for one viewport.
//
// Controller is not safe for concurrent use. The selection store it observes
// may be changed from other goroutines; the resulting CycleState reset is
// then applied on that goroutine, so callers that mutate the store
// concurrently must serialize with the input loop.
type Controller struct {
	world    World
	store    *selection.Store
	sub      *selection.Subscription
	state    pick.CycleState
	resolver *pick.Resolver
	selector *marquee.Selector
	menu     *piercing.Context

	action    key.Modifier
	threshold float64
	repaint   func()
	log       *slog.Logger
	metrics   *metrics.Metrics

	previewParents  []pick.Candidate
	previewChildren []pick.Candidate
}

// Option configures a Controller.
type Option func(*Controller)

// WithDragThreshold sets the marquee drag threshold in pixels.
func WithDragThreshold(px float64) Option {
	return func(c *Controller) {
		c.threshold = px
	}
}

// WithActionModifier sets the platform action modifier.
func WithActionModifier(m key.Modifier) Option {
	return func(c *Controller) {
		c.action = m
	}
}

// WithRepaint sets the callback invoked after every visible change.
func WithRepaint(fn func()) Option {
	return func(c *Controller) {
		c.repaint = fn
	}
}

// WithLogger sets the logger shared by all components.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// WithMetrics sets the metrics sink shared by all components.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// New creates a controller over world and subscribes it to store.
func New(world World, store *selection.Store, opts ...Option) *Controller {
	c := &Controller{
		world:     world,
		store:     store,
		action:    key.DefaultAction(),
		threshold: mouse.DefaultDragThreshold,
		repaint:   func() {},
		log:       logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	enum := pick.NewEnumerator(world,
		pick.WithEnumeratorLogger(c.log),
		pick.WithEnumeratorMetrics(c.metrics),
	)
	c.resolver = pick.NewResolver(enum, world,
		pick.WithLogger(c.log),
		pick.WithMetrics(c.metrics),
	)
	c.selector = marquee.New(world, c.resolver, store, &c.state,
		marquee.WithThreshold(c.threshold),
		marquee.WithActionModifier(c.action),
		marquee.WithLogger(c.log),
		marquee.WithMetrics(c.metrics),
	)
	c.menu = piercing.New(enum, store,
		piercing.WithHierarchy(world, world),
		piercing.WithPreviewSink(previewSink{c}),
		piercing.WithLogger(c.log),
		piercing.WithMetrics(c.metrics),
	)
	c.sub = store.Subscribe(c.selectionChanged)
	c.log = logging.WithComponent(c.log, "viewport")
	return c
}

// Close detaches the controller from the store and closes any open menu.
func (c *Controller) Close() {
	c.CloseMenu()
	c.selector.Cancel()
	c.sub.Unsubscribe()
}

// HandleMouse routes one pointer event.
func (c *Controller) HandleMouse(ev mouse.Event) {
	switch ev.Action {
	case mouse.ActionPress:
		switch ev.Button {
		case mouse.ButtonLeft:
			c.CloseMenu()
			c.selector.Press(ev.Position)
		case mouse.ButtonRight:
			c.selector.Cancel()
			c.OpenMenu(ev.Position)
		}
	case mouse.ActionMove, mouse.ActionDrag:
		wasDragging := c.selector.Dragging()
		c.selector.Move(ev.Position, ev.Modifiers)
		if c.selector.Dragging() || wasDragging {
			c.repaint()
		}
	case mouse.ActionRelease:
		if ev.Button == mouse.ButtonLeft || ev.Button == mouse.ButtonNone {
			wasDragging := c.selector.Dragging()
			c.selector.Release(ev.Position, ev.Modifiers)
			if wasDragging {
				c.repaint()
			}
		}
	}
}

// Click is a left press and release at p.
func (c *Controller) Click(p geom.Point, mods key.Modifier) {
	c.HandleMouse(mouse.Event{Position: p, Button: mouse.ButtonLeft, Action: mouse.ActionPress, Modifiers: mods})
	c.HandleMouse(mouse.Event{Position: p, Button: mouse.ButtonLeft, Action: mouse.ActionRelease, Modifiers: mods})
}

// Drag is a left press at from, a move to to and a release there.
func (c *Controller) Drag(from, to geom.Point, mods key.Modifier) {
	c.HandleMouse(mouse.Event{Position: from, Button: mouse.ButtonLeft, Action: mouse.ActionPress, Modifiers: mods})
	c.HandleMouse(mouse.Event{Position: to, Button: mouse.ButtonLeft, Action: mouse.ActionDrag, Modifiers: mods})
	c.HandleMouse(mouse.Event{Position: to, Button: mouse.ButtonLeft, Action: mouse.ActionRelease, Modifiers: mods})
}

// Frame is called once per rendered frame with the currently held modifiers.
func (c *Controller) Frame(mods key.Modifier) {
	c.selector.Tick(mods)
}

// Focus reports a focus change. Losing focus cancels any gesture and closes
// the menu.
func (c *Controller) Focus(focused bool) {
	if focused {
		return
	}
	wasActive := c.selector.Pressed() || c.menu.IsOpen()
	c.selector.Cancel()
	c.CloseMenu()
	if wasActive {
		c.repaint()
	}
}

// OpenMenu opens the piercing menu at p and returns its entries.
func (c *Controller) OpenMenu(p geom.Point) []pick.Candidate {
	c.menu.Open(p)
	c.repaint()
	return c.menu.Items()
}

// MenuOpen reports whether the piercing menu is open.
func (c *Controller) MenuOpen() bool {
	return c.menu.IsOpen()
}

// MenuItems returns the open menu's entries front to back.
func (c *Controller) MenuItems() []pick.Candidate {
	return c.menu.Items()
}

// HoverMenu previews entry i. Held modifiers choose the combine type.
func (c *Controller) HoverMenu(i int, mods key.Modifier) bool {
	cand, ok := c.menuItem(i)
	if !ok {
		return false
	}
	c.menu.Preview(cand, selection.TypeFor(mods, c.action))
	return true
}

// ChooseMenu commits entry i and closes the menu.
func (c *Controller) ChooseMenu(i int, mods key.Modifier) bool {
	cand, ok := c.menuItem(i)
	if !ok {
		return false
	}
	c.menu.Commit(cand, selection.TypeFor(mods, c.action))
	c.CloseMenu()
	return true
}

// CloseMenu disposes the menu, rolling back if nothing was chosen.
func (c *Controller) CloseMenu() {
	if !c.menu.IsOpen() {
		return
	}
	c.menu.Dispose()
	c.repaint()
}

// Selection returns the current selection.
func (c *Controller) Selection() selection.Set {
	return c.store.Current()
}

// Marquee returns the rectangle being dragged, if any.
func (c *Controller) Marquee() (geom.Rect, bool) {
	return c.selector.Rect()
}

// Preview returns the outline preview shown while the menu is hovered.
func (c *Controller) Preview() (parents, children []pick.Candidate) {
	return c.previewParents, c.previewChildren
}

// CycleState exposes the click-cycle memory.
func (c *Controller) CycleState() *pick.CycleState {
	return &c.state
}

// Resolver returns the click-cycle resolver.
func (c *Controller) Resolver() *pick.Resolver {
	return c.resolver
}

func (c *Controller) menuItem(i int) (pick.Candidate, bool) {
	items := c.menu.Items()
	if !c.menu.IsOpen() || i < 0 || i >= len(items) {
		return nil, false
	}
	return items[i], true
}

func (c *Controller) selectionChanged(change selection.Change) {
	c.state.SelectionChanged()
	c.log.Debug("selection changed",
		"source", change.Source,
		"cycle_valid", c.state.Valid(),
	)
	c.repaint()
}

// previewSink forwards menu previews to the controller.
type previewSink struct {
	c *Controller
}

func (s previewSink) Preview(parents, children []pick.Candidate) {
	s.c.previewParents = parents
	s.c.previewChildren = children
	s.c.repaint()
}

func (s previewSink) ClearPreview() {
	s.c.previewParents = nil
	s.c.previewChildren = nil
}
