// Package tui renders a scene in a terminal and feeds terminal input to a
// viewport controller.
//
// Scene coordinates map one to one onto terminal cells. Objects are drawn
// back to front as boxes; the selection, the piercing menu preview and the
// marquee rectangle are drawn on top.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/input/mouse"
	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/pick"
	"github.com/dshills/scenepick/internal/scene"
	"github.com/dshills/scenepick/internal/selection"
	"github.com/dshills/scenepick/internal/viewport"
)

// NewScreen creates and initializes a terminal screen with mouse and focus
// reporting enabled. Callers must Fini it.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.EnableFocus()
	return screen, nil
}

// View draws one scene on a screen and routes its events.
//
// All methods except Post must be called from the goroutine running Run.
type View struct {
	screen tcell.Screen
	scene  *scene.Scene
	store  *selection.Store
	ctrl   *viewport.Controller
	log    *slog.Logger

	ctrlOpts   []viewport.Option
	translator Translator
	mods       key.Modifier
	hover      int
	dirty      bool
}

// Option configures a View.
type Option func(*View)

// WithControllerOptions passes options to the viewport controller.
func WithControllerOptions(opts ...viewport.Option) Option {
	return func(v *View) {
		v.ctrlOpts = append(v.ctrlOpts, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *View) {
		v.log = logging.WithComponent(l, "tui")
	}
}

// New creates a view of sc on screen.
func New(screen tcell.Screen, sc *scene.Scene, store *selection.Store, opts ...Option) *View {
	v := &View{
		screen: screen,
		scene:  sc,
		store:  store,
		log:    logging.Nop(),
		hover:  -1,
		dirty:  true,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.ctrl = v.newController()
	return v
}

// Controller returns the current viewport controller.
func (v *View) Controller() *viewport.Controller {
	return v.ctrl
}

// Reconfigure replaces the controller with one built from the original
// options followed by opts. The selection is kept; cycling restarts.
func (v *View) Reconfigure(opts ...viewport.Option) {
	v.ctrl.Close()
	v.ctrl = v.newController(opts...)
	v.hover = -1
	v.dirty = true
	v.log.Info("viewport reconfigured")
}

// Post schedules fn to run on the event loop. It is safe for concurrent use.
func (v *View) Post(fn func()) error {
	return v.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// Close releases the controller.
func (v *View) Close() {
	v.ctrl.Close()
}

// Run draws the view and handles events until ctx is done, the screen is
// finalized or the user quits.
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(events)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}
		}
	}
}

// HandleEvent processes one event and redraws if anything changed. It
// returns false when the user asked to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		v.handleMouse(v.translator.Mouse(e))
	case *tcell.EventKey:
		if !v.handleKey(e) {
			return false
		}
	case *tcell.EventFocus:
		if !e.Focused {
			v.translator.Reset()
		}
		v.ctrl.Focus(e.Focused)
	case *tcell.EventResize:
		v.screen.Sync()
		v.dirty = true
	case *tcell.EventInterrupt:
		if fn, ok := e.Data().(func()); ok {
			fn()
			v.dirty = true
		}
	}

	if !v.ctrl.MenuOpen() && v.hover != -1 {
		v.hover = -1
		v.dirty = true
	}
	if v.dirty {
		v.Draw()
	}
	return true
}

func (v *View) handleMouse(ev mouse.Event) {
	v.mods = ev.Modifiers
	if row, ok := v.menuRow(ev.Position); ok {
		switch {
		case ev.Moved():
			if row != v.hover {
				v.hover = row
				v.ctrl.HoverMenu(row, ev.Modifiers)
				v.dirty = true
			}
		case ev.Pressed(mouse.ButtonLeft):
			v.ctrl.ChooseMenu(row, ev.Modifiers)
		}
		return
	}
	v.ctrl.HandleMouse(ev)
	v.ctrl.Frame(ev.Modifiers)
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	v.mods = Modifiers(ev.Modifiers())
	v.ctrl.Frame(v.mods)

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		if !v.ctrl.MenuOpen() {
			return false
		}
		v.ctrl.CloseMenu()
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == 'q':
			return false
		case r >= '1' && r <= '9' && v.ctrl.MenuOpen():
			v.ctrl.ChooseMenu(int(r-'1'), v.mods)
		}
	}
	return true
}

// Draw renders the whole view.
func (v *View) Draw() {
	v.screen.Clear()

	cur := v.store.Current()
	parents, children := v.ctrl.Preview()
	for _, o := range v.scene.DrawOrder() {
		st := styleObject
		switch {
		case cur.Active == pick.Candidate(o):
			st = styleActive
		case cur.Contains(o):
			st = styleSelected
		}
		switch {
		case pick.Contains(children, o):
			st = stylePreviewChild
		case pick.Contains(parents, o):
			st = stylePreviewParent
		}
		v.drawBox(o.Bounds, o.Name, st)
	}

	if r, ok := v.ctrl.Marquee(); ok {
		v.drawOutline(r, '.', styleMarquee)
	}
	if v.ctrl.MenuOpen() {
		v.drawMenu()
	}
	v.drawStatus(cur)

	v.screen.Show()
	v.dirty = false
}

func (v *View) drawBox(r geom.Rect, label string, st tcell.Style) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			v.set(x, y, boxRune(r, x, y), st)
		}
	}
	v.text(r.Min.X+1, r.Min.Y, r.Dx()-2, label, st)
}

func (v *View) drawOutline(r geom.Rect, ch rune, st tcell.Style) {
	for x := r.Min.X; x < r.Max.X; x++ {
		v.set(x, r.Min.Y, ch, st)
		v.set(x, r.Max.Y-1, ch, st)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		v.set(r.Min.X, y, ch, st)
		v.set(r.Max.X-1, y, ch, st)
	}
}

func (v *View) drawMenu() {
	panel := v.menuRect()
	for i, c := range v.ctrl.MenuItems() {
		st := styleMenu
		if i == v.hover {
			st = styleMenuHover
		}
		y := panel.Min.Y + i
		for x := panel.Min.X; x < panel.Max.X; x++ {
			v.set(x, y, ' ', st)
		}
		v.text(panel.Min.X+1, y, panel.Dx()-1, menuLabel(i, c), st)
	}
}

func (v *View) drawStatus(cur selection.Set) {
	w, h := v.screen.Size()
	line := fmt.Sprintf(" selection %s  |  click cycles, drag selects, right-click pierces, q quits", cur)
	for x := 0; x < w; x++ {
		v.set(x, h-1, ' ', styleStatus)
	}
	v.text(0, h-1, w, line, styleStatus)
}

// menuRect is the menu panel in the top right corner.
func (v *View) menuRect() geom.Rect {
	items := v.ctrl.MenuItems()
	width := 0
	for i, c := range items {
		width = max(width, len(menuLabel(i, c))+2)
	}
	w, _ := v.screen.Size()
	return geom.XYWH(w-width, 0, width, len(items))
}

func (v *View) menuRow(p geom.Point) (int, bool) {
	if !v.ctrl.MenuOpen() {
		return 0, false
	}
	r := v.menuRect()
	if !r.Contains(p) {
		return 0, false
	}
	return p.Y - r.Min.Y, true
}

func (v *View) set(x, y int, ch rune, st tcell.Style) {
	w, h := v.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	v.screen.SetContent(x, y, ch, nil, st)
}

func (v *View) text(x, y, width int, s string, st tcell.Style) {
	for i, ch := range []rune(s) {
		if i >= width {
			return
		}
		v.set(x+i, y, ch, st)
	}
}

func (v *View) newController(extra ...viewport.Option) *viewport.Controller {
	opts := append([]viewport.Option{}, v.ctrlOpts...)
	opts = append(opts, extra...)
	opts = append(opts, viewport.WithRepaint(func() { v.dirty = true }))
	return viewport.New(v.scene, v.store, opts...)
}

func boxRune(r geom.Rect, x, y int) rune {
	top, bottom := y == r.Min.Y, y == r.Max.Y-1
	left, right := x == r.Min.X, x == r.Max.X-1
	switch {
	case r.Dx() < 2 || r.Dy() < 2:
		return '#'
	case (top || bottom) && (left || right):
		return '+'
	case top || bottom:
		return '-'
	case left || right:
		return '|'
	default:
		return ' '
	}
}

func menuLabel(i int, c pick.Candidate) string {
	return fmt.Sprintf("%d %s", i+1, c)
}
