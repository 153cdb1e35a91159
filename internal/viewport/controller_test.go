package viewport

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/input/mouse"
	"github.com/dshills/scenepick/internal/metrics"
	"github.com/dshills/scenepick/internal/pick"
	"github.com/dshills/scenepick/internal/scene"
	"github.com/dshills/scenepick/internal/selection"
)

const groupScene = `
objects:
  - name: Root
    rect: [10, 10, 30, 20]
    depth: 3
    base: true
    children:
      - name: Leaf1
        rect: [12, 12, 8, 8]
        depth: 1
      - name: Leaf2
        rect: [12, 12, 10, 10]
        depth: 2
  - name: Lamp
    rect: [50, 5, 6, 6]
    depth: 1
`

var hit = geom.Pt(15, 15)

type fixture struct {
	scene    *scene.Scene
	store    *selection.Store
	ctrl     *Controller
	repaints int
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	s, err := scene.Parse([]byte(groupScene))
	require.NoError(t, err)

	f := &fixture{scene: s, store: selection.NewStore()}
	opts = append([]Option{
		WithActionModifier(key.ModCtrl),
		WithRepaint(func() { f.repaints++ }),
		WithMetrics(metrics.New(prometheus.NewRegistry())),
	}, opts...)
	f.ctrl = New(s, f.store, opts...)
	t.Cleanup(f.ctrl.Close)
	return f
}

func (f *fixture) obj(t *testing.T, name string) *scene.Object {
	t.Helper()
	o, ok := f.scene.Lookup(name)
	require.True(t, ok, name)
	return o
}

func (f *fixture) selected() []string {
	cur := f.store.Current()
	out := make([]string, len(cur.Items))
	for i, c := range cur.Items {
		out[i] = c.(*scene.Object).Name
	}
	return out
}

func (f *fixture) clickNames(n int) []string {
	var out []string
	for i := 0; i < n; i++ {
		f.ctrl.Click(hit, 0)
		out = append(out, f.selected()...)
	}
	return out
}

func TestController_GroupCycle(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"Root", "Leaf1", "Leaf2", "Root", "Leaf1"}, f.clickNames(5))
}

func TestController_ExternalChangeRestartsCycle(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, []string{"Root", "Leaf1"}, f.clickNames(2))

	f.store.Replace(selection.NewSet(f.obj(t, "Lamp")), selection.SourceScript)
	assert.False(t, f.ctrl.CycleState().Valid())

	f.ctrl.Click(hit, 0)
	assert.Equal(t, []string{"Root"}, f.selected(), "first pick again")
}

func TestController_PointChangeRestarts(t *testing.T) {
	f := newFixture(t)
	f.clickNames(2)

	f.ctrl.Click(geom.Pt(52, 7), 0)
	assert.Equal(t, []string{"Lamp"}, f.selected())

	f.ctrl.Click(hit, 0)
	assert.Equal(t, []string{"Root"}, f.selected())
}

func TestController_RepaintOnSelectionChange(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Click(hit, 0)
	assert.Equal(t, 1, f.repaints)

	f.store.Replace(selection.Set{}, selection.SourceScript)
	assert.Equal(t, 2, f.repaints)
}

func TestController_DragAndFrame(t *testing.T) {
	f := newFixture(t)
	lamp := f.obj(t, "Lamp")
	f.store.Replace(selection.NewSet(lamp), selection.SourceScript)

	f.ctrl.HandleMouse(mouse.Event{Position: geom.Pt(0, 0), Button: mouse.ButtonLeft, Action: mouse.ActionPress})
	f.ctrl.HandleMouse(mouse.Event{Position: geom.Pt(45, 45), Button: mouse.ButtonLeft, Action: mouse.ActionDrag})
	assert.Equal(t, []string{"Leaf1", "Leaf2", "Root"}, f.selected())

	r, ok := f.ctrl.Marquee()
	require.True(t, ok)
	assert.True(t, r.Contains(geom.Pt(44, 44)))

	f.ctrl.Frame(key.ModShift)
	assert.Equal(t, []string{"Lamp", "Leaf1", "Leaf2", "Root"}, f.selected())

	f.ctrl.HandleMouse(mouse.Event{Position: geom.Pt(45, 45), Button: mouse.ButtonLeft, Action: mouse.ActionRelease, Modifiers: key.ModShift})
	_, ok = f.ctrl.Marquee()
	assert.False(t, ok)
}

func TestController_FocusLossCancelsDrag(t *testing.T) {
	f := newFixture(t)

	f.ctrl.HandleMouse(mouse.Event{Position: geom.Pt(0, 0), Button: mouse.ButtonLeft, Action: mouse.ActionPress})
	f.ctrl.HandleMouse(mouse.Event{Position: geom.Pt(45, 45), Button: mouse.ButtonLeft, Action: mouse.ActionDrag})
	require.Len(t, f.selected(), 3)

	f.ctrl.Focus(false)
	_, ok := f.ctrl.Marquee()
	assert.False(t, ok)

	// The release that arrives after focus returns does not click.
	f.ctrl.Focus(true)
	f.ctrl.HandleMouse(mouse.Event{Position: hit, Button: mouse.ButtonLeft, Action: mouse.ActionRelease})
	assert.Len(t, f.selected(), 3, "last assignment kept")
}

func TestController_MenuRollback(t *testing.T) {
	f := newFixture(t)
	lamp := f.obj(t, "Lamp")
	f.store.Replace(selection.NewSet(lamp), selection.SourceScript)

	items := f.ctrl.OpenMenu(hit)
	require.Len(t, items, 3)
	assert.True(t, f.ctrl.MenuOpen())

	require.True(t, f.ctrl.HoverMenu(1, 0))
	parents, children := f.ctrl.Preview()
	assert.Equal(t, []pick.Candidate{f.obj(t, "Leaf2")}, parents)
	assert.Equal(t, []pick.Candidate{f.obj(t, "Leaf2")}, children)
	assert.Equal(t, []string{"Lamp"}, f.selected(), "preview leaves the selection alone")

	f.ctrl.CloseMenu()
	assert.False(t, f.ctrl.MenuOpen())
	assert.Equal(t, []string{"Lamp"}, f.selected())
	parents, _ = f.ctrl.Preview()
	assert.Nil(t, parents)
}

func TestController_MenuChoose(t *testing.T) {
	f := newFixture(t)
	f.store.Replace(selection.NewSet(f.obj(t, "Lamp")), selection.SourceScript)

	f.ctrl.HandleMouse(mouse.Event{Position: hit, Button: mouse.ButtonRight, Action: mouse.ActionPress})
	require.True(t, f.ctrl.MenuOpen())

	assert.True(t, f.ctrl.ChooseMenu(2, key.ModShift))
	assert.False(t, f.ctrl.MenuOpen())
	assert.Equal(t, []string{"Lamp", "Root"}, f.selected())

	assert.False(t, f.ctrl.ChooseMenu(0, 0), "menu closed")
}

func TestController_MenuSubtractiveAncestor(t *testing.T) {
	f := newFixture(t)
	// Root is the selection base, so subtracting Leaf1 must not walk into it
	// and falls back to adding.
	f.store.Replace(selection.NewSet(f.obj(t, "Root")), selection.SourceScript)

	f.ctrl.OpenMenu(hit)
	f.ctrl.ChooseMenu(0, key.ModCtrl)
	assert.Equal(t, []string{"Root", "Leaf1"}, f.selected())
}

func TestController_LeftPressClosesMenu(t *testing.T) {
	f := newFixture(t)
	f.ctrl.OpenMenu(hit)
	f.ctrl.HoverMenu(0, 0)

	f.ctrl.Click(geom.Pt(52, 7), 0)
	assert.False(t, f.ctrl.MenuOpen())
	assert.Equal(t, []string{"Lamp"}, f.selected())
}

func TestController_HoverOutOfRange(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.ctrl.HoverMenu(0, 0), "menu not open")

	f.ctrl.OpenMenu(geom.Pt(100, 100))
	assert.Empty(t, f.ctrl.MenuItems())
	assert.False(t, f.ctrl.HoverMenu(0, 0))
	assert.False(t, f.ctrl.HoverMenu(-1, 0))
}

func TestController_CloseUnsubscribes(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Click(hit, 0)
	f.ctrl.Close()

	before := f.repaints
	f.store.Replace(selection.Set{}, selection.SourceScript)
	assert.Equal(t, before, f.repaints)
}
