package script

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/scene"
	"github.com/dshills/scenepick/internal/selection"
	"github.com/dshills/scenepick/internal/viewport"
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

type fixture struct {
	scene *scene.Scene
	store *selection.Store
	rt    *Runtime
	out   *bytes.Buffer
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	s, err := scene.Parse([]byte(groupScene))
	require.NoError(t, err)

	f := &fixture{scene: s, store: selection.NewStore(), out: &bytes.Buffer{}}
	f.rt = New(s, f.store, append([]Option{WithOutput(f.out)}, opts...)...)
	t.Cleanup(func() { _ = f.rt.Close() })
	return f
}

func (f *fixture) run(t *testing.T, code string) string {
	t.Helper()
	f.out.Reset()
	require.NoError(t, f.rt.DoString(context.Background(), code))
	return strings.TrimSpace(f.out.String())
}

func (f *fixture) selected() []string {
	cur := f.store.Current()
	out := make([]string, len(cur.Items))
	for i, c := range cur.Items {
		out[i] = c.(*scene.Object).Name
	}
	return out
}

func TestRuntime_Print(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "a\t1\ttrue", f.run(t, `print("a", 1, true)`))
}

func TestRuntime_Sandbox(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, `print(type(os), type(io), type(dofile), type(loadstring), type(require))`)
	assert.Equal(t, "nil\tnil\tnil\tnil\tnil", got)

	assert.Equal(t, "3", f.run(t, `print(string.len("abc"))`))
	assert.Equal(t, "2", f.run(t, `print(math.max(1, 2))`))
}

func TestScene_Objects(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, `
		for _, o in ipairs(scene.objects()) do
			print(o.name, o.x, o.y, o.w, o.h, o.base, o.parent)
		end`)
	assert.Equal(t, strings.Join([]string{
		"Root\t10\t10\t30\t20\ttrue\tnil",
		"Leaf1\t12\t12\t8\t8\tfalse\tRoot",
		"Leaf2\t12\t12\t10\t10\tfalse\tRoot",
		"Lamp\t50\t5\t6\t6\tfalse\tnil",
	}, "\n"), got)
}

func TestScene_Overlap(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "Leaf1,Leaf2,Root", f.run(t, `print(table.concat(scene.overlap(15, 15), ","))`))
	assert.Equal(t, "0", f.run(t, `print(#scene.overlap(0, 0))`))
}

func TestScene_Base(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "Root\tnil", f.run(t, `print(scene.base("Leaf2"), scene.base("Lamp"))`))
}

func TestSelection_SetGet(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "true", f.run(t, `print(selection.set("Leaf2", "Lamp"))`))
	assert.Equal(t, []string{"Leaf2", "Lamp"}, f.selected())
	assert.Equal(t, "Leaf2,Lamp\tLeaf2", f.run(t, `
		local names, active = selection.get()
		print(table.concat(names, ","), active)`))

	assert.Equal(t, "false", f.run(t, `print(selection.set("Leaf2", "Lamp"))`))
}

func TestSelection_AddRemoveClear(t *testing.T) {
	f := newFixture(t)

	f.run(t, `selection.set("Root")`)
	f.run(t, `selection.add("Lamp", "Root")`)
	assert.Equal(t, []string{"Root", "Lamp"}, f.selected())

	f.run(t, `selection.remove("Root")`)
	assert.Equal(t, []string{"Lamp"}, f.selected())

	assert.Equal(t, "true", f.run(t, `print(selection.clear())`))
	assert.Empty(t, f.selected())
	assert.Equal(t, "nil", f.run(t, `local _, active = selection.get(); print(active)`))
}

func TestSelection_UnknownObject(t *testing.T) {
	f := newFixture(t)
	f.run(t, `selection.set("Lamp")`)

	err := f.rt.DoString(context.Background(), `selection.set("Nope")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown object Nope")
	assert.Equal(t, []string{"Lamp"}, f.selected())
}

func TestSelection_ChangeSource(t *testing.T) {
	f := newFixture(t)
	var sources []string
	sub := f.store.Subscribe(func(c selection.Change) { sources = append(sources, c.Source) })
	defer sub.Unsubscribe()

	f.run(t, `selection.set("Lamp"); selection.clear()`)
	assert.Equal(t, []string{selection.SourceScript, selection.SourceScript}, sources)
}

func TestSelection_ResetsViewportCycle(t *testing.T) {
	f := newFixture(t)
	ctrl := viewport.New(f.scene, f.store, viewport.WithActionModifier(key.ModCtrl))
	defer ctrl.Close()

	hit := geom.Pt(15, 15)
	ctrl.Click(hit, 0)
	ctrl.Click(hit, 0)
	assert.Equal(t, []string{"Leaf1"}, f.selected())

	f.run(t, `selection.set("Lamp")`)
	assert.False(t, ctrl.CycleState().Valid())

	ctrl.Click(hit, 0)
	assert.Equal(t, []string{"Root"}, f.selected())
}

func TestRuntime_Timeout(t *testing.T) {
	f := newFixture(t, WithTimeout(50*time.Millisecond))
	err := f.rt.DoString(context.Background(), `while true do end`)
	require.Error(t, err)
}

func TestRuntime_SyntaxError(t *testing.T) {
	f := newFixture(t)
	assert.Error(t, f.rt.DoString(context.Background(), `selection.set(`))
}

func TestRuntime_DoFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "pick.lua")
	require.NoError(t, os.WriteFile(path, []byte(`selection.set(scene.overlap(15, 15)[1])`), 0o600))

	require.NoError(t, f.rt.DoFile(context.Background(), path))
	assert.Equal(t, []string{"Leaf1"}, f.selected())

	assert.Error(t, f.rt.DoFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua")))
}

func TestRuntime_Closed(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.rt.Close())
	require.NoError(t, f.rt.Close())
	assert.ErrorIs(t, f.rt.DoString(context.Background(), `print(1)`), ErrRuntimeClosed)
}
