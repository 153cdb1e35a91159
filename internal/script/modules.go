package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/pick"
	"github.com/dshills/scenepick/internal/scene"
	"github.com/dshills/scenepick/internal/selection"
)

// sceneModule implements the scene table.
type sceneModule struct {
	rt *Runtime
}

func (m *sceneModule) register(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "objects", L.NewFunction(m.objects))
	L.SetField(mod, "overlap", L.NewFunction(m.overlap))
	L.SetField(mod, "base", L.NewFunction(m.base))
	L.SetGlobal("scene", mod)
}

// objects() -> {{name=, x=, y=, w=, h=, depth=, base=, hidden=, parent=}, ...}
func (m *sceneModule) objects(L *lua.LState) int {
	tbl := L.NewTable()
	for i, o := range m.rt.scene.Objects() {
		entry := L.NewTable()
		entry.RawSetString("name", lua.LString(o.Name))
		entry.RawSetString("id", lua.LString(o.ID.String()))
		entry.RawSetString("x", lua.LNumber(o.Bounds.Min.X))
		entry.RawSetString("y", lua.LNumber(o.Bounds.Min.Y))
		entry.RawSetString("w", lua.LNumber(o.Bounds.Dx()))
		entry.RawSetString("h", lua.LNumber(o.Bounds.Dy()))
		entry.RawSetString("depth", lua.LNumber(o.Depth))
		entry.RawSetString("base", lua.LBool(o.Base))
		entry.RawSetString("hidden", lua.LBool(o.Hidden))
		if o.Parent != nil {
			entry.RawSetString("parent", lua.LString(o.Parent.Name))
		}
		tbl.RawSetInt(i+1, entry)
	}
	L.Push(tbl)
	return 1
}

// overlap(x, y) -> {name, ...}
func (m *sceneModule) overlap(L *lua.LState) int {
	p := geom.Pt(L.CheckInt(1), L.CheckInt(2))
	L.Push(namesTable(L, m.rt.enum.Collect(p)))
	return 1
}

// base(name) -> name | nil
func (m *sceneModule) base(L *lua.LState) int {
	o := m.rt.lookup(L, 1)
	b, ok := m.rt.scene.SelectionBase(o)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(b.(*scene.Object).Name))
	return 1
}

// selectionModule implements the selection table.
type selectionModule struct {
	rt *Runtime
}

func (m *selectionModule) register(L *lua.LState) {
	mod := L.NewTable()
	L.SetField(mod, "get", L.NewFunction(m.get))
	L.SetField(mod, "set", L.NewFunction(m.set))
	L.SetField(mod, "add", L.NewFunction(m.add))
	L.SetField(mod, "remove", L.NewFunction(m.remove))
	L.SetField(mod, "clear", L.NewFunction(m.clear))
	L.SetGlobal("selection", mod)
}

// get() -> {name, ...}, active
func (m *selectionModule) get(L *lua.LState) int {
	cur := m.rt.store.Current()
	L.Push(namesTable(L, cur.Items))
	if cur.Active == nil {
		L.Push(lua.LNil)
	} else {
		L.Push(lua.LString(cur.Active.(*scene.Object).Name))
	}
	return 2
}

// set(name, ...) -> changed
func (m *selectionModule) set(L *lua.LState) int {
	return m.combine(L, selection.Normal)
}

// add(name, ...) -> changed
func (m *selectionModule) add(L *lua.LState) int {
	return m.combine(L, selection.Additive)
}

// remove(name, ...) -> changed
func (m *selectionModule) remove(L *lua.LState) int {
	return m.combine(L, selection.Subtractive)
}

// clear() -> changed
func (m *selectionModule) clear(L *lua.LState) int {
	L.Push(lua.LBool(m.rt.store.Clear(selection.SourceScript)))
	return 1
}

func (m *selectionModule) combine(L *lua.LState, mode selection.Type) int {
	var incoming []pick.Candidate
	for i := 1; i <= L.GetTop(); i++ {
		incoming = append(incoming, m.rt.lookup(L, i))
	}
	next := selection.Combine(m.rt.store.Current(), incoming, mode, false)
	L.Push(lua.LBool(m.rt.store.Replace(next, selection.SourceScript)))
	return 1
}

// lookup resolves argument n to an object or raises a Lua error.
func (r *Runtime) lookup(L *lua.LState, n int) *scene.Object {
	name := L.CheckString(n)
	o, ok := r.scene.Lookup(name)
	if !ok {
		L.ArgError(n, "unknown object "+name)
		return nil
	}
	return o
}

func namesTable(L *lua.LState, cs []pick.Candidate) *lua.LTable {
	tbl := L.NewTable()
	for i, c := range cs {
		tbl.RawSetInt(i+1, lua.LString(c.(*scene.Object).Name))
	}
	return tbl
}
