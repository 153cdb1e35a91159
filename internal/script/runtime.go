// Package script embeds a sandboxed Lua runtime that can inspect the scene
// and change the selection.
//
// Scripts see two global tables:
//
//	scene.objects()            -> { {name=, x=, y=, w=, h=, depth=, base=, hidden=, parent=}, ... }
//	scene.overlap(x, y)        -> { name, ... } front to back
//	scene.base(name)           -> name or nil
//	selection.get()            -> { name, ... }, active
//	selection.set(name, ...)   -> changed
//	selection.add(name, ...)   -> changed
//	selection.remove(name, ...) -> changed
//	selection.clear()          -> changed
//
// Every change goes through the selection store with source "script", so
// viewports observe it like any other external edit.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/scenepick/internal/logging"
	"github.com/dshills/scenepick/internal/pick"
	"github.com/dshills/scenepick/internal/scene"
	"github.com/dshills/scenepick/internal/selection"
)

// DefaultTimeout bounds a single script execution.
const DefaultTimeout = 5 * time.Second

// ErrRuntimeClosed is returned after Close.
var ErrRuntimeClosed = errors.New("script runtime is closed")

// Store is the part of the selection store scripts need.
type Store interface {
	Current() selection.Set
	Replace(next selection.Set, source string) bool
	Clear(source string) bool
}

// Runtime wraps one Lua state bound to a scene and a selection store.
//
// gopher-lua states are not goroutine-safe; the mutex serializes Go callers.
type Runtime struct {
	mu sync.Mutex

	L       *lua.LState
	scene   *scene.Scene
	store   Store
	enum    *pick.Enumerator
	out     io.Writer
	timeout time.Duration
	log     *slog.Logger
	closed  bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput redirects print.
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) {
		r.out = w
	}
}

// WithTimeout sets the per-execution timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		r.log = logging.WithComponent(l, "script")
	}
}

// New creates a runtime over sc and store.
func New(sc *scene.Scene, store Store, opts ...Option) *Runtime {
	r := &Runtime{
		scene:   sc,
		store:   store,
		enum:    pick.NewEnumerator(sc),
		out:     os.Stdout,
		timeout: DefaultTimeout,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.L.SetGlobal("print", r.L.NewFunction(r.print))

	(&sceneModule{rt: r}).register(r.L)
	(&selectionModule{rt: r}).register(r.L)
	return r
}

// openSafeLibraries opens the base, table, string and math libraries and
// removes the loaders that reach the file system.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// DoString runs code.
func (r *Runtime) DoString(ctx context.Context, code string) error {
	return r.do(ctx, "<string>", func() error {
		return r.L.DoString(code)
	})
}

// DoFile runs the script at path. The file is read by Go so the sandbox can
// keep file loaders disabled.
func (r *Runtime) DoFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return r.do(ctx, path, func() error {
		fn, err := r.L.Load(strings.NewReader(string(data)), path)
		if err != nil {
			return err
		}
		r.L.Push(fn)
		return r.L.PCall(0, lua.MultRet, nil)
	})
}

// Close releases the Lua state.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}

func (r *Runtime) do(ctx context.Context, name string, fn func() error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRuntimeClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("lua panic: %v", rec)
		}
		if err != nil {
			r.log.Warn("script failed", "script", name, "error", err)
		}
	}()
	return fn()
}

// print writes its arguments tab-separated to the configured output.
func (r *Runtime) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(r.out, strings.Join(parts, "\t"))
	return 0
}
