package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actionbind/internal/event"
	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/input/normalize"
	"github.com/dshills/actionbind/internal/platform"
)

// DefaultTimeout bounds a single call into a script. Hooks run on the
// tick goroutine, so it is well below a frame.
const DefaultTimeout = 5 * time.Millisecond

// LoadTimeout bounds running a script's top-level chunk.
const LoadTimeout = 100 * time.Millisecond

const (
	preSampleFunc = "pre_sample"
	postEventFunc = "post_event"
)

// Hook is an input hook backed by a Lua script.
//
// A Hook may be registered with input.HookManager. Calls are serialized.
type Hook struct {
	name    string
	timeout time.Duration
	logger  *slog.Logger

	mu     sync.Mutex
	L      *lua.LState
	pre    *lua.LFunction
	post   *lua.LFunction
	closed bool

	calls  atomic.Uint64
	errors atomic.Uint64
}

// Option configures a Hook.
type Option func(*Hook)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *Hook) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLogger sets the logger for script errors and the script's log
// function.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hook) {
		if l != nil {
			h.logger = l
		}
	}
}

// Load creates a hook from a script file. The hook is named after the
// file.
func Load(path string, opts ...Option) (*Hook, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return New(filepath.Base(path), string(src), opts...)
}

// New compiles and runs source, then looks up its entry points.
func New(name, source string, opts ...Option) (*Hook, error) {
	h := &Hook{
		name:    name,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.L = newSandbox()
	h.L.SetGlobal("log", h.L.NewFunction(h.luaLog))

	ctx, cancel := context.WithTimeout(context.Background(), LoadTimeout)
	defer cancel()
	h.L.SetContext(ctx)
	err := h.L.DoString(source)
	h.L.RemoveContext()
	if err != nil {
		h.L.Close()
		return nil, &Error{Script: name, Err: err}
	}

	h.pre = h.function(preSampleFunc)
	h.post = h.function(postEventFunc)
	if h.pre == nil && h.post == nil {
		h.L.Close()
		return nil, &Error{Script: name, Err: ErrNoEntryPoint}
	}
	return h, nil
}

// newSandbox creates a state with only the side-effect free libraries.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func (h *Hook) function(name string) *lua.LFunction {
	fn, _ := h.L.GetGlobal(name).(*lua.LFunction)
	return fn
}

// luaLog implements log(msg) for scripts.
func (h *Hook) luaLog(L *lua.LState) int {
	h.logger.Info(L.CheckString(1), "script", h.name)
	return 0
}

// Name returns the hook name.
func (h *Hook) Name() string {
	return h.name
}

// Calls returns how many times the script was entered.
func (h *Hook) Calls() uint64 {
	return h.calls.Load()
}

// Errors returns how many calls failed.
func (h *Hook) Errors() uint64 {
	return h.errors.Load()
}

// PreSample implements input.Hook.
func (h *Hook) PreSample(s *platform.Sample) bool {
	if h.pre == nil {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}

	name := s.Key.Canonical()
	t := h.L.NewTable()
	t.RawSetString("key", lua.LString(name))
	t.RawSetString("kind", lua.LString(s.Kind.String()))
	t.RawSetString("state", lua.LString(s.State.String()))
	t.RawSetString("strength", lua.LNumber(s.Strength))
	t.RawSetString("mods", lua.LString(s.Modifiers.String()))
	setVec(t, "", s.Position)
	setVec(t, "d", s.Delta)

	ret, ok := h.call(h.pre, preSampleFunc, t)
	if !ok {
		return false
	}

	if v, ok := t.RawGetString("key").(lua.LString); ok && string(v) != name {
		k, err := key.Parse(string(v))
		if err != nil {
			h.fail(preSampleFunc, err)
			return false
		}
		s.Key = k
	}
	if v, ok := t.RawGetString("strength").(lua.LNumber); ok {
		s.Strength = float64(v)
	}
	return lua.LVAsBool(ret)
}

// PostEvent implements input.Hook.
func (h *Hook) PostEvent(ev normalize.Event, out event.Outcome) {
	if h.post == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	t := h.L.NewTable()
	t.RawSetString("key", lua.LString(ev.Key().Canonical()))
	t.RawSetString("kind", lua.LString(ev.Kind().String()))
	t.RawSetString("strength", lua.LNumber(ev.Strength()))
	t.RawSetString("changed", lua.LBool(ev.Changed()))
	t.RawSetString("handled", lua.LBool(out.Handled))
	actions := h.L.NewTable()
	for _, name := range ev.Actions() {
		actions.Append(lua.LString(name))
	}
	t.RawSetString("actions", actions)

	h.call(h.post, postEventFunc, t)
}

// call runs fn under the timeout and returns its first result.
// Callers hold mu.
func (h *Hook) call(fn *lua.LFunction, name string, arg lua.LValue) (lua.LValue, bool) {
	h.calls.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	h.L.SetContext(ctx)
	defer h.L.RemoveContext()

	if err := h.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, arg); err != nil {
		h.fail(name, err)
		return lua.LNil, false
	}
	ret := h.L.Get(-1)
	h.L.Pop(1)
	return ret, true
}

func (h *Hook) fail(fn string, err error) {
	n := h.errors.Add(1)
	h.logger.Warn("script hook failed", "error", &Error{Script: h.name, Func: fn, Err: err}, "errors", n)
}

// Close releases the Lua state. Later calls are no-ops.
func (h *Hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.L.Close()
	return nil
}

func setVec(t *lua.LTable, prefix string, v platform.Vec3) {
	t.RawSetString(prefix+"x", lua.LNumber(v.X))
	t.RawSetString(prefix+"y", lua.LNumber(v.Y))
	t.RawSetString(prefix+"z", lua.LNumber(v.Z))
}
