// Package script loads hotkey handlers from Lua files. A script declares
// hotkeys by calling the global function
//
//	hotkey(name, category, display_name, fn)
//
// where fn receives a boolean press state. The resulting hotkey table is
// registered with the engine like any static table; the bound key strings
// still come from the "Hotkeys" settings section.
//
// gopher-lua states are not goroutine-safe, so every callback into the
// state is serialized behind a mutex.
package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"inputrig/internal/input"
	"inputrig/internal/logging"
)

// Engine owns one Lua state and the hotkeys its scripts declared.
type Engine struct {
	log *logging.Logger

	mu      sync.Mutex
	state   *lua.LState
	hotkeys []input.HotkeyInfo
	closed  bool
}

// NewEngine creates a script engine.
func NewEngine(log *logging.Logger) *Engine {
	if log == nil {
		log = logging.Null
	}

	e := &Engine{
		log:   log.WithComponent("script"),
		state: lua.NewState(),
	}
	e.state.SetGlobal("hotkey", e.state.NewFunction(e.registerHotkey))
	return e
}

// Close releases the Lua state. Handlers of previously returned hotkeys
// become no-ops.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	e.state.Close()
}

// Register exposes a host function to scripts under the given global name.
// Call before loading scripts that use it.
func (e *Engine) Register(name string, fn lua.LGFunction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.state.SetGlobal(name, e.state.NewFunction(fn))
}

// LoadFile runs a script file, collecting its hotkey declarations.
func (e *Engine) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("script engine is closed")
	}
	if err := e.state.DoFile(path); err != nil {
		return fmt.Errorf("running script %s: %w", path, err)
	}
	return nil
}

// LoadString runs an in-memory script, collecting its hotkey declarations.
func (e *Engine) LoadString(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("script engine is closed")
	}
	if err := e.state.DoString(src); err != nil {
		return fmt.Errorf("running script: %w", err)
	}
	return nil
}

// Hotkeys returns the hotkeys declared so far, in declaration order.
func (e *Engine) Hotkeys() []input.HotkeyInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]input.HotkeyInfo, len(e.hotkeys))
	copy(out, e.hotkeys)
	return out
}

// registerHotkey is the Lua-side hotkey(name, category, display, fn)
// builtin. Runs with e.mu held by the surrounding DoFile/DoString.
func (e *Engine) registerHotkey(L *lua.LState) int {
	name := L.CheckString(1)
	category := L.CheckString(2)
	display := L.CheckString(3)
	fn := L.CheckFunction(4)

	e.hotkeys = append(e.hotkeys, input.HotkeyInfo{
		Name:        name,
		Category:    category,
		DisplayName: display,
		Handler: func(pressed bool) {
			e.invoke(name, fn, pressed)
		},
	})
	return 0
}

// invoke calls a script handler with the press state. Script errors are
// logged, never fatal; a binding firing must not take the process down.
func (e *Engine) invoke(name string, fn *lua.LFunction, pressed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	err := e.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LBool(pressed))
	if err != nil {
		e.log.Error("hotkey %q handler failed: %v", name, err)
	}
}
