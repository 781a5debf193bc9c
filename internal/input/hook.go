package input

import (
	"errors"

	"inputrig/internal/input/bind"
)

// ErrHookInstalled is returned by SetHook when an interceptor is already
// active. Only one interceptor is supported; installing a second one is a
// caller contract violation.
var ErrHookInstalled = errors.New("input: intercept hook already installed")

// InterceptResult is a hook callback's verdict on an event.
type InterceptResult int

const (
	// ContinueMonitoring keeps the hook installed and lets normal dispatch
	// see the event too.
	ContinueMonitoring InterceptResult = iota

	// StopMonitoring consumes the event exclusively and uninstalls the
	// hook, without a separate RemoveHook call.
	StopMonitoring
)

// InterceptCallback observes raw input events ahead of dispatch. Used by
// binding-capture UIs to steal the next pressed keys.
type InterceptCallback func(key bind.Key, value float32) InterceptResult

// SetHook installs the intercept hook. Fails if one is already installed.
func (m *Manager) SetHook(callback InterceptCallback) error {
	if callback == nil {
		return errors.New("input: nil intercept callback")
	}

	m.hookMu.Lock()
	defer m.hookMu.Unlock()

	if m.hook != nil {
		return ErrHookInstalled
	}
	m.hook = callback
	m.hookGen++
	return nil
}

// RemoveHook uninstalls the intercept hook, if any.
func (m *Manager) RemoveHook() {
	m.hookMu.Lock()
	defer m.hookMu.Unlock()
	if m.hook != nil {
		m.hook = nil
		m.hookGen++
	}
}

// HasHook reports whether an intercept hook is installed.
func (m *Manager) HasHook() bool {
	m.hookMu.Lock()
	defer m.hookMu.Unlock()
	return m.hook != nil
}

// runEventHook offers an event to the installed hook. The callback is
// copied out and invoked without holding the hook lock, so a callback may
// itself call RemoveHook (or read bindings) without deadlocking. Returns
// whether a hook saw the event and whether it consumed it exclusively.
func (m *Manager) runEventHook(key bind.Key, value float32) (hooked, consumed bool) {
	m.hookMu.Lock()
	callback := m.hook
	gen := m.hookGen
	m.hookMu.Unlock()

	if callback == nil {
		return false, false
	}

	if callback(key, value) == StopMonitoring {
		// Clear only the slot generation this callback was copied from; a
		// hook installed meanwhile stays in place.
		m.hookMu.Lock()
		if m.hookGen == gen {
			m.hook = nil
			m.hookGen++
		}
		m.hookMu.Unlock()
		return true, true
	}

	return true, false
}
