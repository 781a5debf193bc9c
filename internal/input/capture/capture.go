// Package capture records a new binding interactively: it steals raw input
// events through the engine's intercept hook, accumulates pressed keys into
// a chord, and reports the canonical chord string once everything is
// released. This is the backend for "press a key" rebinding dialogs.
package capture

import (
	"sync"

	"inputrig/internal/input"
	"inputrig/internal/input/bind"
)

// pressThreshold is the magnitude above which an axis counts as pressed
// during capture, filtering out drift and half-pressed triggers.
const pressThreshold = 0.5

// Result delivers a finished capture. Chord holds the pressed keys in press
// order; Binding is their canonical string form, or "" if any key turned
// out to be unrepresentable.
type Result struct {
	Chord   []bind.Key
	Binding string
}

// Recorder captures one chord through the intercept hook.
type Recorder struct {
	manager *input.Manager
	done    func(Result)

	mu     sync.Mutex
	active bool
	keys   []bind.Key
	held   []bool
}

// NewRecorder creates a recorder delivering results to done. The callback
// runs on the event dispatch context.
func NewRecorder(manager *input.Manager, done func(Result)) *Recorder {
	return &Recorder{manager: manager, done: done}
}

// Start installs the intercept hook and begins listening. It fails if
// another interceptor is already active.
func (r *Recorder) Start() error {
	r.mu.Lock()
	r.active = true
	r.keys = nil
	r.held = nil
	r.mu.Unlock()

	if err := r.manager.SetHook(r.observe); err != nil {
		r.mu.Lock()
		r.active = false
		r.mu.Unlock()
		return err
	}
	return nil
}

// Abort stops listening without delivering a result.
func (r *Recorder) Abort() {
	r.mu.Lock()
	wasActive := r.active
	r.active = false
	r.mu.Unlock()

	if wasActive {
		r.manager.RemoveHook()
	}
}

// observe is the intercept callback. Keys joining the chord are recorded
// with their direction sign and tracked while held; the capture completes
// only once no recorded key remains down, so a release followed by a
// re-press keeps the capture open.
func (r *Recorder) observe(key bind.Key, value float32) input.InterceptResult {
	r.mu.Lock()

	if !r.active {
		r.mu.Unlock()
		return input.StopMonitoring
	}

	pressed := value > pressThreshold || value < -pressThreshold
	idx := r.indexOf(key)

	if pressed {
		if idx < 0 {
			if len(r.keys) < input.MaxKeysPerBinding {
				key.Negative = value < 0
				r.keys = append(r.keys, key)
				r.held = append(r.held, true)
			}
		} else {
			r.held[idx] = true
		}
		r.mu.Unlock()
		return input.ContinueMonitoring
	}

	// Release of a key we never saw pressed (e.g. the click that opened
	// the capture dialog) is ignored.
	if idx < 0 {
		r.mu.Unlock()
		return input.ContinueMonitoring
	}

	r.held[idx] = false
	for _, h := range r.held {
		if h {
			r.mu.Unlock()
			return input.ContinueMonitoring
		}
	}

	// Whole chord released: finish.
	chord := r.keys
	r.active = false
	r.keys = nil
	r.held = nil
	r.mu.Unlock()

	if r.done != nil {
		r.done(Result{
			Chord:   chord,
			Binding: r.manager.ConvertKeysToString(chord),
		})
	}
	return input.StopMonitoring
}

// indexOf finds a key in the captured chord, ignoring direction.
// Caller holds mu.
func (r *Recorder) indexOf(key bind.Key) int {
	masked := key.MaskDirection()
	for i, k := range r.keys {
		if k.MaskDirection() == masked {
			return i
		}
	}
	return -1
}
