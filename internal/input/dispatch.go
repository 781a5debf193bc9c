package input

import "inputrig/internal/input/bind"

// HasAnyBindingsForKey reports whether any chord registers the masked form
// of key.
func (m *Manager) HasAnyBindingsForKey(key bind.Key) bool {
	m.bindMu.Lock()
	defer m.bindMu.Unlock()

	_, ok := m.bindings[key.MaskDirection()]
	return ok
}

// InvokeEvents is the dispatch entry point, called by input backends for
// every raw event. Values are 0/1 for buttons and signed magnitudes for
// axes. It returns true when a hook observed the event or any binding
// matched.
//
// An installed hook sees the raw event first. A StopMonitoring result
// consumes the event exclusively (and uninstalls the hook); a
// ContinueMonitoring result lets normal dispatch proceed as well.
func (m *Manager) InvokeEvents(key bind.Key, value float32) bool {
	hooked, consumed := m.runEventHook(key, value)
	if consumed {
		return true
	}

	return m.dispatch(key, value) || hooked
}

// dispatch updates chord state for every binding registered under the
// masked key and fires handlers on activation edges (and on every nonzero
// value for axis handlers).
func (m *Manager) dispatch(key bind.Key, value float32) bool {
	m.bindMu.Lock()
	defer m.bindMu.Unlock()

	masked := key.MaskDirection()
	matches := m.bindings[masked]
	if len(matches) == 0 {
		return false
	}

	for _, b := range matches {
		// A chord never repeats a physical key, so the key occupies exactly
		// one slot and the binding is touched once per event.
		slot := b.slotOf(masked)
		if slot < 0 {
			continue
		}

		bit := uint8(1) << uint8(slot)
		negative := b.keys[slot].Negative

		newActive := value > 0
		if negative {
			newActive = value < 0
		}

		newMask := b.currentMask &^ bit
		if newActive {
			newMask = b.currentMask | bit
		}

		wasFull := b.currentMask == b.fullMask
		isFull := newMask == b.fullMask
		b.currentMask = newMask

		// The handler expects [0, 1]; fold the sign into the magnitude.
		var normalized float32
		if negative {
			if value < 0 {
				normalized = -value
			}
		} else if value > 0 {
			normalized = value
		}

		// Buttons fire on full-chord edges only. Axes also re-fire on
		// every nonzero value while held.
		if wasFull != isFull || (b.handler.IsAxis() && normalized > 0) {
			b.handler.Invoke(normalized)
		}
	}

	return true
}
