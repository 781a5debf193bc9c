package bind

// EventHandler is the consumer slot of a binding: either a button handler
// taking an on/off state, or an axis handler taking a normalized magnitude.
// The variant exists so callers registering simple on/off hotkeys never
// hand-convert floats to booleans.
type EventHandler struct {
	button func(pressed bool)
	axis   func(value float32)
}

// ButtonHandler wraps an on/off callback.
func ButtonHandler(fn func(pressed bool)) EventHandler {
	return EventHandler{button: fn}
}

// AxisHandler wraps a normalized-magnitude callback. Axis handlers re-fire
// on every nonzero value, not just on edges.
func AxisHandler(fn func(value float32)) EventHandler {
	return EventHandler{axis: fn}
}

// IsAxis reports whether this is an axis handler.
func (h EventHandler) IsAxis() bool {
	return h.axis != nil
}

// IsValid reports whether a callback is set.
func (h EventHandler) IsValid() bool {
	return h.axis != nil || h.button != nil
}

// Invoke delivers a value in [0, 1] to the handler, converting to a boolean
// for the button arm.
func (h EventHandler) Invoke(value float32) {
	if h.axis != nil {
		h.axis(value)
	} else if h.button != nil {
		h.button(value > 0)
	}
}
