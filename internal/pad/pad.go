// Package pad defines the virtual controller types bindable to physical
// input, and the sink that receives resolved control values.
package pad

import "sync"

// MaxSlots is the number of virtual pad slots.
const MaxSlots = 2

// TypeNone is the sentinel controller type for an unpopulated slot.
const TypeNone = "None"

// DefaultTypes holds the default controller type per slot.
var DefaultTypes = [MaxSlots]string{"DualShock2", TypeNone}

// controlNames lists the bindable controls per controller type, in control
// index order. The analog stick directions are separate controls so each
// half-axis binds independently.
var controlNames = map[string][]string{
	"DualShock2": {
		"Up",
		"Right",
		"Down",
		"Left",
		"Triangle",
		"Circle",
		"Cross",
		"Square",
		"Select",
		"Start",
		"L1",
		"L2",
		"R1",
		"R2",
		"L3",
		"R3",
		"Analog",
		"LUp",
		"LRight",
		"LDown",
		"LLeft",
		"RUp",
		"RRight",
		"RDown",
		"RLeft",
	},
}

// ControllerBinds returns the ordered control names for a controller type,
// or nil for unknown types and TypeNone.
func ControllerBinds(controllerType string) []string {
	return controlNames[controllerType]
}

// ControllerTypes returns the known controller type names.
func ControllerTypes() []string {
	types := make([]string, 0, len(controlNames))
	for name := range controlNames {
		types = append(types, name)
	}
	return types
}

// StateSink receives resolved control values for a pad slot. Values are in
// [0, 1] per direction; buttons arrive as 0 or 1.
type StateSink interface {
	SetControllerState(slot uint32, control uint32, value float32)
}

// SinkFunc adapts a function to StateSink.
type SinkFunc func(slot uint32, control uint32, value float32)

// SetControllerState implements StateSink.
func (f SinkFunc) SetControllerState(slot uint32, control uint32, value float32) {
	f(slot, control, value)
}

// State is an in-memory StateSink recording the last value per control.
type State struct {
	mu     sync.RWMutex
	values [MaxSlots][]float32
}

// NewState creates a state sink sized for the largest controller type.
func NewState() *State {
	s := &State{}
	max := 0
	for _, names := range controlNames {
		if len(names) > max {
			max = len(names)
		}
	}
	for i := range s.values {
		s.values[i] = make([]float32, max)
	}
	return s
}

// SetControllerState implements StateSink.
func (s *State) SetControllerState(slot uint32, control uint32, value float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if int(slot) >= len(s.values) || int(control) >= len(s.values[slot]) {
		return
	}
	s.values[slot][control] = value
}

// Value returns the last value recorded for a control, or 0.
func (s *State) Value(slot uint32, control uint32) float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if int(slot) >= len(s.values) || int(control) >= len(s.values[slot]) {
		return 0
	}
	return s.values[slot][control]
}
