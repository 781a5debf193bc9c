// Package source defines the capability contract pluggable input backends
// implement, plus the registry that manages their lifecycle. Keyboard and
// mouse are built-ins decoded by the bind package and never appear here.
package source

import (
	"fmt"
	"strconv"
	"strings"

	"inputrig/internal/input/bind"
	"inputrig/internal/logging"
	"inputrig/internal/settings"
)

// Handler receives raw input events from a source. Values are normalized:
// 0/1 for buttons, roughly [-1, 1] or [0, 1] for axes. It reports whether
// anything consumed the event.
type Handler func(key bind.Key, value float32) bool

// Source is the capability contract for an external input backend.
type Source interface {
	// Initialize prepares the backend. A failed source is discarded.
	Initialize(si settings.Interface, log *logging.Logger) error

	// Shutdown releases the backend's resources.
	Shutdown()

	// PollEvents pumps pending device events into the handler.
	PollEvents()

	// GetVibrationMotorCount returns the motor count of a device.
	GetVibrationMotorCount(index uint8) uint32

	// SetVibrationMotorStrength updates motor strengths, one per entry.
	SetVibrationMotorStrength(index uint8, strengths []float32)

	// ParseKeyString decodes a (device, sub-binding) pair this source owns.
	ParseKeyString(device, binding string) (bind.Key, bool)

	// ConvertKeyToString encodes a key this source owns, or returns "".
	ConvertKeyToString(key bind.Key) string
}

// NameTable holds the ordered axis and button names of a controller class.
type NameTable struct {
	Axes    []string
	Buttons []string
}

// MakeGenericControllerAxisKey creates a key for a controller axis event.
// Direction is carried by the event value, not the key.
func MakeGenericControllerAxisKey(t bind.SourceType, controller uint8, axis uint32) bind.Key {
	return bind.Key{
		SourceType:    t,
		SourceIndex:   controller,
		SourceSubtype: bind.SubclassControllerAxis,
		Data:          axis,
	}
}

// MakeGenericControllerButtonKey creates a key for a controller button event.
func MakeGenericControllerButtonKey(t bind.SourceType, controller uint8, button uint32) bind.Key {
	return bind.Key{
		SourceType:    t,
		SourceIndex:   controller,
		SourceSubtype: bind.SubclassControllerButton,
		Data:          button,
	}
}

// ParseGenericControllerKey decodes a "<Type>-<n>/<SubBinding>" pair against
// a name table. Axis sub-bindings start with '+' or '-' followed by an axis
// name; anything else must match a button name exactly.
func ParseGenericControllerKey(t bind.SourceType, names NameTable, device, sub string) (bind.Key, bool) {
	rest, ok := strings.CutPrefix(device, t.String()+"-")
	if !ok || sub == "" {
		return bind.Key{}, false
	}

	controller, err := strconv.ParseUint(rest, 10, 8)
	if err != nil {
		return bind.Key{}, false
	}
	index := uint8(controller)

	if sub[0] == '+' || sub[0] == '-' {
		axisName := sub[1:]
		for i, name := range names.Axes {
			if axisName == name {
				key := MakeGenericControllerAxisKey(t, index, uint32(i))
				key.Negative = sub[0] == '-'
				return key, true
			}
		}
		return bind.Key{}, false
	}

	for i, name := range names.Buttons {
		if sub == name {
			return MakeGenericControllerButtonKey(t, index, uint32(i)), true
		}
	}

	return bind.Key{}, false
}

// ConvertGenericControllerKeyToString encodes a controller key against a
// name table, or returns "" for out-of-range indices.
func ConvertGenericControllerKeyToString(key bind.Key, names NameTable) string {
	switch key.SourceSubtype {
	case bind.SubclassControllerAxis:
		if int(key.Data) >= len(names.Axes) {
			return ""
		}
		sign := "+"
		if key.Negative {
			sign = "-"
		}
		return fmt.Sprintf("%s-%d/%s%s", key.SourceType, key.SourceIndex, sign, names.Axes[key.Data])
	case bind.SubclassControllerButton:
		if int(key.Data) >= len(names.Buttons) {
			return ""
		}
		return fmt.Sprintf("%s-%d/%s", key.SourceType, key.SourceIndex, names.Buttons[key.Data])
	default:
		return ""
	}
}
