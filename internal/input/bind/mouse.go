package bind

import (
	"fmt"
	"strconv"
	"strings"
)

// MakeMouseButtonKey creates a key for a mouse button.
func MakeMouseButtonKey(index uint8, button uint32) Key {
	return Key{SourceType: SourceMouse, SourceIndex: index, SourceSubtype: SubclassMouseButton, Data: button}
}

// MakeMousePointerKey creates a key for a relative pointer axis.
func MakeMousePointerKey(index uint8, axis uint32) Key {
	return Key{SourceType: SourceMouse, SourceIndex: index, SourceSubtype: SubclassMousePointer, Data: axis}
}

// MakeMouseWheelKey creates a key for a wheel axis direction.
func MakeMouseWheelKey(index uint8, axis uint32, negative bool) Key {
	return Key{SourceType: SourceMouse, SourceIndex: index, SourceSubtype: SubclassMouseWheel, Data: axis, Negative: negative}
}

// ParseMouseKey decodes a "Mouse<n>/Button<m>" binding. Only the Button form
// is decoded; Pointer and Wheel keys stringify (see ConvertMouseKeyToString)
// but are deliberately not re-parsed, matching the behavior binding strings
// have always had. Callers that need wheel bindings must construct them
// programmatically.
func ParseMouseKey(source, sub string) (Key, bool) {
	index, ok := parseMouseIndex(source)
	if !ok {
		return Key{}, false
	}

	num, ok := strings.CutPrefix(sub, "Button")
	if !ok {
		return Key{}, false
	}

	button, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return Key{}, false
	}

	return MakeMouseButtonKey(index, uint32(button)), true
}

// parseMouseIndex accepts "Mouse" (device 0) or "Mouse<n>".
func parseMouseIndex(source string) (uint8, bool) {
	rest, ok := strings.CutPrefix(source, "Mouse")
	if !ok {
		return 0, false
	}
	if rest == "" {
		return 0, true
	}
	index, err := strconv.ParseUint(rest, 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(index), true
}

// ConvertMouseKeyToString returns the canonical string for a mouse key, or
// "" if the subtype is unknown.
func ConvertMouseKeyToString(key Key) string {
	switch key.SourceSubtype {
	case SubclassMouseButton:
		return fmt.Sprintf("Mouse%d/Button%d", key.SourceIndex, key.Data)
	case SubclassMousePointer:
		return fmt.Sprintf("Mouse%d/Pointer%d", key.SourceIndex, key.Data)
	case SubclassMouseWheel:
		sign := "+"
		if key.Negative {
			sign = "-"
		}
		return fmt.Sprintf("Mouse%d/Wheel%d%s", key.SourceIndex, key.Data, sign)
	default:
		return ""
	}
}
