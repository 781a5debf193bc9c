// Package bind defines the compact physical-key representation used by the
// binding engine, together with the string codec for persisted bindings.
//
// A binding string has the form "Source/SubBinding", where Source names a
// device class (optionally with an index, e.g. "Mouse0", "SDL-1") and
// SubBinding names a key, button or signed axis on it. Multi-key chords join
// several binding strings with " & ".
package bind

import (
	"fmt"
	"strings"
)

// SourceType identifies a class of physical input device.
type SourceType uint8

const (
	// SourceKeyboard is the built-in host keyboard.
	SourceKeyboard SourceType = iota
	// SourceMouse is the built-in host mouse.
	SourceMouse
	// SourceSDL is the external SDL-style game controller backend.
	SourceSDL

	sourceCount
)

// FirstExternalSource is the first source type routed through the source
// registry. Keyboard and mouse are decoded directly by this package.
const FirstExternalSource = SourceSDL

// NumSourceTypes is the number of defined source types.
const NumSourceTypes = int(sourceCount)

var sourceNames = [sourceCount]string{
	"Keyboard",
	"Mouse",
	"SDL",
}

// String returns the canonical source name used in binding strings.
func (t SourceType) String() string {
	if t < sourceCount {
		return sourceNames[t]
	}
	return fmt.Sprintf("SourceType(%d)", uint8(t))
}

// ParseSourceType resolves a canonical source name.
func ParseSourceType(s string) (SourceType, bool) {
	for i := SourceType(0); i < sourceCount; i++ {
		if s == sourceNames[i] {
			return i, true
		}
	}
	return 0, false
}

// Subclass refines the meaning of a key's Data field within its source type.
type Subclass uint8

const (
	// SubclassNone is used for plain keyboard keys.
	SubclassNone Subclass = iota
	// SubclassMouseButton is a mouse button index.
	SubclassMouseButton
	// SubclassMousePointer is a relative pointer axis index.
	SubclassMousePointer
	// SubclassMouseWheel is a wheel axis index.
	SubclassMouseWheel
	// SubclassControllerAxis is a controller axis index.
	SubclassControllerAxis
	// SubclassControllerButton is a controller button index.
	SubclassControllerButton
)

// String returns a human-readable subclass name.
func (s Subclass) String() string {
	switch s {
	case SubclassNone:
		return "None"
	case SubclassMouseButton:
		return "MouseButton"
	case SubclassMousePointer:
		return "MousePointer"
	case SubclassMouseWheel:
		return "MouseWheel"
	case SubclassControllerAxis:
		return "ControllerAxis"
	case SubclassControllerButton:
		return "ControllerButton"
	default:
		return fmt.Sprintf("Subclass(%d)", uint8(s))
	}
}

// Key identifies a single physical input: a keyboard key, mouse button or
// axis, or a controller button or axis direction. It is a small comparable
// value type, used directly as a map key by the binding table.
type Key struct {
	// SourceType is the device class producing the event.
	SourceType SourceType

	// SourceIndex is the physical device instance, 0-based.
	SourceIndex uint8

	// SourceSubtype refines Data's meaning within the source type.
	SourceSubtype Subclass

	// Negative is the direction sign for axes.
	Negative bool

	// Data is the key code, button index or axis index.
	Data uint32
}

// MaskDirection returns the key with its direction sign cleared. Both
// polarities of an axis mask to the same key, so chord tracking sees one
// entry per physical control.
func (k Key) MaskDirection() Key {
	k.Negative = false
	return k
}

// String returns a diagnostic representation. Use the codec functions for
// the persisted binding-string form.
func (k Key) String() string {
	sign := '+'
	if k.Negative {
		sign = '-'
	}
	return fmt.Sprintf("%s%d/%s:%d%c", k.SourceType, k.SourceIndex, k.SourceSubtype, k.Data, sign)
}

// SplitBinding splits a binding string at the first '/' into its source and
// sub-binding halves. A string with no separator is malformed.
func SplitBinding(binding string) (source, sub string, ok bool) {
	idx := strings.IndexByte(binding, '/')
	if idx < 0 {
		return "", "", false
	}
	return binding[:idx], binding[idx+1:], true
}

// SplitChord splits a chord expression on '&', trimming whitespace from each
// part and discarding empties. "A & B&C" yields ["A" "B" "C"]; an empty or
// separator-only expression yields nil.
func SplitChord(binding string) []string {
	if binding == "" {
		return nil
	}

	var parts []string
	for _, part := range strings.Split(binding, "&") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
