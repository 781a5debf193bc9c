package bind

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Keyboard key codes occupy two ranges: printable keys store their rune
// codepoint directly, and non-printable keys store the terminal key code
// tagged with keyboardSpecialFlag so the ranges cannot collide.
const keyboardSpecialFlag uint32 = 0x40000000

// MakeKeyboardRuneKey creates a key for a printable keyboard key.
func MakeKeyboardRuneKey(r rune) Key {
	return Key{SourceType: SourceKeyboard, Data: uint32(r)}
}

// MakeKeyboardSpecialKey creates a key for a non-printable keyboard key.
func MakeKeyboardSpecialKey(k tcell.Key) Key {
	return Key{SourceType: SourceKeyboard, Data: keyboardSpecialFlag | uint32(uint16(k))}
}

// keyboardAliases maps common alternate spellings to terminal key codes.
// The canonical names come from tcell's key name table; these cover the
// spellings users actually write in config files.
var keyboardAliases = map[string]tcell.Key{
	"escape":   tcell.KeyEscape,
	"return":   tcell.KeyEnter,
	"cr":       tcell.KeyEnter,
	"bs":       tcell.KeyBackspace,
	"del":      tcell.KeyDelete,
	"ins":      tcell.KeyInsert,
	"pageup":   tcell.KeyPgUp,
	"pagedown": tcell.KeyPgDn,
}

var (
	keyboardNamesOnce sync.Once
	keyboardNameToKey map[string]tcell.Key
)

// keyboardNames returns the lowercased reverse of tcell's key name table.
func keyboardNames() map[string]tcell.Key {
	keyboardNamesOnce.Do(func() {
		keyboardNameToKey = make(map[string]tcell.Key, len(tcell.KeyNames))
		for k, name := range tcell.KeyNames {
			keyboardNameToKey[strings.ToLower(name)] = k
		}
	})
	return keyboardNameToKey
}

// ParseKeyboardKey decodes a "Keyboard/<Name>" binding. The name is matched
// case-insensitively against the terminal key table and its aliases; any
// single printable rune is accepted as itself.
func ParseKeyboardKey(source, sub string) (Key, bool) {
	if source != "Keyboard" || sub == "" {
		return Key{}, false
	}

	lower := strings.ToLower(sub)

	if lower == "space" {
		return MakeKeyboardRuneKey(' '), true
	}
	if k, ok := keyboardAliases[lower]; ok {
		return MakeKeyboardSpecialKey(k), true
	}
	if k, ok := keyboardNames()[lower]; ok {
		return MakeKeyboardSpecialKey(k), true
	}

	if r, size := utf8.DecodeRuneInString(sub); size == len(sub) && r != utf8.RuneError && unicode.IsPrint(r) {
		return MakeKeyboardRuneKey(r), true
	}

	return Key{}, false
}

// ConvertKeyboardCodeToString returns the canonical name for a keyboard key
// code, or "" if the code has no representable name.
func ConvertKeyboardCodeToString(data uint32) string {
	if data&keyboardSpecialFlag != 0 {
		return tcell.KeyNames[tcell.Key(data&^keyboardSpecialFlag)]
	}

	r := rune(data)
	if r == ' ' {
		return "Space"
	}
	if unicode.IsPrint(r) {
		return string(r)
	}
	return ""
}
