// Package settings provides the configuration surface consumed by the
// binding engine: string, boolean and string-list values addressed by
// (section, key), backed by a JSON document.
package settings

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Interface is the read/write settings contract. The engine reads binding
// strings and source flags through it; the capture flow writes rebound
// chords back through it.
type Interface interface {
	GetStringValue(section, key, def string) string
	GetBoolValue(section, key string, def bool) bool
	GetStringList(section, key string) []string

	SetStringValue(section, key, value string)
	SetStringList(section, key string, values []string)
	ClearKey(section, key string)
}

// Store is a JSON-document Interface implementation. The zero value is not
// usable; construct with NewStore or LoadStore.
type Store struct {
	mu   sync.RWMutex
	data []byte
}

// NewStore creates a store from a JSON document. An empty or nil document
// starts as "{}".
func NewStore(data []byte) *Store {
	if len(data) == 0 {
		data = []byte("{}")
	}
	return &Store{data: data}
}

// LoadStore reads a store from a JSON file.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("settings file %s: invalid JSON", path)
	}
	return NewStore(data), nil
}

// Reload replaces the document with the contents of a JSON file, keeping
// the store identity stable for long-lived holders.
func (s *Store) Reload(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("settings file %s: invalid JSON", path)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Save writes the store to a JSON file.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	data := make([]byte, len(s.data))
	copy(data, s.data)
	s.mu.RUnlock()

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// Bytes returns a copy of the underlying JSON document.
func (s *Store) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// settingsPath builds a gjson path for a (section, key) pair, escaping path
// metacharacters so literal dots in key names stay literal.
func settingsPath(section, key string) string {
	return escapeComponent(section) + "." + escapeComponent(key)
}

func escapeComponent(s string) string {
	if !strings.ContainsAny(s, ".*?\\") {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '.', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// GetStringValue returns the string at (section, key), or def if absent or
// not a string-like value.
func (s *Store) GetStringValue(section, key, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := gjson.GetBytes(s.data, settingsPath(section, key))
	if !res.Exists() || res.IsArray() || res.IsObject() {
		return def
	}
	return res.String()
}

// GetBoolValue returns the boolean at (section, key), or def if absent.
func (s *Store) GetBoolValue(section, key string, def bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := gjson.GetBytes(s.data, settingsPath(section, key))
	if !res.Exists() {
		return def
	}
	return res.Bool()
}

// GetStringList returns the strings at (section, key). A bare string value
// counts as a one-element list; a missing key yields nil.
func (s *Store) GetStringList(section, key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := gjson.GetBytes(s.data, settingsPath(section, key))
	if !res.Exists() {
		return nil
	}
	if !res.IsArray() {
		return []string{res.String()}
	}

	var values []string
	res.ForEach(func(_, item gjson.Result) bool {
		values = append(values, item.String())
		return true
	})
	return values
}

// SetStringValue stores a string at (section, key).
func (s *Store) SetStringValue(section, key, value string) {
	s.set(settingsPath(section, key), value)
}

// SetStringList stores a string list at (section, key).
func (s *Store) SetStringList(section, key string, values []string) {
	if values == nil {
		values = []string{}
	}
	s.set(settingsPath(section, key), values)
}

// ClearKey removes (section, key) from the store.
func (s *Store) ClearKey(section, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := sjson.DeleteBytes(s.data, settingsPath(section, key))
	if err != nil {
		return
	}
	s.data = data
}

func (s *Store) set(path string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := sjson.SetBytes(s.data, path, value)
	if err != nil {
		return
	}
	s.data = data
}
