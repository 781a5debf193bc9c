// Package input implements the binding resolution engine: it maps physical
// input events from the keyboard, mouse and pluggable sources onto logical
// actions (hotkeys and virtual-pad controls) through a reloadable binding
// table with multi-key chord tracking.
package input

import (
	"sort"
	"strings"
	"sync"

	"inputrig/internal/input/bind"
	"inputrig/internal/input/source"
	"inputrig/internal/logging"
	"inputrig/internal/pad"
	"inputrig/internal/settings"
)

// MaxKeysPerBinding is the chord length limit. Binding strings with more
// parts are rejected whole.
const MaxKeysPerBinding = 4

// HotkeyInfo describes one bindable hotkey. Tables of these are registered
// by the host; the bound strings live in the "Hotkeys" settings section
// under Name.
type HotkeyInfo struct {
	// Name is the settings key and stable identifier.
	Name string

	// Category groups hotkeys for display.
	Category string

	// DisplayName is the user-visible name.
	DisplayName string

	// Handler receives the chord's press/release edges.
	Handler func(pressed bool)
}

// Config configures a Manager.
type Config struct {
	// Logger receives reload and dispatch diagnostics. Defaults to the
	// null logger.
	Logger *logging.Logger

	// Sink receives resolved virtual-pad control values. A nil sink
	// disables pad bindings.
	Sink pad.StateSink
}

// Manager owns all binding state: the table mapping masked physical keys to
// chord bindings, the intercept hook slot, the external source registry and
// the registered hotkey tables. One Manager is created at startup and
// shared by every collaborator that dispatches events or reloads bindings.
type Manager struct {
	log     *logging.Logger
	sources *source.Registry
	sink    pad.StateSink
	hotkeys [][]HotkeyInfo

	// bindMu guards the table and all chord state. Dispatch mutates chord
	// masks, so it takes the lock exclusively too; keep hold times short.
	bindMu   sync.Mutex
	bindings map[bind.Key][]*binding

	// hookMu is independent of bindMu so a hook callback can safely call
	// back into binding lookups without a lock-order inversion. hookGen
	// changes on every install/remove so a StopMonitoring result only
	// clears the slot generation it was invoked under.
	hookMu  sync.Mutex
	hook    InterceptCallback
	hookGen uint64
}

// New creates a Manager with an empty binding table.
func New(cfg Config) *Manager {
	log := cfg.Logger
	if log == nil {
		log = logging.Null
	}
	return &Manager{
		log:      log.WithComponent("input"),
		sources:  source.NewRegistry(log),
		sink:     cfg.Sink,
		bindings: make(map[bind.Key][]*binding),
	}
}

// Sources returns the external source registry, for factory registration.
func (m *Manager) Sources() *source.Registry {
	return m.sources
}

// RegisterHotkeys appends a static hotkey table. Call before the first
// ReloadBindings.
func (m *Manager) RegisterHotkeys(list []HotkeyInfo) {
	m.hotkeys = append(m.hotkeys, list)
}

// HotkeyList returns every registered hotkey, sorted by category then
// display name, case-insensitively. Used by binding editors.
func (m *Manager) HotkeyList() []HotkeyInfo {
	var out []HotkeyInfo
	for _, list := range m.hotkeys {
		out = append(out, list...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci := strings.ToLower(out[i].Category)
		cj := strings.ToLower(out[j].Category)
		if ci != cj {
			return ci < cj
		}
		return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
	})
	return out
}

// ParseBindingKey decodes one binding token ("Source/SubBinding") into a
// key. Keyboard and mouse are handled directly; anything else is offered to
// each live external source in enumeration order.
func (m *Manager) ParseBindingKey(binding string) (bind.Key, bool) {
	src, sub, ok := bind.SplitBinding(binding)
	if !ok {
		m.log.Warn("malformed binding: %q", binding)
		return bind.Key{}, false
	}

	switch {
	case strings.HasPrefix(src, "Keyboard"):
		return bind.ParseKeyboardKey(src, sub)
	case strings.HasPrefix(src, "Mouse"):
		return bind.ParseMouseKey(src, sub)
	default:
		return m.sources.ParseKeyString(src, sub)
	}
}

// ConvertKeyToString encodes a key back into its binding-string form, or ""
// if the key cannot be represented (e.g. its source is not live). Callers
// must treat "" as unbindable.
func (m *Manager) ConvertKeyToString(key bind.Key) string {
	switch key.SourceType {
	case bind.SourceKeyboard:
		if name := bind.ConvertKeyboardCodeToString(key.Data); name != "" {
			return "Keyboard/" + name
		}
		return ""
	case bind.SourceMouse:
		return bind.ConvertMouseKeyToString(key)
	default:
		return m.sources.ConvertKeyToString(key)
	}
}

// ConvertKeysToString joins a chord's keys with " & ". If any key fails to
// stringify the whole result is empty; partial chord strings are never
// produced.
func (m *Manager) ConvertKeysToString(keys []bind.Key) string {
	var b strings.Builder
	for i, key := range keys {
		str := m.ConvertKeyToString(key)
		if str == "" {
			return ""
		}
		if i > 0 {
			b.WriteString(" & ")
		}
		b.WriteString(str)
	}
	return b.String()
}

// ReloadSources brings external sources in line with the "InputSources"
// settings section. Runs on the polling context.
func (m *Manager) ReloadSources(si settings.Interface) {
	m.sources.Reload(si, m.InvokeEvents)
}

// PollSources pumps events on all live sources.
func (m *Manager) PollSources() {
	m.sources.PollAll()
}

// CloseSources shuts down all live sources.
func (m *Manager) CloseSources() {
	m.sources.CloseAll()
}

// VibrationMotorCount returns the motor count for a device of an external
// source, or 0 when the source is not live.
func (m *Manager) VibrationMotorCount(t bind.SourceType, index uint8) uint32 {
	src := m.sources.Get(t)
	if src == nil {
		return 0
	}
	return src.GetVibrationMotorCount(index)
}

// SetVibrationMotorStrength forwards motor strengths to the owning source.
func (m *Manager) SetVibrationMotorStrength(t bind.SourceType, index uint8, strengths []float32) {
	if src := m.sources.Get(t); src != nil {
		src.SetVibrationMotorStrength(index, strengths)
	}
}
