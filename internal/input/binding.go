package input

import (
	"fmt"

	"inputrig/internal/input/bind"
	"inputrig/internal/pad"
	"inputrig/internal/settings"
)

// binding tracks the keys making up one chord and which of them are
// currently active. A chord is shared by every masked-key bucket it
// registers under; its masks are only touched under the table lock.
type binding struct {
	keys        [MaxKeysPerBinding]bind.Key
	handler     bind.EventHandler
	numKeys     uint8
	fullMask    uint8
	currentMask uint8
}

// slotOf returns the chord slot occupied by the masked key, or -1.
func (b *binding) slotOf(masked bind.Key) int {
	for i := uint8(0); i < b.numKeys; i++ {
		if b.keys[i].MaskDirection() == masked {
			return int(i)
		}
	}
	return -1
}

// ReloadBindings rebuilds the binding table from settings: hotkey bindings
// from the "Hotkeys" section, then pad bindings per slot. The rebuild is
// atomic with respect to dispatch; no half-constructed table is ever
// observable.
func (m *Manager) ReloadBindings(si settings.Interface) {
	m.bindMu.Lock()
	defer m.bindMu.Unlock()

	m.bindings = make(map[bind.Key][]*binding)

	m.addHotkeyBindings(si)

	for slot := uint32(0); slot < pad.MaxSlots; slot++ {
		m.addPadBindings(si, slot)
	}
}

// addHotkeyBindings registers button bindings for every known hotkey.
func (m *Manager) addHotkeyBindings(si settings.Interface) {
	for _, list := range m.hotkeys {
		for i := range list {
			hotkey := &list[i]
			bindings := si.GetStringList("Hotkeys", hotkey.Name)
			if len(bindings) == 0 {
				continue
			}
			m.addBindings(bindings, bind.ButtonHandler(hotkey.Handler))
		}
	}
}

// addPadBindings registers axis bindings for one pad slot. All pad controls
// bind as axes, so pressure-sensitive inputs pass through unquantized.
func (m *Manager) addPadBindings(si settings.Interface, slot uint32) {
	section := fmt.Sprintf("Pad%d", slot+1)

	controllerType := si.GetStringValue(section, "Type", pad.DefaultTypes[slot])
	if controllerType == "" || controllerType == pad.TypeNone {
		return
	}

	controls := pad.ControllerBinds(controllerType)
	if len(controls) == 0 {
		m.log.Warn("%s: unknown controller type %q", section, controllerType)
		return
	}
	if m.sink == nil {
		return
	}

	for i, control := range controls {
		bindings := si.GetStringList(section, control)
		if len(bindings) == 0 {
			continue
		}

		controlIndex := uint32(i)
		m.addBindings(bindings, bind.AxisHandler(func(value float32) {
			m.sink.SetControllerState(slot, controlIndex, value)
		}))
	}
}

// addBindings resolves each binding string into a chord and registers it
// under the masked form of every chord key. A string with any unresolvable
// part, too many parts, or a repeated key is dropped whole. Caller holds
// bindMu.
func (m *Manager) addBindings(bindings []string, handler bind.EventHandler) {
	for _, str := range bindings {
		parts := bind.SplitChord(str)
		if len(parts) == 0 {
			continue
		}
		if len(parts) > MaxKeysPerBinding {
			m.log.Warn("too many chord parts, max is %d (%s)", MaxKeysPerBinding, str)
			continue
		}

		b := &binding{handler: handler}
		ok := true
		for _, part := range parts {
			key, found := m.ParseBindingKey(part)
			if !found {
				m.log.Warn("invalid binding: %q", str)
				ok = false
				break
			}

			// A chord repeating a physical key could never complete;
			// reject the whole string.
			if b.slotOf(key.MaskDirection()) >= 0 {
				m.log.Warn("duplicate key in chord: %q", str)
				ok = false
				break
			}

			b.keys[b.numKeys] = key
			b.fullMask |= 1 << b.numKeys
			b.numKeys++
		}
		if !ok {
			continue
		}

		for i := uint8(0); i < b.numKeys; i++ {
			masked := b.keys[i].MaskDirection()
			m.bindings[masked] = append(m.bindings[masked], b)
		}
	}
}
