package input

import (
	"testing"

	"inputrig/internal/input/bind"
	"inputrig/internal/input/source"
	"inputrig/internal/pad"
	"inputrig/internal/settings"
)

// hotkeyRecorder registers a single hotkey and records its edge sequence.
type hotkeyRecorder struct {
	edges []bool
}

func (h *hotkeyRecorder) info(name string) HotkeyInfo {
	return HotkeyInfo{
		Name:        name,
		Category:    "Test",
		DisplayName: name,
		Handler: func(pressed bool) {
			h.edges = append(h.edges, pressed)
		},
	}
}

func newTestManager(sink pad.StateSink) *Manager {
	return New(Config{Sink: sink})
}

func TestChordActivationSequence(t *testing.T) {
	rec := &hotkeyRecorder{}
	m := newTestManager(nil)
	m.RegisterHotkeys([]HotkeyInfo{rec.info("Quit")})

	store := settings.NewStore(nil)
	store.SetStringList("Hotkeys", "Quit", []string{"Keyboard/A & Keyboard/B"})
	m.ReloadBindings(store)

	keyA := bind.MakeKeyboardRuneKey('A')
	keyB := bind.MakeKeyboardRuneKey('B')

	if !m.InvokeEvents(keyA, 1) {
		t.Error("press of a bound key should report a match")
	}
	if len(rec.edges) != 0 {
		t.Fatal("partial chord fired")
	}

	m.InvokeEvents(keyB, 1)
	if len(rec.edges) != 1 || !rec.edges[0] {
		t.Fatalf("full chord should fire pressed, got %v", rec.edges)
	}

	// Releasing either key deactivates the chord.
	m.InvokeEvents(keyA, 0)
	if len(rec.edges) != 2 || rec.edges[1] {
		t.Fatalf("chord break should fire released, got %v", rec.edges)
	}

	// Releasing the remaining key is not another edge.
	m.InvokeEvents(keyB, 0)
	if len(rec.edges) != 2 {
		t.Fatalf("second release fired again, got %v", rec.edges)
	}
}

func TestSingleKeyHotkeyEdges(t *testing.T) {
	rec := &hotkeyRecorder{}
	m := newTestManager(nil)
	m.RegisterHotkeys([]HotkeyInfo{rec.info("Screenshot")})

	store := settings.NewStore(nil)
	store.SetStringList("Hotkeys", "Screenshot", []string{"Keyboard/F1"})
	m.ReloadBindings(store)

	key, ok := m.ParseBindingKey("Keyboard/F1")
	if !ok {
		t.Fatal("Keyboard/F1 did not parse")
	}

	m.InvokeEvents(key, 1)
	m.InvokeEvents(key, 1) // repeat press, no edge
	m.InvokeEvents(key, 0)

	want := []bool{true, false}
	if len(rec.edges) != len(want) {
		t.Fatalf("edges = %v, want %v", rec.edges, want)
	}
	for i := range want {
		if rec.edges[i] != want[i] {
			t.Errorf("edge %d = %v, want %v", i, rec.edges[i], want[i])
		}
	}
}

func TestUnboundKeyReportsNoMatch(t *testing.T) {
	m := newTestManager(nil)
	m.ReloadBindings(settings.NewStore(nil))

	if m.InvokeEvents(bind.MakeKeyboardRuneKey('Q'), 1) {
		t.Error("unbound key reported a match")
	}
}

func TestAxisBindingRefires(t *testing.T) {
	var calls []float32
	sink := pad.SinkFunc(func(slot, control uint32, value float32) {
		if slot != 0 || control != 6 {
			t.Errorf("value routed to (%d, %d)", slot, control)
		}
		calls = append(calls, value)
	})
	m := newTestManager(sink)

	// Pad1 defaults to DualShock2; Cross is control index 6.
	store := settings.NewStore(nil)
	store.SetStringList("Pad1", "Cross", []string{"Keyboard/Z"})
	m.ReloadBindings(store)

	key := bind.MakeKeyboardRuneKey('Z')

	m.InvokeEvents(key, 0.5)  // activation edge
	m.InvokeEvents(key, 0.75) // held: axis handlers re-fire on nonzero
	m.InvokeEvents(key, 0)    // release edge drives the control to zero
	m.InvokeEvents(key, 0)    // zero with no transition stays silent

	want := []float32{0.5, 0.75, 0}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestHalfAxisBinding(t *testing.T) {
	sink := pad.NewState()
	m := newTestManager(sink)
	m.RegisterDefaultSources()

	store := settings.NewStore(nil)
	// LUp is control index 17 on DualShock2.
	store.SetStringList("Pad1", "LUp", []string{"SDL-0/-LeftY"})
	m.ReloadSources(store)
	m.ReloadBindings(store)

	// Raw axis events carry the sign in the value, not the key.
	axis := source.MakeGenericControllerAxisKey(bind.SourceSDL, 0, 1)

	m.InvokeEvents(axis, -0.6)
	if got := sink.Value(0, 17); got != 0.6 {
		t.Fatalf("LUp = %v, want 0.6", got)
	}

	// Crossing to the other half releases this binding.
	m.InvokeEvents(axis, 0.4)
	if got := sink.Value(0, 17); got != 0 {
		t.Errorf("LUp = %v, want 0", got)
	}
}

func TestInvalidBindingDroppedWhole(t *testing.T) {
	rec := &hotkeyRecorder{}
	m := newTestManager(nil)
	m.RegisterHotkeys([]HotkeyInfo{rec.info("Quit")})

	store := settings.NewStore(nil)
	store.SetStringList("Hotkeys", "Quit", []string{
		"Keyboard/A & Keyboard/NotARealKey",
		"Keyboard/B",
	})
	m.ReloadBindings(store)

	// The bad chord must not leave a partial binding on A.
	if m.HasAnyBindingsForKey(bind.MakeKeyboardRuneKey('A')) {
		t.Error("half-resolved chord left bindings behind")
	}

	// The independent good string still binds.
	m.InvokeEvents(bind.MakeKeyboardRuneKey('B'), 1)
	if len(rec.edges) != 1 {
		t.Errorf("good sibling binding did not fire, edges = %v", rec.edges)
	}
}

func TestDuplicateChordKeyRejected(t *testing.T) {
	rec := &hotkeyRecorder{}
	m := newTestManager(nil)
	m.RegisterHotkeys([]HotkeyInfo{rec.info("Quit")})

	store := settings.NewStore(nil)
	// A chord repeating a physical key could never go full.
	store.SetStringList("Hotkeys", "Quit", []string{"Keyboard/A & Keyboard/A"})
	m.ReloadBindings(store)

	if m.HasAnyBindingsForKey(bind.MakeKeyboardRuneKey('A')) {
		t.Error("chord repeating a key should be rejected whole")
	}
}

func TestOversizedChordRejected(t *testing.T) {
	rec := &hotkeyRecorder{}
	m := newTestManager(nil)
	m.RegisterHotkeys([]HotkeyInfo{rec.info("Quit")})

	store := settings.NewStore(nil)
	store.SetStringList("Hotkeys", "Quit",
		[]string{"Keyboard/A & Keyboard/B & Keyboard/C & Keyboard/D & Keyboard/E"})
	m.ReloadBindings(store)

	if m.HasAnyBindingsForKey(bind.MakeKeyboardRuneKey('A')) {
		t.Error("five-key chord should be rejected whole")
	}
}

func TestHookExclusiveAndAutoRemove(t *testing.T) {
	m := newTestManager(nil)
	m.ReloadBindings(settings.NewStore(nil))

	var seen int
	err := m.SetHook(func(key bind.Key, value float32) InterceptResult {
		seen++
		if seen < 2 {
			return ContinueMonitoring
		}
		return StopMonitoring
	})
	if err != nil {
		t.Fatalf("SetHook: %v", err)
	}

	if err := m.SetHook(func(bind.Key, float32) InterceptResult { return StopMonitoring }); err != ErrHookInstalled {
		t.Errorf("second SetHook err = %v, want ErrHookInstalled", err)
	}

	key := bind.MakeKeyboardRuneKey('X')

	// ContinueMonitoring: the hook saw it, so dispatch reports true even
	// with no binding registered.
	if !m.InvokeEvents(key, 1) {
		t.Error("hooked event reported unconsumed")
	}
	if !m.HasHook() {
		t.Error("hook removed after ContinueMonitoring")
	}

	// StopMonitoring uninstalls without RemoveHook.
	if !m.InvokeEvents(key, 0) {
		t.Error("consumed event reported unconsumed")
	}
	if m.HasHook() {
		t.Error("hook still installed after StopMonitoring")
	}

	// With the hook gone, the unbound key no longer matches.
	if m.InvokeEvents(key, 1) {
		t.Error("event matched after hook removal")
	}
	if seen != 2 {
		t.Errorf("hook saw %d events, want 2", seen)
	}
}

func TestHookContinueStillDispatches(t *testing.T) {
	rec := &hotkeyRecorder{}
	m := newTestManager(nil)
	m.RegisterHotkeys([]HotkeyInfo{rec.info("Quit")})

	store := settings.NewStore(nil)
	store.SetStringList("Hotkeys", "Quit", []string{"Keyboard/Q"})
	m.ReloadBindings(store)

	if err := m.SetHook(func(bind.Key, float32) InterceptResult { return ContinueMonitoring }); err != nil {
		t.Fatalf("SetHook: %v", err)
	}
	defer m.RemoveHook()

	m.InvokeEvents(bind.MakeKeyboardRuneKey('Q'), 1)
	if len(rec.edges) != 1 {
		t.Errorf("binding did not fire under a monitoring hook, edges = %v", rec.edges)
	}
}

func TestStopMonitoringKeepsReplacementHook(t *testing.T) {
	m := newTestManager(nil)
	m.ReloadBindings(settings.NewStore(nil))

	var replacementSaw int
	replacement := func(bind.Key, float32) InterceptResult {
		replacementSaw++
		return ContinueMonitoring
	}

	// The first hook hands the slot over before returning StopMonitoring;
	// its stale clear must not drop the replacement.
	err := m.SetHook(func(bind.Key, float32) InterceptResult {
		m.RemoveHook()
		if err := m.SetHook(replacement); err != nil {
			t.Errorf("installing replacement: %v", err)
		}
		return StopMonitoring
	})
	if err != nil {
		t.Fatalf("SetHook: %v", err)
	}

	key := bind.MakeKeyboardRuneKey('X')
	m.InvokeEvents(key, 1)

	if !m.HasHook() {
		t.Fatal("replacement hook was dropped by the stale clear")
	}
	m.InvokeEvents(key, 0)
	if replacementSaw != 1 {
		t.Errorf("replacement hook saw %d events, want 1", replacementSaw)
	}
	m.RemoveHook()
}

func TestNilHookRejected(t *testing.T) {
	m := newTestManager(nil)
	if err := m.SetHook(nil); err == nil {
		t.Error("nil hook accepted")
	}
}

func TestConvertKeysToString(t *testing.T) {
	m := newTestManager(nil)

	keyA := bind.MakeKeyboardRuneKey('A')
	esc, _ := bind.ParseKeyboardKey("Keyboard", "Esc")

	if got := m.ConvertKeysToString([]bind.Key{keyA, esc}); got != "Keyboard/A & Keyboard/Esc" {
		t.Errorf("chord string = %q", got)
	}

	// A dead-source key poisons the whole chord string.
	sdlKey := source.MakeGenericControllerButtonKey(bind.SourceSDL, 0, 0)
	if got := m.ConvertKeysToString([]bind.Key{keyA, sdlKey}); got != "" {
		t.Errorf("chord with dead-source key = %q, want empty", got)
	}

	if got := m.ConvertKeysToString(nil); got != "" {
		t.Errorf("empty chord = %q, want empty", got)
	}
}

func TestConvertKeysToStringLiveSource(t *testing.T) {
	m := newTestManager(nil)
	m.RegisterDefaultSources()
	m.ReloadSources(settings.NewStore(nil))
	defer m.CloseSources()

	sdlKey := source.MakeGenericControllerButtonKey(bind.SourceSDL, 0, 0)
	if got := m.ConvertKeysToString([]bind.Key{sdlKey}); got != "SDL-0/A" {
		t.Errorf("live-source chord string = %q", got)
	}
}

func TestHotkeyListSorted(t *testing.T) {
	m := newTestManager(nil)
	m.RegisterHotkeys([]HotkeyInfo{
		{Name: "c", Category: "system", DisplayName: "Zulu"},
		{Name: "a", Category: "General", DisplayName: "beta"},
	})
	m.RegisterHotkeys([]HotkeyInfo{
		{Name: "b", Category: "general", DisplayName: "Alpha"},
		{Name: "d", Category: "System", DisplayName: "echo"},
	})

	list := m.HotkeyList()
	var names []string
	for _, h := range list {
		names = append(names, h.Name)
	}

	want := []string{"b", "a", "d", "c"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestParseBindingKeyRouting(t *testing.T) {
	m := newTestManager(nil)

	if key, ok := m.ParseBindingKey("Keyboard/A"); !ok || key.SourceType != bind.SourceKeyboard {
		t.Errorf("Keyboard/A = (%v, %v)", key, ok)
	}
	if key, ok := m.ParseBindingKey("Mouse0/Button1"); !ok || key.SourceType != bind.SourceMouse {
		t.Errorf("Mouse0/Button1 = (%v, %v)", key, ok)
	}
	if _, ok := m.ParseBindingKey("SDL-0/A"); ok {
		t.Error("SDL binding parsed with no live source")
	}
	if _, ok := m.ParseBindingKey("NoSlashHere"); ok {
		t.Error("malformed binding parsed")
	}
}
