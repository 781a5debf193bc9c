// Package host feeds host keyboard and mouse events into the binding
// engine. The terminal frontend translates tcell events: key presses (with
// synthesized releases, since terminals report no key-up), mouse button
// edges derived from the button-mask diff, and wheel ticks as signed
// pulses.
package host

import (
	"github.com/gdamore/tcell/v2"

	"inputrig/internal/input"
	"inputrig/internal/input/bind"
	"inputrig/internal/logging"
)

// Wheel axis indices within the mouse source.
const (
	wheelAxisVertical   = 0
	wheelAxisHorizontal = 1
)

// mouseButtons maps tcell button bits to mouse button indices.
var mouseButtons = []tcell.ButtonMask{
	tcell.Button1,
	tcell.Button2,
	tcell.Button3,
	tcell.Button4,
	tcell.Button5,
	tcell.Button6,
	tcell.Button7,
	tcell.Button8,
}

// Terminal owns a tcell screen and pumps its events into a Manager.
type Terminal struct {
	screen  tcell.Screen
	manager *input.Manager
	log     *logging.Logger

	// buttons is the last seen button mask, for edge detection.
	buttons tcell.ButtonMask
}

// NewTerminal creates a terminal frontend for the given manager.
func NewTerminal(manager *input.Manager, log *logging.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen, manager, log), nil
}

func newTerminal(screen tcell.Screen, manager *input.Manager, log *logging.Logger) *Terminal {
	if log == nil {
		log = logging.Null
	}
	return &Terminal{
		screen:  screen,
		manager: manager,
		log:     log.WithComponent("host"),
	}
}

// Init initializes the screen and enables mouse reporting.
func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Fini restores the terminal. Unblocks a Run in progress.
func (t *Terminal) Fini() {
	t.screen.Fini()
}

// Run polls terminal events until the screen is finalized, dispatching
// each into the manager and polling external sources between events.
func (t *Terminal) Run() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventMouse:
			t.handleMouse(ev)
		}

		t.manager.PollSources()
	}
}

// handleKey dispatches a key press with an immediate synthesized release.
// Terminals do not report key-up, so chords across keyboard keys degrade
// to the last key pressed; chords mixing keyboard and mouse still work.
func (t *Terminal) handleKey(ev *tcell.EventKey) {
	var key bind.Key
	if ev.Key() == tcell.KeyRune {
		key = bind.MakeKeyboardRuneKey(ev.Rune())
	} else {
		key = bind.MakeKeyboardSpecialKey(ev.Key())
	}

	t.manager.InvokeEvents(key, 1)
	t.manager.InvokeEvents(key, 0)
}

// handleMouse dispatches button edges and wheel pulses.
func (t *Terminal) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()

	for i, mask := range mouseButtons {
		was := t.buttons&mask != 0
		is := buttons&mask != 0
		if was == is {
			continue
		}

		var value float32
		if is {
			value = 1
		}
		t.manager.InvokeEvents(bind.MakeMouseButtonKey(0, uint32(i)), value)
	}
	t.buttons = buttons &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)

	if buttons&tcell.WheelUp != 0 {
		t.wheelPulse(wheelAxisVertical, 1)
	}
	if buttons&tcell.WheelDown != 0 {
		t.wheelPulse(wheelAxisVertical, -1)
	}
	if buttons&tcell.WheelRight != 0 {
		t.wheelPulse(wheelAxisHorizontal, 1)
	}
	if buttons&tcell.WheelLeft != 0 {
		t.wheelPulse(wheelAxisHorizontal, -1)
	}
}

// wheelPulse fires a signed wheel tick and returns the axis to rest, so
// wheel bindings see clean edges in both directions.
func (t *Terminal) wheelPulse(axis uint32, value float32) {
	key := bind.MakeMouseWheelKey(0, axis, false)
	t.manager.InvokeEvents(key, value)
	t.manager.InvokeEvents(key, 0)
}
