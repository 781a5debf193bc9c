// Package gamepad implements the SDL-style game controller input source.
//
// Device enumeration is delegated to the host: controllers are attached and
// detached explicitly with a player id, and axis/button changes are queued
// and drained into the dispatcher by PollEvents on the engine's polling
// context. Binding strings use the "SDL-<player>" device prefix with the
// standard game-controller axis and button names, e.g. "SDL-0/+LeftY" or
// "SDL-0/A".
package gamepad

import (
	"fmt"
	"sync"

	"inputrig/internal/input/bind"
	"inputrig/internal/input/source"
	"inputrig/internal/logging"
	"inputrig/internal/settings"
)

// axisNames and buttonNames follow the SDL game controller layout; Data in
// a controller key is an index into these tables.
var axisNames = []string{
	"LeftX",
	"LeftY",
	"RightX",
	"RightY",
	"LeftTrigger",
	"RightTrigger",
}

var buttonNames = []string{
	"A",
	"B",
	"X",
	"Y",
	"Back",
	"Guide",
	"Start",
	"LeftStick",
	"RightStick",
	"LeftShoulder",
	"RightShoulder",
	"DPadUp",
	"DPadDown",
	"DPadLeft",
	"DPadRight",
	"Misc1",
	"Paddle1",
	"Paddle2",
	"Paddle3",
	"Paddle4",
	"Touchpad",
}

// Names returns the controller name table used for binding strings.
func Names() source.NameTable {
	return source.NameTable{Axes: axisNames, Buttons: buttonNames}
}

// NumAxes is the number of named controller axes.
func NumAxes() int { return len(axisNames) }

// NumButtons is the number of named controller buttons.
func NumButtons() int { return len(buttonNames) }

// event is a queued device state change.
type event struct {
	key   bind.Key
	value float32
}

// controller is an attached device.
type controller struct {
	player uint8
	motors []float32
}

// Source is the gamepad input source. Attach/Detach and the Push methods
// may be called from device threads; PollEvents drains the queue on the
// engine's polling context.
type Source struct {
	handler source.Handler
	log     *logging.Logger

	mu          sync.Mutex
	controllers map[uint8]*controller
	queue       []event
}

// New creates a gamepad source delivering events to handler.
func New(handler source.Handler) source.Source {
	return &Source{
		handler:     handler,
		log:         logging.Null,
		controllers: make(map[uint8]*controller),
	}
}

// Initialize implements source.Source.
func (s *Source) Initialize(_ settings.Interface, log *logging.Logger) error {
	if s.handler == nil {
		return fmt.Errorf("gamepad source requires an event handler")
	}
	if log != nil {
		s.log = log.WithComponent("gamepad")
	}
	return nil
}

// Shutdown implements source.Source.
func (s *Source) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controllers = make(map[uint8]*controller)
	s.queue = nil
}

// Attach registers a controller under a player id.
func (s *Source) Attach(player uint8, numMotors int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.controllers[player]; ok {
		return
	}
	s.controllers[player] = &controller{
		player: player,
		motors: make([]float32, numMotors),
	}
	s.log.Info("controller %d attached", player)
}

// Detach removes a controller.
func (s *Source) Detach(player uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.controllers[player]; !ok {
		return
	}
	delete(s.controllers, player)
	s.log.Info("controller %d removed", player)
}

// PushAxisMotion queues an axis change. Value is signed, roughly [-1, 1].
func (s *Source) PushAxisMotion(player uint8, axis uint32, value float32) {
	if int(axis) >= len(axisNames) {
		return
	}
	s.push(source.MakeGenericControllerAxisKey(bind.SourceSDL, player, axis), value)
}

// PushButton queues a button press or release.
func (s *Source) PushButton(player uint8, button uint32, pressed bool) {
	if int(button) >= len(buttonNames) {
		return
	}
	var value float32
	if pressed {
		value = 1
	}
	s.push(source.MakeGenericControllerButtonKey(bind.SourceSDL, player, button), value)
}

func (s *Source) push(key bind.Key, value float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.controllers[key.SourceIndex]; !ok {
		return
	}
	s.queue = append(s.queue, event{key: key, value: value})
}

// PollEvents implements source.Source, draining queued device events into
// the dispatcher.
func (s *Source) PollEvents() {
	s.mu.Lock()
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, ev := range pending {
		s.handler(ev.key, ev.value)
	}
}

// GetVibrationMotorCount implements source.Source.
func (s *Source) GetVibrationMotorCount(index uint8) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.controllers[index]; ok {
		return uint32(len(c.motors))
	}
	return 0
}

// SetVibrationMotorStrength implements source.Source. Strengths beyond the
// device's motor count are ignored.
func (s *Source) SetVibrationMotorStrength(index uint8, strengths []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.controllers[index]
	if !ok {
		return
	}
	for i, v := range strengths {
		if i >= len(c.motors) {
			break
		}
		c.motors[i] = v
	}
}

// MotorStrengths returns the current vibration strengths for a controller.
func (s *Source) MotorStrengths(index uint8) []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.controllers[index]
	if !ok {
		return nil
	}
	out := make([]float32, len(c.motors))
	copy(out, c.motors)
	return out
}

// ParseKeyString implements source.Source.
func (s *Source) ParseKeyString(device, binding string) (bind.Key, bool) {
	return source.ParseGenericControllerKey(bind.SourceSDL, Names(), device, binding)
}

// ConvertKeyToString implements source.Source.
func (s *Source) ConvertKeyToString(key bind.Key) string {
	if key.SourceType != bind.SourceSDL {
		return ""
	}
	return source.ConvertGenericControllerKeyToString(key, Names())
}
