package input

import (
	"inputrig/internal/input/bind"
	"inputrig/internal/input/gamepad"
	"inputrig/internal/input/source"
)

// RegisterDefaultSources declares the built-in external source backends.
// The SDL-style gamepad source is enabled by default; the "InputSources"
// settings section can turn it off.
func (m *Manager) RegisterDefaultSources() {
	m.sources.RegisterFactory(bind.SourceSDL, true, func(handler source.Handler) source.Source {
		return gamepad.New(handler)
	})
}
