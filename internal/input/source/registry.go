package source

import (
	"inputrig/internal/input/bind"
	"inputrig/internal/logging"
	"inputrig/internal/settings"
)

// Factory constructs a source instance wired to an event handler.
type Factory func(handler Handler) Source

// registration is a known external source kind and its enable default.
type registration struct {
	factory        Factory
	defaultEnabled bool
}

// Registry owns zero or one live instance per external source type. It is
// not internally synchronized: Reload, PollAll and CloseAll are expected to
// run on the owner's polling context, matching how the engine serializes
// source lifecycle against dispatch.
type Registry struct {
	log     *logging.Logger
	known   [bind.NumSourceTypes]*registration
	sources [bind.NumSourceTypes]Source
}

// NewRegistry creates an empty source registry.
func NewRegistry(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.Null
	}
	return &Registry{log: log.WithComponent("sources")}
}

// RegisterFactory declares an external source kind. Built-in source types
// are rejected.
func (r *Registry) RegisterFactory(t bind.SourceType, defaultEnabled bool, factory Factory) {
	if t < bind.FirstExternalSource || int(t) >= bind.NumSourceTypes {
		return
	}
	r.known[t] = &registration{factory: factory, defaultEnabled: defaultEnabled}
}

// Get returns the live instance for a source type, or nil.
func (r *Registry) Get(t bind.SourceType) Source {
	if int(t) >= bind.NumSourceTypes {
		return nil
	}
	return r.sources[t]
}

// Reload brings each known source in line with its configured enabled state
// ("InputSources" section, keyed by source name). A source that fails to
// initialize is dropped and logged; the rest proceed.
func (r *Registry) Reload(si settings.Interface, handler Handler) {
	for t := bind.FirstExternalSource; int(t) < bind.NumSourceTypes; t++ {
		reg := r.known[t]
		if reg == nil {
			continue
		}

		enabled := si.GetBoolValue("InputSources", t.String(), reg.defaultEnabled)
		running := r.sources[t] != nil
		if enabled == running {
			continue
		}

		if enabled {
			src := reg.factory(handler)
			if err := src.Initialize(si, r.log); err != nil {
				r.log.Error("source %s failed to initialize: %v", t, err)
				continue
			}
			r.sources[t] = src
		} else {
			r.sources[t].Shutdown()
			r.sources[t] = nil
		}
	}
}

// PollAll pumps events on every live source, in enumeration order.
func (r *Registry) PollAll() {
	for t := bind.FirstExternalSource; int(t) < bind.NumSourceTypes; t++ {
		if r.sources[t] != nil {
			r.sources[t].PollEvents()
		}
	}
}

// CloseAll shuts down every live source.
func (r *Registry) CloseAll() {
	for t := bind.FirstExternalSource; int(t) < bind.NumSourceTypes; t++ {
		if r.sources[t] != nil {
			r.sources[t].Shutdown()
			r.sources[t] = nil
		}
	}
}

// ParseKeyString tries each live source in enumeration order; the first
// source that recognizes the (device, binding) pair wins.
func (r *Registry) ParseKeyString(device, binding string) (bind.Key, bool) {
	for t := bind.FirstExternalSource; int(t) < bind.NumSourceTypes; t++ {
		if r.sources[t] == nil {
			continue
		}
		if key, ok := r.sources[t].ParseKeyString(device, binding); ok {
			return key, true
		}
	}
	return bind.Key{}, false
}

// ConvertKeyToString delegates to the source owning the key's type. Keys of
// sources that are not live stringify as "" (unbindable).
func (r *Registry) ConvertKeyToString(key bind.Key) string {
	if key.SourceType < bind.FirstExternalSource || int(key.SourceType) >= bind.NumSourceTypes {
		return ""
	}
	src := r.sources[key.SourceType]
	if src == nil {
		return ""
	}
	return src.ConvertKeyToString(key)
}
