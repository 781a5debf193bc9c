// Package main is a terminal demo for the inputrig binding engine: it binds
// hotkeys and virtual-pad controls from a JSON settings file, dispatches
// live keyboard/mouse events, reloads on settings changes, and supports
// interactive rebinding of the quit hotkey.
package main

import (
	"flag"
	"fmt"
	"os"

	"inputrig/internal/host"
	"inputrig/internal/input"
	"inputrig/internal/input/capture"
	"inputrig/internal/logging"
	"inputrig/internal/pad"
	"inputrig/internal/script"
	"inputrig/internal/settings"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var scriptPath string
	var logLevel string
	flag.StringVar(&configPath, "config", "inputrig.json", "Path to the settings file")
	flag.StringVar(&scriptPath, "script", "", "Optional Lua hotkey script")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(logLevel),
		Prefix: "inputrig",
	})

	store, err := loadOrCreateStore(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	padState := pad.NewState()
	manager := input.New(input.Config{Logger: log, Sink: padState})
	manager.RegisterDefaultSources()
	defer manager.CloseSources()

	term, err := host.NewTerminal(manager, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	manager.RegisterHotkeys(demoHotkeys(manager, store, configPath, term, log))

	if scriptPath != "" {
		engine := script.NewEngine(log)
		defer engine.Close()
		if err := engine.LoadFile(scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		manager.RegisterHotkeys(engine.Hotkeys())
	}

	manager.ReloadSources(store)
	manager.ReloadBindings(store)

	watcher, err := settings.NewWatcher(configPath, func() {
		log.Info("settings changed, reloading bindings")
		if err := store.Reload(configPath); err != nil {
			log.Error("reload failed: %v", err)
			return
		}
		manager.ReloadSources(store)
		manager.ReloadBindings(store)
	})
	if err != nil {
		log.Warn("settings watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer term.Fini()

	term.Run()
	return 0
}

// loadOrCreateStore loads the settings file, creating it with default
// bindings on first run.
func loadOrCreateStore(path string) (*settings.Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		store := settings.NewStore(nil)
		store.SetStringList("Hotkeys", "Quit", []string{"Keyboard/Esc"})
		store.SetStringList("Hotkeys", "RebindQuit", []string{"Keyboard/F2"})
		if err := store.Save(path); err != nil {
			return nil, err
		}
		return store, nil
	}
	return settings.LoadStore(path)
}

// demoHotkeys builds the demo's static hotkey table.
func demoHotkeys(manager *input.Manager, store *settings.Store, configPath string, term *host.Terminal, log *logging.Logger) []input.HotkeyInfo {
	recorder := capture.NewRecorder(manager, func(result capture.Result) {
		if result.Binding == "" {
			log.Warn("capture produced an unbindable chord")
			return
		}
		log.Info("rebinding Quit to %q", result.Binding)
		store.SetStringList("Hotkeys", "Quit", []string{result.Binding})
		if err := store.Save(configPath); err != nil {
			log.Error("saving settings: %v", err)
		}
		manager.ReloadBindings(store)
	})

	return []input.HotkeyInfo{
		{
			Name:        "Quit",
			Category:    "General",
			DisplayName: "Quit",
			Handler: func(pressed bool) {
				if pressed {
					term.Fini()
				}
			},
		},
		{
			Name:        "RebindQuit",
			Category:    "General",
			DisplayName: "Rebind Quit Hotkey",
			Handler: func(pressed bool) {
				if !pressed {
					return
				}
				log.Info("press the new Quit key or chord")
				if err := recorder.Start(); err != nil {
					log.Warn("capture unavailable: %v", err)
				}
			},
		},
	}
}
