package settings

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is how long the watcher waits after the last write before
// firing, so editors that write in several steps trigger one reload.
const reloadDebounce = 100 * time.Millisecond

// Watcher monitors a settings file and invokes a callback after changes
// settle. Used to drive live binding reload.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	onChange  func()

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher for the given settings file. The callback
// runs on the watcher goroutine; it must not block for long.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving settings path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save and
	// a direct file watch would go stale after the first rename.
	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watching settings directory: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		path:      absPath,
		onChange:  onChange,
		done:      make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Name != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(reloadDebounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.onChange()

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}
