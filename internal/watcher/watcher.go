// Package watcher debounces filesystem change notifications for watch
// mode. A burst of events (editors write, rename, and chmod in quick
// succession) collapses into a single callback.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long the watcher waits after the last meaningful
// event before invoking the callback.
const debounceDelay = 100 * time.Millisecond

// meaningfulOps are the operations that indicate content changed.
// Chmod-only events are noise (macOS editors emit them constantly).
const meaningfulOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher watches a set of directories and invokes a callback after
// changes settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	callback func()
}

// New creates a watcher over the given paths. If any path cannot be
// watched the watcher is closed and the error returned.
func New(paths []string, callback func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, path := range paths {
		if err := fsw.Add(path); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", path, err)
		}
	}
	return &Watcher{fsw: fsw, callback: callback}, nil
}

// Run processes events until the context is canceled or the underlying
// watcher is closed. Watch errors are reported through errFn when it is
// non-nil. Run blocks; call it from a goroutine when needed.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		var fire <-chan time.Time
		if debounce != nil {
			fire = debounce.C
		}

		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&meaningfulOps == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceDelay)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		case <-fire:
			debounce = nil
			w.callback()
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
