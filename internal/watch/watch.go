// Package watch reports tracked files that disappear from disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultGrace is used when New is given a non-positive grace period.
const DefaultGrace = 500 * time.Millisecond

// Watcher watches the parent directories of tracked files and calls onGone
// once when a tracked file is removed or renamed away and does not come back
// within the grace period. Editors that save by renaming the original and
// writing a new file therefore keep their viewers.
type Watcher struct {
	fsw    *fsnotify.Watcher
	onGone func(path string)
	grace  time.Duration
	logger zerolog.Logger

	mu      sync.Mutex
	tracked map[string]struct{}
	dirs    map[string]int
	pending map[string]*time.Timer
	closed  bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New starts a watcher. onGone runs on a timer goroutine, never concurrently
// for the same path.
func New(grace time.Duration, onGone func(path string)) (*Watcher, error) {
	if grace <= 0 {
		grace = DefaultGrace
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		fsw:     fsw,
		onGone:  onGone,
		grace:   grace,
		logger:  log.With().Str("component", "watch").Logger(),
		tracked: make(map[string]struct{}),
		dirs:    make(map[string]int),
		pending: make(map[string]*time.Timer),
		stopCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Track starts watching path. Tracking a path twice is a no-op.
func (w *Watcher) Track(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tracked[path]; ok {
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.tracked[path] = struct{}{}
	return nil
}

// Untrack stops watching path.
func (w *Watcher) Untrack(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.untrackLocked(filepath.Clean(path))
}

// Tracked reports whether path is watched.
func (w *Watcher) Tracked(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.tracked[filepath.Clean(path)]
	return ok
}

func (w *Watcher) untrackLocked(path string) bool {
	if _, ok := w.tracked[path]; !ok {
		return false
	}
	delete(w.tracked, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		if err := w.fsw.Remove(dir); err != nil {
			w.logger.Debug().Err(err).Str("dir", dir).Msg("unwatch failed")
		}
	}
	return true
}

// Close stops the event loop, drops pending checks and waits for running ones.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, t := range w.pending {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.pending, path)
	}
	w.mu.Unlock()

	close(w.stopCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if _, ok := w.tracked[path]; !ok {
		return
	}
	if _, ok := w.pending[path]; ok {
		return
	}
	w.logger.Debug().Str("path", path).Str("op", event.Op.String()).Msg("tracked file moved, waiting for it to reappear")
	w.wg.Add(1)
	w.pending[path] = time.AfterFunc(w.grace, func() {
		defer w.wg.Done()
		w.settle(path)
	})
}

// settle fires onGone if path is still missing once the grace period is over.
func (w *Watcher) settle(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	if w.closed {
		w.mu.Unlock()
		return
	}
	if _, err := os.Stat(path); err == nil {
		w.mu.Unlock()
		w.logger.Debug().Str("path", path).Msg("tracked file replaced")
		return
	}
	gone := w.untrackLocked(path)
	w.mu.Unlock()

	if gone {
		w.logger.Debug().Str("path", path).Msg("tracked file gone")
		w.onGone(path)
	}
}
