// Package registry is the process lifecycle manager: it maps a presentation
// file to the viewer processes launched for it and terminates them on demand.
package registry

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"slidectl/internal/errs"
	"slidectl/internal/proc"
)

// JobControl is the host job primitive the registry terminates through.
type JobControl interface {
	PID(id proc.JobID) (int, error)
	Stop(id proc.JobID) error
	Alive(id proc.JobID) bool
}

// TreeKiller terminates processes by pid on a best-effort basis.
type TreeKiller interface {
	// Descendants snapshots the process tree below pid, deepest first.
	Descendants(pid int) ([]int, error)
	// KillPIDs terminates a snapshot taken earlier.
	KillPIDs(pids []int) error
	// KillDescendants walks and terminates the current tree below pid.
	KillDescendants(pid int) error
	Kill(pid int) error
}

// Registry is a threadsafe in-memory catalog of launched viewers keyed by
// absolute file path. A present key always maps to at least one handle.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	jobs    JobControl
	tree    TreeKiller
	logger  zerolog.Logger
}

// New returns an empty registry terminating through jobs and tree.
func New(jobs JobControl, tree TreeKiller) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		jobs:    jobs,
		tree:    tree,
		logger:  log.With().Str("component", "registry").Logger(),
	}
}

// WithLogger replaces the registry logger.
func (r *Registry) WithLogger(l zerolog.Logger) *Registry {
	r.logger = l
	return r
}

// Register appends h to key's handles, creating the entry if needed.
func (r *Registry) Register(key, title string, h Handle) {
	if title == "" {
		title = TitleOf(key)
	}
	if h.LaunchedAt.IsZero() {
		h.LaunchedAt = now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entries[key]
	if e == nil {
		e = &entry{title: title}
		r.entries[key] = e
	}
	e.handles = append(e.handles, h)
	r.logger.Debug().Str("key", key).Uint64("job", uint64(h.Job)).Int("count", len(e.handles)).Msg("registered")
}

// StopOne terminates the handle at the 1-based index under key. On success the
// handle is removed and later indices shift down; on failure the entry is kept.
func (r *Registry) StopOne(key string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entries[key]
	if e == nil {
		return errs.New(errs.KindNotFound, "stop", key, "no running presentation")
	}
	if index < 1 || index > len(e.handles) {
		return errs.New(errs.KindNotFound, "stop", key, "no process at that index")
	}
	h := e.handles[index-1]
	if err := r.terminate(h); err != nil {
		return errs.Wrap(errs.KindTermination, "stop", key, err)
	}
	e.handles = append(e.handles[:index-1], e.handles[index:]...)
	if len(e.handles) == 0 {
		delete(r.entries, key)
	}
	return nil
}

// StopAll terminates every handle under key, newest first, and returns how
// many stopped. Handles that fail stay registered. Zero successes is a
// termination failure.
func (r *Registry) StopAll(key string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := r.entries[key]
	if e == nil {
		return 0, errs.New(errs.KindNotFound, "stop", key, "no running presentation")
	}
	stopped := 0
	var lastErr error
	for i := len(e.handles) - 1; i >= 0; i-- {
		h := e.handles[i]
		if err := r.terminate(h); err != nil {
			r.logger.Warn().Err(err).Str("key", key).Int("index", i+1).Uint64("job", uint64(h.Job)).Msg("stop failed, process still tracked")
			lastErr = err
			continue
		}
		e.handles = append(e.handles[:i], e.handles[i+1:]...)
		stopped++
	}
	if len(e.handles) == 0 {
		delete(r.entries, key)
	}
	if stopped == 0 {
		return 0, errs.Wrap(errs.KindTermination, "stop", key, lastErr)
	}
	return stopped, nil
}

// StopEverything terminates every tracked handle and empties the registry
// regardless of the outcome. It returns the number of successful stops.
func (r *Registry) StopEverything() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	stopped := 0
	for key, e := range r.entries {
		for _, h := range e.handles {
			if err := r.terminate(h); err != nil {
				r.logger.Warn().Err(err).Str("key", key).Uint64("job", uint64(h.Job)).Msg("stop failed during teardown")
				continue
			}
			stopped++
		}
	}
	clear(r.entries)
	return stopped
}

// List returns a snapshot of all entries sorted by key.
func (r *Registry) List() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := r.keysLocked()
	out := make([]Entry, 0, len(keys))
	for _, key := range keys {
		e := r.entries[key]
		procs := make([]Proc, 0, len(e.handles))
		for i, h := range e.handles {
			pid := h.PID
			if resolved, err := r.jobs.PID(h.Job); err == nil {
				pid = resolved
			}
			procs = append(procs, Proc{
				Index:  i + 1,
				Handle: h,
				PID:    pid,
				Alive:  r.jobs.Alive(h.Job),
			})
		}
		out = append(out, Entry{Key: key, Title: e.title, Procs: procs})
	}
	return out
}

// Has reports whether key is tracked.
func (r *Registry) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[key]
	return ok
}

// Keys returns the tracked keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keysLocked()
}

// Len returns the number of tracked keys.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) keysLocked() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
