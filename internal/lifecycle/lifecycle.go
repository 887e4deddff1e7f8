// Package lifecycle binds host events to registry cleanup: shutdown stops
// everything, closing a tracked file stops that file's viewers.
package lifecycle

import (
	"errors"
	"fmt"

	"slidectl/internal/errs"
	"slidectl/internal/notify"
)

// Registry is the part of the registry the hooks drive.
type Registry interface {
	Has(key string) bool
	StopAll(key string) (int, error)
	StopEverything() int
}

// Hooks are safe to fire any number of times.
type Hooks struct {
	reg  Registry
	sink notify.Sink
}

func New(reg Registry, sink notify.Sink) *Hooks {
	if sink == nil {
		sink = notify.Discard
	}
	return &Hooks{reg: reg, sink: sink}
}

// Shutdown stops every tracked process and returns how many stopped.
func (h *Hooks) Shutdown() int {
	n := h.reg.StopEverything()
	if n > 0 {
		h.sink.Notify(notify.Info, fmt.Sprintf("stopped %d presentation process(es) on shutdown", n))
	}
	return n
}

// ContextClosed stops the processes launched for key. Untracked keys are
// ignored. It reports whether key was tracked and how many processes stopped.
func (h *Hooks) ContextClosed(key string) (bool, int, error) {
	if !h.reg.Has(key) {
		return false, 0, nil
	}
	n, err := h.reg.StopAll(key)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		// Stopped concurrently between Has and StopAll.
		return false, 0, nil
	case err != nil:
		h.sink.Notify(notify.Warn, err.Error())
		return true, n, err
	}
	h.sink.Notify(notify.Info, fmt.Sprintf("stopped %d process(es) for %s", n, key))
	return true, n, nil
}
