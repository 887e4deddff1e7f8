package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidectl/internal/errs"
	"slidectl/internal/notify"
	"slidectl/internal/proc"
	"slidectl/internal/registry"
)

type okJobs struct{ fail map[proc.JobID]bool }

func (okJobs) PID(proc.JobID) (int, error) { return 0, assert.AnError }
func (j okJobs) Stop(id proc.JobID) error {
	if j.fail[id] {
		return assert.AnError
	}
	return nil
}
func (okJobs) Alive(proc.JobID) bool { return true }

type noTree struct{}

func (noTree) Descendants(int) ([]int, error) { return nil, nil }
func (noTree) KillPIDs([]int) error           { return nil }
func (noTree) KillDescendants(int) error      { return nil }
func (noTree) Kill(int) error                 { return nil }

type recorder struct {
	levels []notify.Level
	msgs   []string
}

func (r *recorder) Notify(l notify.Level, msg string) {
	r.levels = append(r.levels, l)
	r.msgs = append(r.msgs, msg)
}

func newHooks(fail ...proc.JobID) (*Hooks, *registry.Registry, *recorder) {
	jobs := okJobs{fail: map[proc.JobID]bool{}}
	for _, id := range fail {
		jobs.fail[id] = true
	}
	reg := registry.New(jobs, noTree{})
	rec := &recorder{}
	return New(reg, rec), reg, rec
}

func TestShutdownIsIdempotent(t *testing.T) {
	h, reg, rec := newHooks(2)
	reg.Register("/a.md", "", registry.Handle{Job: 1})
	reg.Register("/b.md", "", registry.Handle{Job: 2})

	assert.Equal(t, 1, h.Shutdown())
	assert.Zero(t, reg.Len())
	assert.Zero(t, h.Shutdown())
	assert.Len(t, rec.msgs, 1)
}

func TestContextClosedUnknownKeyIsNoop(t *testing.T) {
	h, _, rec := newHooks()
	tracked, n, err := h.ContextClosed("/nope.md")
	assert.False(t, tracked)
	assert.Zero(t, n)
	assert.NoError(t, err)
	assert.Empty(t, rec.msgs)
}

func TestContextClosedStopsKey(t *testing.T) {
	h, reg, rec := newHooks()
	reg.Register("/a.md", "", registry.Handle{Job: 1})
	reg.Register("/a.md", "", registry.Handle{Job: 2})
	reg.Register("/b.md", "", registry.Handle{Job: 3})

	tracked, n, err := h.ContextClosed("/a.md")
	require.NoError(t, err)
	assert.True(t, tracked)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"/b.md"}, reg.Keys())
	assert.Equal(t, []notify.Level{notify.Info}, rec.levels)

	tracked, _, err = h.ContextClosed("/a.md")
	assert.False(t, tracked)
	assert.NoError(t, err)
}

func TestContextClosedTerminationFailureWarns(t *testing.T) {
	h, reg, rec := newHooks(1)
	reg.Register("/a.md", "", registry.Handle{Job: 1})

	tracked, n, err := h.ContextClosed("/a.md")
	assert.True(t, tracked)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, errs.ErrTermination)
	assert.Equal(t, []notify.Level{notify.Warn}, rec.levels)
	assert.True(t, reg.Has("/a.md"))
}
