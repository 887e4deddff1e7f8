package proc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
)

// quietTimeout bounds one-off helper commands such as pkill or taskkill.
const quietTimeout = 5 * time.Second

// Tree terminates processes and their descendants on a best-effort basis.
type Tree struct {
	logger zerolog.Logger
	run    func(ctx context.Context, cmdline string) error
}

// NewTree returns a Tree that uses the platform shell for fallbacks.
func NewTree() *Tree {
	return &Tree{
		logger: log.With().Str("component", "proctree").Logger(),
		run:    RunQuiet,
	}
}

// Descendants returns every descendant of pid, deepest first. Take it while
// pid is still alive: once it exits its children are reparented and can no
// longer be found from it.
func (t *Tree) Descendants(pid int) ([]int, error) {
	root, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil, err
	}
	var pids []int
	if err := collectDescendants(root, &pids); err != nil {
		return nil, err
	}
	return pids, nil
}

// KillPIDs terminates the given processes in order. Processes that already
// exited are skipped.
func (t *Tree) KillPIDs(pids []int) error {
	var errs []error
	for _, pid := range pids {
		t.logger.Debug().Int("pid", pid).Str("cmd", CommandLine(pid)).Msg("terminating descendant")
		if err := killPID(pid); err != nil && !processGone(err) {
			errs = append(errs, fmt.Errorf("signal %d: %w", pid, err))
		}
	}
	return errors.Join(errs...)
}

// KillDescendants terminates the current descendants of pid, deepest first.
// When the tree cannot be read it falls back to the platform tool.
func (t *Tree) KillDescendants(pid int) error {
	pids, err := t.Descendants(pid)
	if err != nil {
		return t.killChildrenFallback(pid, err)
	}
	return t.KillPIDs(pids)
}

// Kill terminates pid itself.
func (t *Tree) Kill(pid int) error {
	return killPID(pid)
}

// collectDescendants appends p's descendants in post-order, so grandchildren
// come before the children that spawned them.
func collectDescendants(p *process.Process, out *[]int) error {
	children, err := p.Children()
	if err != nil {
		if errors.Is(err, process.ErrorNoChildren) {
			return nil
		}
		return err
	}
	for _, c := range children {
		if err := collectDescendants(c, out); err != nil {
			return err
		}
		*out = append(*out, int(c.Pid))
	}
	return nil
}

// RunQuiet runs a one-off shell command line, discarding its output.
func RunQuiet(ctx context.Context, cmdline string) error {
	ctx, cancel := context.WithTimeout(ctx, quietTimeout)
	defer cancel()
	return shellCommand(ctx, cmdline).Run()
}
