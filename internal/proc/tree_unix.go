//go:build !windows

package proc

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

func (t *Tree) killChildrenFallback(pid int, cause error) error {
	t.logger.Debug().Int("pid", pid).Err(cause).Msg("process tree lookup failed, falling back to pkill")
	if err := t.run(context.Background(), fmt.Sprintf("pkill -TERM -P %d", pid)); err != nil {
		return fmt.Errorf("pkill children of %d: %w", pid, errors.Join(cause, err))
	}
	return nil
}

func killPID(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid pid %d", pid)
	}
	return unix.Kill(pid, unix.SIGTERM)
}

func processGone(err error) bool {
	return errors.Is(err, unix.ESRCH)
}
