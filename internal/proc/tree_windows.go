//go:build windows

package proc

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

func (t *Tree) killChildrenFallback(pid int, cause error) error {
	t.logger.Debug().Int("pid", pid).Err(cause).Msg("process tree lookup failed, falling back to taskkill")
	if err := t.run(context.Background(), fmt.Sprintf("taskkill /T /F /PID %d", pid)); err != nil {
		return fmt.Errorf("taskkill tree %d: %w", pid, errors.Join(cause, err))
	}
	return nil
}

func killPID(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid pid %d", pid)
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}

func processGone(err error) bool {
	return errors.Is(err, os.ErrProcessDone) || errors.Is(err, windows.ERROR_INVALID_PARAMETER)
}
