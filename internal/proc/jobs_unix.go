//go:build !windows

package proc

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

func shellCommand(ctx context.Context, cmdline string) *exec.Cmd {
	return exec.CommandContext(ctx, "/bin/sh", "-c", cmdline)
}

// detach puts the child in its own process group so the whole group can be
// signalled and terminal signals aimed at the daemon do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// stopGroup sends SIGTERM to the process group led by pid, falling back to the
// process itself when the group is already gone.
func stopGroup(p *os.Process, pid int) error {
	if err := unix.Kill(-pid, unix.SIGTERM); err == nil {
		return nil
	}
	if err := p.Signal(unix.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return err
	}
	return nil
}
