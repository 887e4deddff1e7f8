// Package proc provides the host process primitives: detached spawning with a
// job table, job stop, pid resolution and best-effort process-tree termination.
package proc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// JobID identifies a spawned job. Valid ids are > 0.
type JobID uint64

var (
	ErrUnknownJob = errors.New("unknown job")
	ErrEmptyCmd   = errors.New("empty command line")
	ErrJobExited  = errors.New("job exited")
)

type job struct {
	cmd  *exec.Cmd
	pid  int
	done chan struct{}
}

// Jobs is the job table: it spawns detached shell command lines and stops them by id.
// It reaps exited children but never supervises them.
type Jobs struct {
	mu     sync.Mutex
	nextID JobID
	byID   map[JobID]*job
	logger zerolog.Logger
	signal func(p *os.Process, pid int) error
}

// NewJobs returns an empty job table.
func NewJobs() *Jobs {
	return &Jobs{
		nextID: 1,
		byID:   make(map[JobID]*job),
		logger: log.With().Str("component", "jobs").Logger(),
		signal: stopGroup,
	}
}

// Spawn runs cmdline through the platform shell in its own process group with
// stdio bound to the null device, and returns its job id.
func (j *Jobs) Spawn(cmdline string) (JobID, error) {
	if strings.TrimSpace(cmdline) == "" {
		return 0, ErrEmptyCmd
	}
	cmd := shellCommand(context.Background(), cmdline)
	detach(cmd)

	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devnull.Close()
	cmd.Stdin, cmd.Stdout, cmd.Stderr = devnull, devnull, devnull

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start command: %w", err)
	}

	jb := &job{cmd: cmd, pid: cmd.Process.Pid, done: make(chan struct{})}

	j.mu.Lock()
	id := j.nextID
	j.nextID++
	j.byID[id] = jb
	j.mu.Unlock()

	go j.reap(id, jb)

	j.logger.Debug().Uint64("job", uint64(id)).Int("pid", jb.pid).Str("cmd", cmdline).Msg("job spawned")
	return id, nil
}

func (j *Jobs) reap(id JobID, jb *job) {
	err := jb.cmd.Wait()
	close(jb.done)
	j.logger.Debug().Uint64("job", uint64(id)).Int("pid", jb.pid).AnErr("exit", err).Msg("job exited")
}

// PID resolves the OS process id of a running job. An exited job has no pid:
// the number may already belong to another process.
func (j *Jobs) PID(id JobID) (int, error) {
	jb, err := j.lookup(id)
	if err != nil {
		return 0, err
	}
	select {
	case <-jb.done:
		return 0, fmt.Errorf("%w: %d", ErrJobExited, id)
	default:
		return jb.pid, nil
	}
}

// Alive reports whether the job's direct child is still running.
func (j *Jobs) Alive(id JobID) bool {
	jb, err := j.lookup(id)
	if err != nil {
		return false
	}
	select {
	case <-jb.done:
		return false
	default:
		return true
	}
}

// Stop issues the job-control stop signal to the job's process group. A job
// whose process already exited counts as stopped and is not signalled, since
// its group id may have been reused. An unknown job is an error. The job is
// dropped from the table once the stop was issued.
func (j *Jobs) Stop(id JobID) error {
	jb, err := j.lookup(id)
	if err != nil {
		return err
	}
	select {
	case <-jb.done:
		j.logger.Debug().Uint64("job", uint64(id)).Msg("job already exited, not signalling")
	default:
		if err := j.signal(jb.cmd.Process, jb.pid); err != nil {
			select {
			case <-jb.done:
			default:
				return fmt.Errorf("stop job %d (pid %d): %w", id, jb.pid, err)
			}
		}
	}
	j.mu.Lock()
	delete(j.byID, id)
	j.mu.Unlock()
	return nil
}

// Len returns the number of jobs in the table.
func (j *Jobs) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.byID)
}

func (j *Jobs) lookup(id JobID) (*job, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownJob, id)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	jb := j.byID[id]
	if jb == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownJob, id)
	}
	return jb, nil
}
