package registry

import (
	"errors"
)

var errMalformedHandle = errors.New("malformed handle: job id must be positive")

// terminate stops one handle. The job-control stop decides the result. The
// descendant snapshot is taken before it, while the wrapper is still alive, so
// workers that left the process group are still reachable afterwards. The
// descendant and pid kills are logged and dropped.
func (r *Registry) terminate(h Handle) error {
	if h.Job == 0 {
		return errMalformedHandle
	}

	pid, pidErr := r.jobs.PID(h.Job)
	if pidErr != nil {
		r.logger.Debug().Err(pidErr).Uint64("job", uint64(h.Job)).Msg("pid unresolved")
		pid = 0
	}
	var (
		tree    []int
		treeErr error
	)
	if pid > 0 {
		tree, treeErr = r.tree.Descendants(pid)
		if treeErr != nil {
			r.logger.Debug().Err(treeErr).Int("pid", pid).Msg("descendant snapshot failed")
		}
	}

	result := r.jobs.Stop(h.Job)

	if pid > 0 {
		var err error
		if treeErr != nil {
			err = r.tree.KillDescendants(pid)
		} else {
			err = r.tree.KillPIDs(tree)
		}
		if err != nil {
			r.logger.Debug().Err(err).Int("pid", pid).Msg("descendant kill failed")
		}
		if err := r.tree.Kill(pid); err != nil {
			r.logger.Debug().Err(err).Int("pid", pid).Msg("pid kill failed")
		}
	}
	return result
}
