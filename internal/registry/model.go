package registry

import (
	"time"

	"slidectl/internal/proc"
)

// Handle is one launched viewer process tracked under a key.
type Handle struct {
	Job        proc.JobID `json:"job"`
	PID        int        `json:"pid"` // captured at spawn; 0 when unknown
	Command    string     `json:"command"`
	LaunchedAt time.Time  `json:"launched_at"`
}

// Proc is a handle as seen by List, with its 1-based display index.
type Proc struct {
	Index  int    `json:"index"`
	Handle Handle `json:"handle"`
	PID    int    `json:"pid"` // best-effort; 0 when unresolved
	Alive  bool   `json:"alive"`
}

// Entry is the List snapshot of one key.
type Entry struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Procs []Proc `json:"procs"`
}

type entry struct {
	title   string
	handles []Handle
}
