package app

import (
	"time"

	slidectlv1 "slidectl/api/slidectl/v1"
)

// Process mirrors one launched viewer in the daemon registry.
type Process struct {
	Index      int
	Job        uint64
	PID        int
	Alive      bool
	Command    string
	LaunchedAt time.Time
}

// Entry groups the viewers launched for one presentation file.
type Entry struct {
	Key   string
	Title string
	Procs []Process
}

func procFromProto(p *slidectlv1.Proc) Process {
	return Process{
		Index:      int(p.Index),
		Job:        p.Job,
		PID:        int(p.Pid),
		Alive:      p.Alive,
		Command:    p.Command,
		LaunchedAt: time.Unix(p.LaunchedAtUnix, 0),
	}
}

func entryFromProto(e *slidectlv1.Entry) Entry {
	out := Entry{Key: e.Key, Title: e.Title, Procs: make([]Process, 0, len(e.Procs))}
	for _, p := range e.Procs {
		out.Procs = append(out.Procs, procFromProto(p))
	}
	return out
}
