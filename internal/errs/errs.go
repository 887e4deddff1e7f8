// Package errs defines the error kinds surfaced by slidectl operations.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for reporting and exit codes.
type Kind int

const (
	KindUnknown Kind = iota
	// KindIO: a file could not be opened or read. Recovered locally by the classifier.
	KindIO
	// KindFileNotFound: launch target missing or unreadable.
	KindFileNotFound
	// KindNoTerminal: no known terminal on PATH and no template configured.
	KindNoTerminal
	// KindSpawn: the spawn primitive did not produce a valid job.
	KindSpawn
	// KindNotFound: a stop request referenced no live entry.
	KindNotFound
	// KindTermination: the authoritative stop signal failed.
	KindTermination
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFileNotFound:
		return "file_not_found"
	case KindNoTerminal:
		return "no_terminal"
	case KindSpawn:
		return "spawn_failure"
	case KindNotFound:
		return "not_found"
	case KindTermination:
		return "termination_failure"
	default:
		return "unknown"
	}
}

// Error is the single error type carried across package boundaries.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrIO           = &Error{Kind: KindIO}
	ErrFileNotFound = &Error{Kind: KindFileNotFound}
	ErrNoTerminal   = &Error{Kind: KindNoTerminal}
	ErrSpawn        = &Error{Kind: KindSpawn}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrTermination  = &Error{Kind: KindTermination}
)

// New builds an error of the given kind.
func New(kind Kind, op, path, msg string) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Msg: msg}
}

// Wrap builds an error of the given kind around cause.
func Wrap(kind Kind, op, path string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
