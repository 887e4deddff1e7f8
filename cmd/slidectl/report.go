package main

import (
	"errors"

	"github.com/spf13/cobra"

	"slidectl/internal/errs"
	"slidectl/internal/notify"
)

// exitError ends the command with a status code and no message.
type exitError struct{ code int }

func (e exitError) Error() string { return "exit" }

// exitCode maps an error kind to the process exit status.
func exitCode(err error) int {
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	switch errs.KindOf(err) {
	case errs.KindFileNotFound:
		return 2
	case errs.KindNotFound:
		return 3
	case errs.KindTermination:
		return 4
	case errs.KindNoTerminal:
		return 5
	case errs.KindSpawn:
		return 6
	default:
		return 1
	}
}

// reportError prints err at the level its kind calls for: a missing entry is
// informational, a failed stop is a warning, everything else is an error.
func reportError(sink notify.Sink, err error) {
	var ee exitError
	if errors.As(err, &ee) {
		return
	}
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		sink.Notify(notify.Info, err.Error())
	case errs.KindTermination:
		sink.Notify(notify.Warn, err.Error()+" (the process is still tracked; run stop again to retry)")
	default:
		sink.Notify(notify.Error, err.Error())
	}
}

func sinkFor(cmd *cobra.Command) notify.Sink {
	return notify.NewConsole(cmd.OutOrStdout())
}
