package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"slidectl/internal/app"
	"slidectl/internal/errs"
	"slidectl/internal/notify"
)

func TestExitCodes(t *testing.T) {
	cases := map[int]error{
		2: errs.New(errs.KindFileNotFound, "launch", "/a.md", "file is not readable"),
		3: errs.New(errs.KindNotFound, "stop", "/a.md", "no running presentation"),
		4: errs.Wrap(errs.KindTermination, "stop", "/a.md", errors.New("refused")),
		5: errs.New(errs.KindNoTerminal, "launch", "/a.md", ""),
		6: errs.New(errs.KindSpawn, "launch", "/a.md", ""),
		1: errors.New("daemon is not running"),
		7: exitError{code: 7},
	}
	for want, err := range cases {
		if got := exitCode(err); got != want {
			t.Fatalf("%v: expected exit %d, got %d", err, want, got)
		}
	}
}

func TestReportErrorLevels(t *testing.T) {
	var levels []notify.Level
	sink := notify.Func(func(l notify.Level, _ string) { levels = append(levels, l) })

	reportError(sink, errs.New(errs.KindNotFound, "stop", "/a.md", ""))
	reportError(sink, errs.New(errs.KindTermination, "stop", "/a.md", ""))
	reportError(sink, errs.New(errs.KindNoTerminal, "launch", "/a.md", ""))
	reportError(sink, exitError{code: 1})

	want := []notify.Level{notify.Info, notify.Warn, notify.Error}
	if len(levels) != len(want) {
		t.Fatalf("expected %v, got %v", want, levels)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, levels)
		}
	}
}

func TestStopArgs(t *testing.T) {
	var got app.StopParams
	withController(t, &stubController{
		stopFunc: func(ctx context.Context, params app.StopParams) (app.StopResult, error) {
			got = params
			return app.StopResult{Key: "/d/a.md", Stopped: 1}, nil
		},
	})
	buf := withOutput(t)

	if err := cmdStop.RunE(cmdStop, []string{"a.md", "2"}); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if got.Path != "a.md" || got.Index != 2 {
		t.Fatalf("unexpected params %+v", got)
	}
	if !strings.Contains(buf.String(), "stopped 1 process(es) for /d/a.md") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	if err := cmdStop.RunE(cmdStop, []string{"a.md", "0"}); err == nil {
		t.Fatal("expected invalid index error")
	}
}

func TestLaunchPassesPath(t *testing.T) {
	withController(t, &stubController{
		launchFunc: func(ctx context.Context, params app.LaunchParams) (app.LaunchResult, error) {
			if params.Path != "deck.md" || params.Timeout != rpcTimeout {
				t.Fatalf("unexpected params %+v", params)
			}
			return app.LaunchResult{Title: "deck.md", Job: 3, PID: 77}, nil
		},
	})
	buf := withOutput(t)
	if err := cmdLaunch.RunE(cmdLaunch, []string{"deck.md"}); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if got := buf.String(); got != "info: launched deck.md (job 3, pid 77)\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatEntries(t *testing.T) {
	if got := formatEntries(nil); got != "no running presentations" {
		t.Fatalf("unexpected empty output %q", got)
	}
	got := formatEntries([]app.Entry{{
		Key:   "/d/a.md",
		Title: "a.md",
		Procs: []app.Process{
			{Index: 1, Job: 2, PID: 300, Alive: true},
			{Index: 2, Job: 5},
		},
	}})
	want := "1 presentation(s) running\na.md (/d/a.md)\n  [1] pid=300 job=2 alive\n  [2] pid=- job=5 exited"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestListJSON(t *testing.T) {
	withController(t, &stubController{
		listFunc: func(ctx context.Context, params app.ListParams) ([]app.Entry, error) {
			return nil, nil
		},
	})
	buf := withOutput(t)
	listJSON = true
	t.Cleanup(func() { listJSON = false })

	if err := cmdList.RunE(cmdList, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestCheckExitStatus(t *testing.T) {
	withController(t, &stubController{
		checkFunc: func(path string) (bool, error) { return path == "deck.md", nil },
	})
	buf := withOutput(t)

	if err := cmdCheck.RunE(cmdCheck, []string{"deck.md"}); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	err := cmdCheck.RunE(cmdCheck, []string{"notes.md"})
	if exitCode(err) != 1 {
		t.Fatalf("expected exit 1, got %v", err)
	}
	if buf.String() != "deck.md: presentation\nnotes.md: not a presentation\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestConfigPrintsYAML(t *testing.T) {
	withController(t, &stubController{settings: map[string]any{
		"executable_path": "presenterm",
		"terminal":        map[string]any{"command_template": "tmux {cmd}"},
	}})
	buf := withOutput(t)
	if err := cmdConfig.RunE(cmdConfig, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	want := "executable_path: presenterm\nterminal:\n  command_template: tmux {cmd}\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output %q", got)
	}
}
