package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"slidectl/internal/app"
)

type stubController struct {
	entries  []app.Entry
	stops    []app.StopParams
	stopAll  int
	listErr  error
	startErr error
	stopped  bool
	started  int
}

func (s *stubController) Status() (app.DaemonStatus, error) {
	if s.stopped {
		return app.DaemonStatus{}, nil
	}
	return app.DaemonStatus{Running: true, PID: 7}, nil
}

func (s *stubController) StartDaemon() (*app.DaemonHandle, error) {
	s.started++
	return nil, s.startErr
}

func (s *stubController) List(context.Context, app.ListParams) ([]app.Entry, error) {
	return s.entries, s.listErr
}

func (s *stubController) Stop(_ context.Context, p app.StopParams) (app.StopResult, error) {
	s.stops = append(s.stops, p)
	return app.StopResult{Key: p.Path, Stopped: 1}, nil
}

func (s *stubController) StopEverything(context.Context, time.Duration) (int, error) {
	s.stopAll++
	return 2, nil
}

func sampleEntries() []app.Entry {
	return []app.Entry{
		{Key: "/d/a.md", Title: "a.md", Procs: []app.Process{{Index: 1, PID: 10, Alive: true}, {Index: 2, PID: 11}}},
		{Key: "/d/b.md", Title: "b.md", Procs: []app.Process{{Index: 1, PID: 12, Alive: true}}},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, ctrl *stubController) *Model {
	t.Helper()
	m := New(ctrl, Options{Timeout: 2 * time.Second})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(daemonStatusMsg{status: app.DaemonStatus{Running: true, PID: 7}})
	m.Update(entriesLoadedMsg{entries: ctrl.entries})
	return m
}

func TestEntriesAreFlattened(t *testing.T) {
	m := loaded(t, &stubController{entries: sampleEntries()})
	if got := len(m.list.Items()); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if cur := m.current(); cur == nil || cur.Key != "/d/a.md" || cur.Proc.Index != 1 {
		t.Fatalf("unexpected current row %+v", cur)
	}
	view := m.View()
	if !strings.Contains(view, "a.md #2 [pid=11] (exited)") {
		t.Fatalf("view is missing second viewer:\n%s", view)
	}
}

func TestStopKeys(t *testing.T) {
	ctrl := &stubController{entries: sampleEntries()}
	m := loaded(t, ctrl)

	_, cmd := m.Update(key("x"))
	if cmd == nil {
		t.Fatal("expected stop command")
	}
	msg := cmd()
	if _, ok := msg.(stoppedMsg); !ok {
		t.Fatalf("expected stoppedMsg, got %T", msg)
	}
	if len(ctrl.stops) != 1 || ctrl.stops[0].Path != "/d/a.md" || ctrl.stops[0].Index != 1 || ctrl.stops[0].Timeout != 2*time.Second {
		t.Fatalf("unexpected stop params %+v", ctrl.stops)
	}

	_, cmd = m.Update(key("a"))
	cmd()
	if ctrl.stops[1].Index != 0 {
		t.Fatalf("expected whole-file stop, got %+v", ctrl.stops[1])
	}

	_, cmd = m.Update(key("K"))
	cmd()
	if ctrl.stopAll != 1 {
		t.Fatalf("expected stop everything, got %d", ctrl.stopAll)
	}
}

func TestStartDaemonOption(t *testing.T) {
	ctrl := &stubController{stopped: true}
	m := New(ctrl, Options{StartDaemon: true})
	if msg := m.Init()(); msg != (daemonStartedMsg{}) {
		t.Fatalf("expected daemonStartedMsg, got %#v", msg)
	}
	if ctrl.started != 1 {
		t.Fatalf("expected one daemon start, got %d", ctrl.started)
	}

	running := &stubController{entries: sampleEntries()}
	m = New(running, Options{StartDaemon: true})
	msg := m.Init()()
	if _, ok := msg.(daemonRunningMsg); !ok {
		t.Fatalf("expected daemonRunningMsg, got %T", msg)
	}
	if running.started != 0 {
		t.Fatal("a running daemon must not be started again")
	}
	_, cmd := m.Update(msg)
	if !m.daemonStatus.Running || cmd == nil {
		t.Fatal("expected running status and an entries load")
	}
	if _, ok := cmd().(entriesLoadedMsg); !ok {
		t.Fatal("expected entries to load")
	}
}

func TestStopKeysIgnoredWhenEmpty(t *testing.T) {
	ctrl := &stubController{}
	m := loaded(t, ctrl)
	for _, k := range []string{"x", "a", "K"} {
		m.Update(key(k))
	}
	if len(ctrl.stops) != 0 || ctrl.stopAll != 0 {
		t.Fatal("nothing should have been stopped")
	}
	if !strings.Contains(m.View(), "No running presentations.") {
		t.Fatalf("expected empty notice:\n%s", m.View())
	}
}

func TestErrorShown(t *testing.T) {
	m := loaded(t, &stubController{})
	m.Update(errMsg{errors.New("daemon is not running")})
	if !strings.Contains(m.View(), "Error: daemon is not running") {
		t.Fatalf("error not rendered:\n%s", m.View())
	}
}
