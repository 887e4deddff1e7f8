package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"slidectl/internal/app"
)

// Options tunes a TUI session.
type Options struct {
	// Timeout bounds each daemon action. Zero uses client.timeout.
	Timeout time.Duration
	// StartDaemon starts an in-process daemon on launch when none is running.
	StartDaemon bool
}

// Controller defines the subset of app.App behaviour the TUI needs.
type Controller interface {
	Status() (app.DaemonStatus, error)
	StartDaemon() (*app.DaemonHandle, error)
	List(context.Context, app.ListParams) ([]app.Entry, error)
	Stop(context.Context, app.StopParams) (app.StopResult, error)
	StopEverything(context.Context, time.Duration) (int, error)
}

// Model represents the Bubble Tea state.
type Model struct {
	controller Controller
	opts       Options
	// handle is set when this TUI started the daemon; quitting closes it.
	handle *app.DaemonHandle

	list  list.Model
	items []viewerItem

	daemonStatus app.DaemonStatus
	statusMsg    string
	notice       string

	err     error
	loading bool

	width  int
	height int

	lastUpdated time.Time
}

// New constructs a TUI model with default styles.
func New(ctrl Controller, opts Options) *Model {
	delegate := list.NewDefaultDelegate()
	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "Presentations"
	lst.SetShowHelp(false)
	lst.SetFilteringEnabled(false)
	lst.DisableQuitKeybindings()

	return &Model{
		controller: ctrl,
		opts:       opts,
		list:       lst,
		statusMsg:  "Checking daemon status…",
		loading:    true,
	}
}

// Run spins up the Bubble Tea program with sensible defaults.
func Run(ctrl Controller, opts Options) error {
	m := New(ctrl, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	if closeErr := m.handle.Close(); err == nil {
		err = closeErr
	}
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.opts.StartDaemon {
		return ensureDaemonCmd(m.controller)
	}
	return tea.Batch(checkDaemonStatusCmd(m.controller), loadEntriesCmd(m.controller, m.opts.Timeout))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height > 5 {
			m.list.SetSize(msg.Width, msg.Height-5)
		}

	case daemonStatusMsg:
		m.daemonStatus = msg.status
		if msg.status.Running {
			if msg.status.PID > 0 {
				m.statusMsg = fmt.Sprintf("Daemon running (pid %d). Press r to refresh, q to quit.", msg.status.PID)
			} else {
				m.statusMsg = "Daemon running. Press r to refresh, q to quit."
			}
		} else {
			m.statusMsg = "Daemon is not running. Press s to start it."
			m.items = nil
			m.list.SetItems(nil)
		}

	case daemonRunningMsg:
		m.Update(daemonStatusMsg{status: msg.status})
		return m, loadEntriesCmd(m.controller, m.opts.Timeout)

	case entriesLoadedMsg:
		m.loading = false
		m.err = nil
		m.items = flatten(msg.entries)
		items := make([]list.Item, 0, len(m.items))
		for _, it := range m.items {
			items = append(items, it)
		}
		m.list.SetItems(items)
		m.lastUpdated = time.Now()

	case daemonStartedMsg:
		m.handle = msg.handle
		m.statusMsg = "Daemon started."
		return m, tea.Batch(checkDaemonStatusCmd(m.controller), loadEntriesCmd(m.controller, m.opts.Timeout))

	case stoppedMsg:
		m.notice = msg.text
		m.loading = true
		return m, loadEntriesCmd(m.controller, m.opts.Timeout)

	case errMsg:
		m.loading = false
		m.err = msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, loadEntriesCmd(m.controller, m.opts.Timeout)
		case "s":
			if !m.daemonStatus.Running {
				m.statusMsg = "Starting daemon…"
				return m, startDaemonCmd(m.controller)
			}
		case "x":
			if cur := m.current(); cur != nil {
				return m, stopCmd(m.controller, m.opts.Timeout, cur.Key, cur.Proc.Index)
			}
		case "a":
			if cur := m.current(); cur != nil {
				return m, stopCmd(m.controller, m.opts.Timeout, cur.Key, 0)
			}
		case "K":
			if len(m.items) > 0 {
				return m, stopEverythingCmd(m.controller, m.opts.Timeout)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	statusStyle := lipgloss.NewStyle().Bold(true)
	if !m.daemonStatus.Running {
		statusStyle = statusStyle.Foreground(lipgloss.Color("203"))
	} else {
		statusStyle = statusStyle.Foreground(lipgloss.Color("42"))
	}
	b.WriteString(statusStyle.Render(m.statusMsg))
	b.WriteByte('\n')

	if m.loading {
		b.WriteString("Loading presentations…\n")
	} else if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteByte('\n')
	}
	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteByte('\n')
	}

	if len(m.list.Items()) == 0 && !m.loading && m.err == nil && m.daemonStatus.Running {
		b.WriteString("No running presentations.\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteByte('\n')
	}

	if cur := m.current(); cur != nil {
		detail := fmt.Sprintf(
			"file=%s\nindex=%d job=%d pid=%d alive=%t\nlaunched=%s\ncmd=%s",
			cur.Key,
			cur.Proc.Index,
			cur.Proc.Job,
			cur.Proc.PID,
			cur.Proc.Alive,
			cur.Proc.LaunchedAt.Format(time.Kitchen),
			cur.Proc.Command,
		)
		detailStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginBottom(1)
		b.WriteString(detailStyle.Render(detail))
		b.WriteByte('\n')
	}

	help := "Commands: q quit • r reload • s start daemon • x stop • a stop file • K stop everything"
	if !m.lastUpdated.IsZero() {
		help += fmt.Sprintf(" • last update %s", m.lastUpdated.Format(time.Kitchen))
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// viewerItem is one launched viewer, listed under its file.
type viewerItem struct {
	Key  string
	Name string
	Proc app.Process
}

func (v viewerItem) Title() string {
	alive := "exited"
	if v.Proc.Alive {
		alive = "alive"
	}
	return fmt.Sprintf("%s #%d [pid=%d] (%s)", v.Name, v.Proc.Index, v.Proc.PID, alive)
}

func (v viewerItem) FilterValue() string {
	return fmt.Sprintf("%s %d %d", v.Key, v.Proc.Index, v.Proc.PID)
}

func (v viewerItem) Description() string {
	return fmt.Sprintf("%s | %s", filepath.Dir(v.Key), v.Proc.Command)
}

func flatten(entries []app.Entry) []viewerItem {
	var out []viewerItem
	for _, e := range entries {
		for _, p := range e.Procs {
			out = append(out, viewerItem{Key: e.Key, Name: e.Title, Proc: p})
		}
	}
	return out
}

func (m *Model) current() *viewerItem {
	if len(m.items) == 0 {
		return nil
	}
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}
	return &m.items[idx]
}

type daemonStatusMsg struct {
	status app.DaemonStatus
}

// daemonRunningMsg is a status check that found a daemon to list from.
type daemonRunningMsg struct {
	status app.DaemonStatus
}

type entriesLoadedMsg struct {
	entries []app.Entry
}

type daemonStartedMsg struct {
	handle *app.DaemonHandle
}

type stoppedMsg struct {
	text string
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func checkDaemonStatusCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		status, err := ctrl.Status()
		if err != nil {
			return errMsg{err}
		}
		return daemonStatusMsg{status: status}
	}
}

func loadEntriesCmd(ctrl Controller, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		entries, err := ctrl.List(context.Background(), app.ListParams{Timeout: timeout})
		if err != nil {
			return errMsg{err}
		}
		return entriesLoadedMsg{entries: entries}
	}
}

func stopCmd(ctrl Controller, timeout time.Duration, key string, index int) tea.Cmd {
	return func() tea.Msg {
		res, err := ctrl.Stop(context.Background(), app.StopParams{Path: key, Index: index, Timeout: timeout})
		if err != nil {
			return errMsg{err}
		}
		return stoppedMsg{text: fmt.Sprintf("Stopped %d process(es) for %s", res.Stopped, filepath.Base(key))}
	}
}

func stopEverythingCmd(ctrl Controller, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		n, err := ctrl.StopEverything(context.Background(), timeout)
		if err != nil {
			return errMsg{err}
		}
		return stoppedMsg{text: fmt.Sprintf("Stopped %d process(es)", n)}
	}
}

func startDaemonCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		h, err := ctrl.StartDaemon()
		if err != nil {
			return errMsg{err}
		}
		// Give the daemon a moment to bind the socket.
		time.Sleep(300 * time.Millisecond)
		return daemonStartedMsg{handle: h}
	}
}

// ensureDaemonCmd reports the running daemon, or starts one in this process.
func ensureDaemonCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		status, err := ctrl.Status()
		if err != nil {
			return errMsg{err}
		}
		if status.Running {
			return daemonRunningMsg{status: status}
		}
		return startDaemonCmd(ctrl)()
	}
}
