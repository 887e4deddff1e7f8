// Package notify delivers user-facing messages at info, warn or error level.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Sink receives fire-and-forget notifications.
type Sink interface {
	Notify(level Level, msg string)
}

// Func adapts a function to Sink.
type Func func(level Level, msg string)

func (f Func) Notify(level Level, msg string) { f(level, msg) }

// Discard drops every message.
var Discard Sink = Func(func(Level, string) {})

// Console writes one prefixed line per message. Prefixes are coloured only
// when the writer is a terminal.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[Level]lipgloss.Style
	color  bool
}

// NewConsole returns a console sink writing to w.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:     w,
		color: isTerminal(w),
		styles: map[Level]lipgloss.Style{
			Info:  r.NewStyle().Foreground(lipgloss.Color("12")),
			Warn:  r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			Error: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		},
	}
}

func (c *Console) Notify(level Level, msg string) {
	prefix := level.String() + ":"
	if c.color {
		prefix = c.styles[level].Render(prefix)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%s %s\n", prefix, msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Log forwards notifications to a zerolog logger.
type Log struct {
	logger zerolog.Logger
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(level Level, msg string) {
	switch level {
	case Warn:
		l.logger.Warn().Msg(msg)
	case Error:
		l.logger.Error().Msg(msg)
	default:
		l.logger.Info().Msg(msg)
	}
}
