// Package launch composes the shell command that opens a presentation viewer
// inside a terminal emulator. It never executes anything.
package launch

import (
	"os"
	"os/exec"
	"strings"

	"slidectl/internal/config"
	"slidectl/internal/errs"
)

// Host answers the side-effect-free queries the builder needs.
type Host interface {
	Readable(path string) bool
	Executable(name string) bool
}

// OSHost probes the real filesystem and PATH.
type OSHost struct{}

func (OSHost) Readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	st, err := f.Stat()
	return err == nil && !st.IsDir()
}

func (OSHost) Executable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Builder turns a file path into a terminal launch command.
type Builder struct {
	host      Host
	terminals []Terminal
}

// NewBuilder returns a builder probing host for the built-in terminal list.
func NewBuilder(host Host) *Builder {
	if host == nil {
		host = OSHost{}
	}
	return &Builder{host: host, terminals: KnownTerminals()}
}

// Build returns the outer command line for file. title is the bare file name
// shown by the terminal.
func (b *Builder) Build(file, title string, cfg config.Config) (string, error) {
	if !b.host.Readable(file) {
		return "", errs.New(errs.KindFileNotFound, "launch", file, "file is not readable")
	}

	inner := InnerCommand(file, cfg.ExecutablePath)

	if tmpl := cfg.Terminal.CommandTemplate; tmpl != "" {
		return strings.NewReplacer(
			"{cmd}", inner,
			"{file}", Quote(file),
			"{title}", title,
		).Replace(tmpl), nil
	}

	for _, term := range Prioritize(b.terminals, cfg.Terminal.Priority) {
		if !b.host.Executable(term.Binary) {
			continue
		}
		return term.Format(inner, title), nil
	}
	return "", errs.New(errs.KindNoTerminal, "launch", file, "no supported terminal emulator found; set terminal.command_template")
}

// InnerCommand is the viewer invocation run inside the terminal.
func InnerCommand(file, executable string) string {
	executable = strings.TrimSpace(executable)
	if executable == "" {
		return Quote(file)
	}
	return executable + " " + Quote(file)
}

// Quote escapes s for inclusion in a POSIX shell command line.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuoting) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("@%+=:,./-_", r)
}
