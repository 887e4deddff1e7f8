package proc

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// CommandLine describes the command running as pid, falling back to a
// synthetic placeholder when it cannot be determined.
func CommandLine(pid int) string {
	if pid <= 0 {
		return fmt.Sprintf("pid:%d", pid)
	}
	if p, err := process.NewProcess(int32(pid)); err == nil {
		if cmd, err := p.Cmdline(); err == nil && cmd != "" {
			return cmd
		}
	}
	if cmd, err := readProcCmdline(pid); err == nil && cmd != "" {
		return cmd
	}
	if cmd, err := readPsCommand(pid); err == nil && cmd != "" {
		return cmd
	}
	return fmt.Sprintf("pid:%d", pid)
}

// Running reports whether pid exists on the host.
func Running(pid int) bool {
	if pid <= 0 {
		return false
	}
	ok, err := process.PidExists(int32(pid))
	return err == nil && ok
}

func readProcCmdline(pid int) (string, error) {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "cmdline"))
	if err != nil {
		return "", err
	}
	parts := bytes.Split(data, []byte{0})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) == 0 {
			continue
		}
		out = append(out, string(part))
	}
	return strings.Join(out, " "), nil
}

func readPsCommand(pid int) (string, error) {
	output, err := exec.Command("ps", "-o", "command=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
