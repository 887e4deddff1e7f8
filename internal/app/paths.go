package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"slidectl/internal/classify"
	"slidectl/internal/errs"
)

// resolvePath returns the absolute form of path. An empty path selects the
// only presentation file in the working directory.
func (a *App) resolvePath(op, path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve %q: %w", path, err)
		}
		return abs, nil
	}
	return a.defaultPath(op)
}

func (a *App) defaultPath(op string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	m, err := a.configManager()
	if err != nil {
		return "", err
	}
	cfg, err := m.Config()
	if err != nil {
		return "", err
	}
	c := classify.New(cfg.FilePatterns)

	dirents, err := os.ReadDir(cwd)
	if err != nil {
		return "", errs.Wrap(errs.KindIO, op, cwd, err)
	}
	var found []string
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		p := filepath.Join(cwd, d.Name())
		if c.IsPresentationFile(p) {
			found = append(found, p)
		}
	}
	sort.Strings(found)
	switch len(found) {
	case 0:
		return "", errs.New(errs.KindFileNotFound, op, cwd, "no presentation file in directory; pass a path")
	case 1:
		return found[0], nil
	default:
		names := make([]string, 0, len(found))
		for _, p := range found {
			names = append(names, filepath.Base(p))
		}
		return "", errs.New(errs.KindFileNotFound, op, cwd,
			fmt.Sprintf("several presentation files (%s); pass a path", strings.Join(names, ", ")))
	}
}
