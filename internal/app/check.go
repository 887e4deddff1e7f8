package app

import (
	"errors"
	"path/filepath"

	"slidectl/internal/classify"
)

// Check classifies path locally with the effective file patterns. It does not
// need the daemon.
func (a *App) Check(path string) (bool, error) {
	if path == "" {
		return false, errors.New("path is required")
	}
	m, err := a.configManager()
	if err != nil {
		return false, err
	}
	cfg, err := m.Config()
	if err != nil {
		return false, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	return classify.New(cfg.FilePatterns).IsPresentationFile(abs), nil
}

// Settings returns the merged configuration tree the daemon would start with.
func (a *App) Settings() (map[string]any, error) {
	m, err := a.configManager()
	if err != nil {
		return nil, err
	}
	return m.Settings(), nil
}
