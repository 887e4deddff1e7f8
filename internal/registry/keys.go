package registry

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NormalizeKey returns the canonical form of a registry key: an absolute,
// cleaned file path.
func NormalizeKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", fmt.Errorf("key must not be empty")
	}
	if !filepath.IsAbs(key) {
		return "", fmt.Errorf("key %q is not an absolute path", key)
	}
	return filepath.Clean(key), nil
}

// TitleOf is the bare file name shown for a key.
func TitleOf(key string) string {
	return filepath.Base(key)
}
