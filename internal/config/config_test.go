package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := New().Config()
	require.NoError(t, err)
	assert.Equal(t, Default(), normalize(cfg))
}

func TestConfigureDeepMerge(t *testing.T) {
	m := New()
	require.NoError(t, m.Configure(map[string]any{
		"terminal": map[string]any{"priority": []string{"xterm", "kitty"}},
	}))
	require.NoError(t, m.Configure(map[string]any{
		"terminal": map[string]any{"command_template": "tmux new-window '{cmd}'"},
	}))

	cfg, err := m.Config()
	require.NoError(t, err)
	assert.Equal(t, "tmux new-window '{cmd}'", cfg.Terminal.CommandTemplate)
	assert.Equal(t, []string{"xterm", "kitty"}, cfg.Terminal.Priority)
	assert.Equal(t, "presenterm", cfg.ExecutablePath)
	assert.Equal(t, []string{"*.md", "*.markdown", "*.slides"}, cfg.FilePatterns)
	assert.True(t, cfg.Watch.Enabled)
}

func TestConfigureFromOverrides(t *testing.T) {
	partial, err := ParseOverrides([]string{
		"auto_launch=true",
		"file_patterns=*.md,*.deck",
		"terminal.command_template={cmd}",
	})
	require.NoError(t, err)

	m := New()
	require.NoError(t, m.Configure(partial))
	cfg, err := m.Config()
	require.NoError(t, err)
	assert.True(t, cfg.AutoLaunch)
	assert.Equal(t, []string{"*.md", "*.deck"}, cfg.FilePatterns)
	assert.Equal(t, "{cmd}", cfg.Terminal.CommandTemplate)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfigureRejectedLeavesConfigUnchanged(t *testing.T) {
	m := New()
	err := m.Configure(map[string]any{
		"executable_path": "slides",
		"watch":           map[string]any{"grace": "soon"},
	})
	require.Error(t, err)

	cfg, err := m.Config()
	require.NoError(t, err)
	assert.Equal(t, "presenterm", cfg.ExecutablePath)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Grace)
}

func TestWatchGraceFromOverride(t *testing.T) {
	partial, err := ParseOverrides([]string{"watch.grace=2s"})
	require.NoError(t, err)
	m := New()
	require.NoError(t, m.Configure(partial))
	cfg, err := m.Config()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Watch.Grace)
	assert.True(t, cfg.Watch.Enabled)
}

func TestParseOverridesRejectsMalformed(t *testing.T) {
	for _, in := range []string{"novalue", "=x", "a..b=1", "a.=1"} {
		_, err := ParseOverrides([]string{in})
		assert.Error(t, err, in)
	}
	_, err := ParseOverrides([]string{"terminal=x", "terminal.priority=kitty"})
	assert.Error(t, err)
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slidectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("executable_path: slides\nterminal:\n  priority: [foot]\n"), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	cfg, err := m.Config()
	require.NoError(t, err)
	assert.Equal(t, "slides", cfg.ExecutablePath)
	assert.Equal(t, []string{"foot"}, cfg.Terminal.Priority)
	assert.Equal(t, "", cfg.Terminal.CommandTemplate)
	assert.Equal(t, []string{"*.md", "*.markdown", "*.slides"}, cfg.FilePatterns)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SLIDECTL_EXECUTABLE_PATH", "lookatme")
	cfg, err := New().Config()
	require.NoError(t, err)
	assert.Equal(t, "lookatme", cfg.ExecutablePath)
}

func normalize(cfg Config) Config {
	if len(cfg.Terminal.Priority) == 0 {
		cfg.Terminal.Priority = nil
	}
	return cfg
}
