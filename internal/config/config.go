package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "SLIDECTL"

// Config is the effective configuration consumed read-only by the core.
type Config struct {
	ExecutablePath string   `mapstructure:"executable_path" yaml:"executable_path"`
	FilePatterns   []string `mapstructure:"file_patterns" yaml:"file_patterns"`
	AutoLaunch     bool     `mapstructure:"auto_launch" yaml:"auto_launch"`
	Terminal       Terminal `mapstructure:"terminal" yaml:"terminal"`
	Watch          Watch    `mapstructure:"watch" yaml:"watch"`
	Client         Client   `mapstructure:"client" yaml:"client"`
	Log            Log      `mapstructure:"log" yaml:"log"`
}

// Terminal selects how the viewer is wrapped in a terminal emulator.
type Terminal struct {
	// CommandTemplate may use {cmd}, {file} and {title}.
	CommandTemplate string `mapstructure:"command_template" yaml:"command_template"`
	// Priority restricts and reorders the built-in terminal list. Empty keeps the default order.
	Priority []string `mapstructure:"priority" yaml:"priority"`
}

type Watch struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Grace is how long a removed or renamed file may take to reappear before
	// its viewers are stopped. Editors save by rename and rewrite.
	Grace time.Duration `mapstructure:"grace" yaml:"grace"`
}

// Client tunes how the CLI and TUI talk to the daemon.
type Client struct {
	// Timeout bounds every daemon call, and a whole command when no --timeout is given.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ExecutablePath: "presenterm",
		FilePatterns:   []string{"*.md", "*.markdown", "*.slides"},
		Watch:          Watch{Enabled: true, Grace: 500 * time.Millisecond},
		Client:         Client{Timeout: 5 * time.Second},
		Log:            Log{Level: "info"},
	}
}

// Manager owns the live configuration. Configure calls are deep merges.
type Manager struct {
	mu sync.RWMutex
	v  *viper.Viper
}

// New returns a manager seeded with defaults and SLIDECTL_* environment overrides.
func New() *Manager {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Manager{v: v}
}

// Load builds a manager from an optional config file path (json, yaml or toml by extension).
func Load(path string) (*Manager, error) {
	m := New()
	if path == "" {
		return m, nil
	}
	if err := m.LoadFile(path); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return m, nil
}

// LoadFile merges a config file over the current settings.
func (m *Manager) LoadFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.v.SetConfigFile(path)
	if err := m.v.MergeInConfig(); err != nil {
		return err
	}
	log.Debug().Str("path", path).Msg("config file merged")
	return nil
}

// Configure deep-merges partial into the live configuration. Nested maps are
// merged key by key; keys absent from partial keep their current values. A
// partial that does not decode is rejected and leaves the configuration as it was.
func (m *Manager) Configure(partial map[string]any) error {
	if len(partial) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	trial := viper.New()
	if err := trial.MergeConfigMap(m.v.AllSettings()); err != nil {
		return fmt.Errorf("copy config: %w", err)
	}
	if err := trial.MergeConfigMap(partial); err != nil {
		return fmt.Errorf("merge config: %w", err)
	}
	var cfg Config
	if err := trial.Unmarshal(&cfg, decoderConfig()); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := m.v.MergeConfigMap(partial); err != nil {
		return fmt.Errorf("merge config: %w", err)
	}
	return nil
}

// Config decodes the effective configuration.
func (m *Manager) Config() (Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var cfg Config
	if err := m.v.Unmarshal(&cfg, decoderConfig()); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Settings returns the raw merged settings tree.
func (m *Manager) Settings() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.v.AllSettings()
}

// ParseOverrides turns "a.b=value" pairs into a nested partial map for Configure.
func ParseOverrides(pairs []string) (map[string]any, error) {
	out := make(map[string]any)
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid override %q (want key=value)", pair)
		}
		parts := strings.Split(strings.ToLower(key), ".")
		node := out
		for _, p := range parts[:len(parts)-1] {
			if p == "" {
				return nil, fmt.Errorf("invalid override key %q", key)
			}
			child, ok := node[p].(map[string]any)
			if !ok {
				if _, clash := node[p]; clash {
					return nil, fmt.Errorf("override %q conflicts with a scalar value", key)
				}
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if leaf == "" {
			return nil, errors.New("override key must not end with '.'")
		}
		node[leaf] = strings.TrimSpace(value)
	}
	return out, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("executable_path", cfg.ExecutablePath)
	v.SetDefault("file_patterns", cfg.FilePatterns)
	v.SetDefault("auto_launch", cfg.AutoLaunch)
	v.SetDefault("terminal.command_template", cfg.Terminal.CommandTemplate)
	v.SetDefault("terminal.priority", cfg.Terminal.Priority)
	v.SetDefault("watch.enabled", cfg.Watch.Enabled)
	v.SetDefault("watch.grace", cfg.Watch.Grace)
	v.SetDefault("client.timeout", cfg.Client.Timeout)
	v.SetDefault("log.level", cfg.Log.Level)
}

func decoderConfig() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}
