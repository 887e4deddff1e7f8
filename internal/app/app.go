package app

import (
	"slidectl/internal/config"
)

var defaultCallTimeout = config.Default().Client.Timeout

// Options configures the top-level controller.
type Options struct {
	// ConfigPath points to the optional config file.
	ConfigPath string
	// Overrides are "key=value" settings merged over the file.
	Overrides []string
}

// App exposes high-level operations that the CLI/TUI can reuse.
type App struct {
	cfgPath   string
	overrides []string
}

// New constructs the shared controller facade.
func New(opts Options) *App {
	return &App{
		cfgPath:   opts.ConfigPath,
		overrides: append([]string(nil), opts.Overrides...),
	}
}

// ConfigPath returns the configured config file path (if any).
func (a *App) ConfigPath() string {
	return a.cfgPath
}

func (a *App) overrideMap() (map[string]any, error) {
	return config.ParseOverrides(a.overrides)
}

// configManager loads the file and applies overrides, the way the daemon does.
func (a *App) configManager() (*config.Manager, error) {
	m, err := config.Load(a.cfgPath)
	if err != nil {
		return nil, err
	}
	partial, err := a.overrideMap()
	if err != nil {
		return nil, err
	}
	if err := m.Configure(partial); err != nil {
		return nil, err
	}
	return m, nil
}
