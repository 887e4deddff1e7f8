package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	slidectlv1 "slidectl/api/slidectl/v1"
	"slidectl/internal/daemon"
)

// ErrDaemonNotRunning is returned by every daemon-backed action when no daemon answers.
var ErrDaemonNotRunning = errors.New("daemon is not running")

var (
	daemonIsRunning  = daemon.IsRunning
	dialDaemonClient = dialSlides
)

func dialSlides(ctx context.Context, callTimeout time.Duration) (slidectlv1.SlidesClient, io.Closer, error) {
	client, conn, err := daemon.Dial(ctx, callTimeout)
	if err != nil {
		return nil, nil, err
	}
	return client, conn, nil
}

func resetDaemonDeps() {
	daemonIsRunning = daemon.IsRunning
	dialDaemonClient = dialSlides
}

// withClient runs fn against the daemon. timeout bounds the whole action; zero
// means client.timeout from the configuration, which also bounds each call.
func (a *App) withClient(ctx context.Context, timeout time.Duration, fn func(context.Context, slidectlv1.SlidesClient) error) error {
	if timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	callTimeout, err := a.callTimeout()
	if err != nil {
		return err
	}
	if timeout == 0 {
		timeout = callTimeout
	}
	if !daemonIsRunning() {
		return ErrDaemonNotRunning
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, conn, err := dialDaemonClient(ctx, callTimeout)
	if err != nil {
		return fmt.Errorf("connect to daemon: %w", err)
	}
	if conn != nil {
		defer conn.Close()
	}

	return fn(ctx, client)
}

// callTimeout reads client.timeout, falling back to the built-in default when
// it is unset.
func (a *App) callTimeout() (time.Duration, error) {
	m, err := a.configManager()
	if err != nil {
		return 0, err
	}
	cfg, err := m.Config()
	if err != nil {
		return 0, err
	}
	if cfg.Client.Timeout <= 0 {
		return defaultCallTimeout, nil
	}
	return cfg.Client.Timeout, nil
}
