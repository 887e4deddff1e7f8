package main

import (
	"context"
	"time"

	"slidectl/internal/app"
)

type controllerAPI interface {
	Ping(ctx context.Context, timeout time.Duration) (string, error)
	Launch(ctx context.Context, params app.LaunchParams) (app.LaunchResult, error)
	Stop(ctx context.Context, params app.StopParams) (app.StopResult, error)
	StopEverything(ctx context.Context, timeout time.Duration) (int, error)
	List(ctx context.Context, params app.ListParams) ([]app.Entry, error)
	Close(ctx context.Context, params app.CloseParams) (app.CloseResult, error)
	Open(ctx context.Context, params app.OpenParams) (app.OpenResult, error)
	Check(path string) (bool, error)
	Settings() (map[string]any, error)
	Status() (app.DaemonStatus, error)
	StopDaemon(force bool) error
	StartDaemon() (*app.DaemonHandle, error)
}

var controllerFactory = func() controllerAPI {
	return app.New(app.Options{ConfigPath: configPath, Overrides: setOverrides})
}

func controller() controllerAPI {
	return controllerFactory()
}
