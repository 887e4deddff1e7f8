package app

import (
	"context"
	"time"

	slidectlv1 "slidectl/api/slidectl/v1"
)

// LaunchParams configures a launch.
type LaunchParams struct {
	// Path may be empty to use the only presentation file in the working directory.
	Path    string
	Timeout time.Duration
}

// LaunchResult reports the spawned viewer.
type LaunchResult struct {
	Key     string
	Title   string
	Job     uint64
	PID     int
	Command string
}

// Launch asks the daemon to open the presentation in a terminal.
func (a *App) Launch(ctx context.Context, params LaunchParams) (LaunchResult, error) {
	var result LaunchResult
	path, err := a.resolvePath("launch", params.Path)
	if err != nil {
		return result, err
	}
	err = a.withClient(ctx, params.Timeout, func(ctx context.Context, client slidectlv1.SlidesClient) error {
		resp, err := client.Launch(ctx, &slidectlv1.LaunchRequest{Path: path})
		if err != nil {
			return fromStatus("launch", err)
		}
		result = launchFromProto(resp)
		return nil
	})
	return result, err
}

func launchFromProto(resp *slidectlv1.LaunchResponse) LaunchResult {
	return LaunchResult{
		Key:     resp.Key,
		Title:   resp.Title,
		Job:     resp.Job,
		PID:     int(resp.Pid),
		Command: resp.Command,
	}
}
