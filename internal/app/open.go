package app

import (
	"context"
	"errors"
	"time"

	slidectlv1 "slidectl/api/slidectl/v1"
)

// OpenParams names a file that was just opened.
type OpenParams struct {
	Path    string
	Timeout time.Duration
}

// OpenResult reports the daemon's auto-launch decision.
type OpenResult struct {
	Presentation bool
	Launched     bool
	Launch       LaunchResult
}

// Open notifies the daemon that a file was opened. The daemon launches it when
// auto_launch is set and the file is a presentation.
func (a *App) Open(ctx context.Context, params OpenParams) (OpenResult, error) {
	var result OpenResult
	if params.Path == "" {
		return result, errors.New("path is required")
	}
	path, err := a.resolvePath("open", params.Path)
	if err != nil {
		return result, err
	}
	err = a.withClient(ctx, params.Timeout, func(ctx context.Context, client slidectlv1.SlidesClient) error {
		resp, err := client.Open(ctx, &slidectlv1.OpenRequest{Path: path})
		if err != nil {
			return fromStatus("open", err)
		}
		result.Presentation = resp.Presentation
		result.Launched = resp.Launched
		if resp.Launch != nil {
			result.Launch = launchFromProto(resp.Launch)
		}
		return nil
	})
	return result, err
}
