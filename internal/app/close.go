package app

import (
	"context"
	"errors"
	"time"

	slidectlv1 "slidectl/api/slidectl/v1"
)

// CloseParams names the file whose context closed.
type CloseParams struct {
	Path    string
	Timeout time.Duration
}

// CloseResult reports whether the file was tracked and what stopped.
type CloseResult struct {
	Key     string
	Tracked bool
	Stopped int
}

// Close signals that a file's context closed: its viewers are stopped.
// Closing an untracked file is not an error.
func (a *App) Close(ctx context.Context, params CloseParams) (CloseResult, error) {
	var result CloseResult
	if params.Path == "" {
		return result, errors.New("path is required")
	}
	path, err := a.resolvePath("close", params.Path)
	if err != nil {
		return result, err
	}
	result.Key = path
	err = a.withClient(ctx, params.Timeout, func(ctx context.Context, client slidectlv1.SlidesClient) error {
		resp, err := client.Close(ctx, &slidectlv1.CloseRequest{Path: path})
		if err != nil {
			return fromStatus("close", err)
		}
		result.Tracked = resp.Tracked
		result.Stopped = int(resp.Stopped)
		return nil
	})
	return result, err
}
