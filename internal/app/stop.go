package app

import (
	"context"
	"fmt"
	"time"

	slidectlv1 "slidectl/api/slidectl/v1"
)

// StopParams targets the viewers of one file.
type StopParams struct {
	// Path may be empty to use the only presentation file in the working directory.
	Path string
	// Index is the 1-based display index from List; 0 stops every viewer of Path.
	Index   int
	Timeout time.Duration
}

// StopResult reports how many viewers stopped.
type StopResult struct {
	Key     string
	Stopped int
}

// Stop terminates one viewer of a file, or all of them when no index is given.
func (a *App) Stop(ctx context.Context, params StopParams) (StopResult, error) {
	var result StopResult
	if params.Index < 0 {
		return result, fmt.Errorf("invalid index %d", params.Index)
	}
	path, err := a.resolvePath("stop", params.Path)
	if err != nil {
		return result, err
	}
	result.Key = path
	err = a.withClient(ctx, params.Timeout, func(ctx context.Context, client slidectlv1.SlidesClient) error {
		resp, err := client.Stop(ctx, &slidectlv1.StopRequest{Path: path, Index: int32(params.Index)})
		if err != nil {
			return fromStatus("stop", err)
		}
		result.Stopped = int(resp.GetStopped())
		return nil
	})
	return result, err
}

// StopEverything terminates every tracked viewer and empties the registry.
func (a *App) StopEverything(ctx context.Context, timeout time.Duration) (int, error) {
	var stopped int
	err := a.withClient(ctx, timeout, func(ctx context.Context, client slidectlv1.SlidesClient) error {
		resp, err := client.StopEverything(ctx, &slidectlv1.StopEverythingRequest{})
		if err != nil {
			return fromStatus("stop-everything", err)
		}
		stopped = int(resp.GetStopped())
		return nil
	})
	return stopped, err
}
