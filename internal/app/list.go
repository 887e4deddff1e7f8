package app

import (
	"context"
	"time"

	slidectlv1 "slidectl/api/slidectl/v1"
)

// ListParams defines the timeout.
type ListParams struct {
	Timeout time.Duration
}

// List fetches the tracked presentations sorted by path.
func (a *App) List(ctx context.Context, params ListParams) ([]Entry, error) {
	var entries []Entry
	err := a.withClient(ctx, params.Timeout, func(ctx context.Context, client slidectlv1.SlidesClient) error {
		resp, err := client.List(ctx, &slidectlv1.ListRequest{})
		if err != nil {
			return fromStatus("list", err)
		}
		entries = make([]Entry, 0, len(resp.GetEntries()))
		for _, e := range resp.GetEntries() {
			entries = append(entries, entryFromProto(e))
		}
		return nil
	})
	return entries, err
}
