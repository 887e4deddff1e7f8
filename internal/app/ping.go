package app

import (
	"context"
	"fmt"
	"time"

	slidectlv1 "slidectl/api/slidectl/v1"
)

// Ping contacts the daemon and returns its health response.
func (a *App) Ping(ctx context.Context, timeout time.Duration) (string, error) {
	var msg string
	err := a.withClient(ctx, timeout, func(ctx context.Context, client slidectlv1.SlidesClient) error {
		resp, err := client.Ping(ctx, &slidectlv1.PingRequest{})
		if err != nil {
			return fmt.Errorf("daemon ping RPC failed: %w", err)
		}
		msg = resp.GetOk()
		return nil
	})
	return msg, err
}
