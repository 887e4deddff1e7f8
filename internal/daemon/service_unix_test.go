//go:build !windows

package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	slidectlv1 "slidectl/api/slidectl/v1"
	"slidectl/internal/config"
)

// sleeperConfig launches a plain sleep instead of a terminal emulator.
func sleeperConfig(watch bool) config.Config {
	cfg := config.Default()
	cfg.Terminal.CommandTemplate = "sleep 30 # {title}"
	cfg.Watch.Enabled = watch
	return cfg
}

func newTestService(t *testing.T, cfg config.Config) *service {
	t.Helper()
	svc, err := newService(cfg)
	require.NoError(t, err)
	t.Cleanup(svc.shutdown)
	return svc
}

func writeDeck(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "deck.md")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestServiceLaunchListStop(t *testing.T) {
	svc := newTestService(t, sleeperConfig(false))
	ctx := context.Background()
	deck := writeDeck(t, "a\n---\nb")

	launched, err := svc.Launch(ctx, &slidectlv1.LaunchRequest{Path: deck})
	require.NoError(t, err)
	assert.Equal(t, deck, launched.Key)
	assert.Equal(t, "deck.md", launched.Title)
	assert.Positive(t, launched.Pid)
	_, err = svc.Launch(ctx, &slidectlv1.LaunchRequest{Path: deck})
	require.NoError(t, err)

	list, err := svc.List(ctx, &slidectlv1.ListRequest{})
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	require.Len(t, list.Entries[0].Procs, 2)
	assert.Equal(t, int32(2), list.Entries[0].Procs[1].Index)
	assert.True(t, list.Entries[0].Procs[0].Alive)

	stopped, err := svc.Stop(ctx, &slidectlv1.StopRequest{Path: deck, Index: 1})
	require.NoError(t, err)
	assert.Equal(t, int32(1), stopped.Stopped)

	stopped, err = svc.Stop(ctx, &slidectlv1.StopRequest{Path: deck})
	require.NoError(t, err)
	assert.Equal(t, int32(1), stopped.Stopped)

	_, err = svc.Stop(ctx, &slidectlv1.StopRequest{Path: deck})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServiceLaunchMissingFile(t *testing.T) {
	svc := newTestService(t, sleeperConfig(false))
	_, err := svc.Launch(context.Background(), &slidectlv1.LaunchRequest{Path: filepath.Join(t.TempDir(), "gone.md")})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Zero(t, svc.reg.Len())
}

func TestServiceRejectsRelativePath(t *testing.T) {
	svc := newTestService(t, sleeperConfig(false))
	_, err := svc.Stop(context.Background(), &slidectlv1.StopRequest{Path: "deck.md"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServiceCloseAndStopEverything(t *testing.T) {
	svc := newTestService(t, sleeperConfig(false))
	ctx := context.Background()
	a, b := writeDeck(t, "x"), writeDeck(t, "y")
	for _, p := range []string{a, a, b} {
		_, err := svc.Launch(ctx, &slidectlv1.LaunchRequest{Path: p})
		require.NoError(t, err)
	}

	closed, err := svc.Close(ctx, &slidectlv1.CloseRequest{Path: a})
	require.NoError(t, err)
	assert.True(t, closed.Tracked)
	assert.Equal(t, int32(2), closed.Stopped)

	closed, err = svc.Close(ctx, &slidectlv1.CloseRequest{Path: a})
	require.NoError(t, err)
	assert.False(t, closed.Tracked)

	all, err := svc.StopEverything(ctx, &slidectlv1.StopEverythingRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), all.Stopped)
	assert.Zero(t, svc.reg.Len())
}

func TestServiceOpenAutoLaunch(t *testing.T) {
	ctx := context.Background()
	deck := writeDeck(t, "---\npresenter: me\n---\n")
	plain := writeDeck(t, "# notes")

	off := newTestService(t, sleeperConfig(false))
	resp, err := off.Open(ctx, &slidectlv1.OpenRequest{Path: deck})
	require.NoError(t, err)
	assert.True(t, resp.Presentation)
	assert.False(t, resp.Launched)

	cfg := sleeperConfig(false)
	cfg.AutoLaunch = true
	on := newTestService(t, cfg)
	resp, err = on.Open(ctx, &slidectlv1.OpenRequest{Path: plain})
	require.NoError(t, err)
	assert.False(t, resp.Presentation)
	assert.False(t, resp.Launched)

	resp, err = on.Open(ctx, &slidectlv1.OpenRequest{Path: deck})
	require.NoError(t, err)
	assert.True(t, resp.Launched)
	require.NotNil(t, resp.Launch)
	assert.True(t, on.reg.Has(deck))
}

func TestServiceRemovedFileStopsViewers(t *testing.T) {
	svc := newTestService(t, sleeperConfig(true))
	deck := writeDeck(t, "x")
	_, err := svc.Launch(context.Background(), &slidectlv1.LaunchRequest{Path: deck})
	require.NoError(t, err)

	require.NoError(t, os.Remove(deck))
	assert.Eventually(t, func() bool { return svc.reg.Len() == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestStartDaemonSingleInstance(t *testing.T) {
	dir, err := os.MkdirTemp("", "sld")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	t.Setenv("SLIDECTL_SOCKET", "")
	t.Setenv("SLIDECTL_RUNTIME_DIR", dir)

	srv, err := StartDaemon(Options{Overrides: map[string]any{"watch": map[string]any{"enabled": false}}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, conn, err := Dial(ctx, 0)
	require.NoError(t, err)
	defer conn.Close()
	pong, err := client.Ping(ctx, &slidectlv1.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "pong", pong.GetOk())
	assert.Equal(t, srv.Instance(), pong.GetInstance())

	pid, err := RunningPID()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	_, err = StartDaemon(Options{})
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, srv.Close())
	_, err = os.Stat(SocketPath())
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, srv.Close())
}
