package app

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"google.golang.org/grpc"

	slidectlv1 "slidectl/api/slidectl/v1"
)

type fakeConn struct {
	invoke func(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error
}

func (f *fakeConn) Invoke(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error {
	if f.invoke != nil {
		return f.invoke(ctx, method, args, reply, opts...)
	}
	return nil
}

func (f *fakeConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeConn) Close() error { return nil }

func stubDaemon(t *testing.T, running bool, dial func(context.Context) (slidectlv1.SlidesClient, io.Closer, error)) {
	t.Helper()
	resetDaemonDeps()
	daemonIsRunning = func() bool { return running }
	if dial == nil {
		dial = func(context.Context) (slidectlv1.SlidesClient, io.Closer, error) {
			return nil, nil, errors.New("dial not stubbed")
		}
	}
	dialDaemonClient = func(ctx context.Context, _ time.Duration) (slidectlv1.SlidesClient, io.Closer, error) {
		return dial(ctx)
	}
	t.Cleanup(resetDaemonDeps)
}

// stubRPC serves every invoke through handle and returns a client for it.
func stubRPC(t *testing.T, handle func(method string, args, reply interface{}) error) {
	t.Helper()
	stubDaemon(t, true, func(ctx context.Context) (slidectlv1.SlidesClient, io.Closer, error) {
		conn := &fakeConn{
			invoke: func(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error {
				return handle(method, args, reply)
			},
		}
		return slidectlv1.NewSlidesClient(conn), conn, nil
	})
}
