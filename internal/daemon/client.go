package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	slidectlv1 "slidectl/api/slidectl/v1"
)

// Dial opens a gRPC connection to the daemon over the UNIX socket. When
// callTimeout is positive every Slides call made through the returned client
// is bounded by it, on top of any deadline ctx already carries.
func Dial(ctx context.Context, callTimeout time.Duration) (slidectlv1.SlidesClient, *grpc.ClientConn, error) {
	target := socketTarget()
	conn, err := grpc.NewClient(
		target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(unixDialer),
		grpc.WithChainUnaryInterceptor(
			boundCall(callTimeout),
			logCall(log.With().Str("component", "client").Logger()),
		),
	)
	if err != nil {
		return nil, nil, err
	}
	conn.Connect()
	if err := waitForReady(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("daemon at %s: %w", SocketPath(), err)
	}
	return slidectlv1.NewSlidesClient(conn), conn, nil
}

// boundCall applies the per-call timeout. The earlier of it and the caller's
// own deadline wins.
func boundCall(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func logCall(logger zerolog.Logger) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		logger.Debug().
			Str("rpc", path.Base(method)).
			Str("code", status.Code(err).String()).
			Dur("took", time.Since(start)).
			Msg("daemon call")
		return err
	}
}

func socketTarget() string {
	p := SocketPath()
	if trimmed, ok := strings.CutPrefix(p, "/"); ok {
		return "unix:///" + trimmed
	}
	return "unix://" + p
}

func unixDialer(ctx context.Context, addr string) (net.Conn, error) {
	if trimmed, ok := strings.CutPrefix(addr, "unix://"); ok {
		addr = trimmed
	}
	if addr == "" {
		addr = SocketPath()
	}
	var d net.Dialer
	return d.DialContext(ctx, "unix", addr)
}

func waitForReady(ctx context.Context, conn *grpc.ClientConn) error {
	for {
		switch state := conn.GetState(); state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("grpc connection is shut down")
		default:
			if !conn.WaitForStateChange(ctx, state) {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("grpc connection stuck in state %s", state.String())
			}
		}
	}
}
