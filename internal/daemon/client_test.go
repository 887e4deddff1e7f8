package daemon

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	slidectlv1 "slidectl/api/slidectl/v1"
)

func TestBoundCallAppliesTimeout(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	invoker := func(ctx context.Context, _ string, _, _ any, _ *grpc.ClientConn, _ ...grpc.CallOption) error {
		deadline, hasDeadline = ctx.Deadline()
		return nil
	}

	require.NoError(t, boundCall(2*time.Second)(context.Background(), slidectlv1.Slides_Launch_FullMethodName, nil, nil, nil, invoker))
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, 500*time.Millisecond)

	require.NoError(t, boundCall(0)(context.Background(), slidectlv1.Slides_Launch_FullMethodName, nil, nil, nil, invoker))
	assert.False(t, hasDeadline)
}

func TestBoundCallKeepsEarlierDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	want, _ := ctx.Deadline()

	var got time.Time
	invoker := func(ctx context.Context, _ string, _, _ any, _ *grpc.ClientConn, _ ...grpc.CallOption) error {
		got, _ = ctx.Deadline()
		return nil
	}
	require.NoError(t, boundCall(time.Minute)(ctx, slidectlv1.Slides_Stop_FullMethodName, nil, nil, nil, invoker))
	assert.Equal(t, want, got)
}

func TestLogCallRecordsMethodAndCode(t *testing.T) {
	var buf bytes.Buffer
	interceptor := logCall(zerolog.New(&buf))
	invoker := func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error {
		return status.Error(codes.NotFound, "no running presentation")
	}

	err := interceptor(context.Background(), slidectlv1.Slides_Stop_FullMethodName, nil, nil, nil, invoker)
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Contains(t, buf.String(), `"rpc":"Stop"`)
	assert.Contains(t, buf.String(), `"code":"NotFound"`)
}
