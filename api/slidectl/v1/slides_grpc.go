package slidectlv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "slidectl.v1.Slides"

const (
	Slides_Ping_FullMethodName           = "/slidectl.v1.Slides/Ping"
	Slides_Launch_FullMethodName         = "/slidectl.v1.Slides/Launch"
	Slides_Stop_FullMethodName           = "/slidectl.v1.Slides/Stop"
	Slides_StopEverything_FullMethodName = "/slidectl.v1.Slides/StopEverything"
	Slides_List_FullMethodName           = "/slidectl.v1.Slides/List"
	Slides_Close_FullMethodName          = "/slidectl.v1.Slides/Close"
	Slides_Open_FullMethodName           = "/slidectl.v1.Slides/Open"
)

// SlidesClient is the client API for the Slides service.
type SlidesClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Launch(ctx context.Context, in *LaunchRequest, opts ...grpc.CallOption) (*LaunchResponse, error)
	Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*StopResponse, error)
	StopEverything(ctx context.Context, in *StopEverythingRequest, opts ...grpc.CallOption) (*StopEverythingResponse, error)
	List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error)
	Close(ctx context.Context, in *CloseRequest, opts ...grpc.CallOption) (*CloseResponse, error)
	Open(ctx context.Context, in *OpenRequest, opts ...grpc.CallOption) (*OpenResponse, error)
}

type slidesClient struct {
	cc grpc.ClientConnInterface
}

func NewSlidesClient(cc grpc.ClientConnInterface) SlidesClient {
	return &slidesClient{cc}
}

func (c *slidesClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *slidesClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, Slides_Ping_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slidesClient) Launch(ctx context.Context, in *LaunchRequest, opts ...grpc.CallOption) (*LaunchResponse, error) {
	out := new(LaunchResponse)
	if err := c.invoke(ctx, Slides_Launch_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slidesClient) Stop(ctx context.Context, in *StopRequest, opts ...grpc.CallOption) (*StopResponse, error) {
	out := new(StopResponse)
	if err := c.invoke(ctx, Slides_Stop_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slidesClient) StopEverything(ctx context.Context, in *StopEverythingRequest, opts ...grpc.CallOption) (*StopEverythingResponse, error) {
	out := new(StopEverythingResponse)
	if err := c.invoke(ctx, Slides_StopEverything_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slidesClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	out := new(ListResponse)
	if err := c.invoke(ctx, Slides_List_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slidesClient) Close(ctx context.Context, in *CloseRequest, opts ...grpc.CallOption) (*CloseResponse, error) {
	out := new(CloseResponse)
	if err := c.invoke(ctx, Slides_Close_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slidesClient) Open(ctx context.Context, in *OpenRequest, opts ...grpc.CallOption) (*OpenResponse, error) {
	out := new(OpenResponse)
	if err := c.invoke(ctx, Slides_Open_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// SlidesServer is the server API for the Slides service. Implementations
// must embed UnimplementedSlidesServer.
type SlidesServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Launch(context.Context, *LaunchRequest) (*LaunchResponse, error)
	Stop(context.Context, *StopRequest) (*StopResponse, error)
	StopEverything(context.Context, *StopEverythingRequest) (*StopEverythingResponse, error)
	List(context.Context, *ListRequest) (*ListResponse, error)
	Close(context.Context, *CloseRequest) (*CloseResponse, error)
	Open(context.Context, *OpenRequest) (*OpenResponse, error)
	mustEmbedUnimplementedSlidesServer()
}

type UnimplementedSlidesServer struct{}

func (UnimplementedSlidesServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedSlidesServer) Launch(context.Context, *LaunchRequest) (*LaunchResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Launch not implemented")
}
func (UnimplementedSlidesServer) Stop(context.Context, *StopRequest) (*StopResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Stop not implemented")
}
func (UnimplementedSlidesServer) StopEverything(context.Context, *StopEverythingRequest) (*StopEverythingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StopEverything not implemented")
}
func (UnimplementedSlidesServer) List(context.Context, *ListRequest) (*ListResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}
func (UnimplementedSlidesServer) Close(context.Context, *CloseRequest) (*CloseResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Close not implemented")
}
func (UnimplementedSlidesServer) Open(context.Context, *OpenRequest) (*OpenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Open not implemented")
}
func (UnimplementedSlidesServer) mustEmbedUnimplementedSlidesServer() {}

func RegisterSlidesServer(s grpc.ServiceRegistrar, srv SlidesServer) {
	s.RegisterService(&Slides_ServiceDesc, srv)
}

// unary builds a method handler for a request type In.
func unary[In any, Out any](name string, call func(SlidesServer, context.Context, *In) (*Out, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(In)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SlidesServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: name}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SlidesServer), ctx, req.(*In))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var Slides_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SlidesServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unary(Slides_Ping_FullMethodName, SlidesServer.Ping)},
		{MethodName: "Launch", Handler: unary(Slides_Launch_FullMethodName, SlidesServer.Launch)},
		{MethodName: "Stop", Handler: unary(Slides_Stop_FullMethodName, SlidesServer.Stop)},
		{MethodName: "StopEverything", Handler: unary(Slides_StopEverything_FullMethodName, SlidesServer.StopEverything)},
		{MethodName: "List", Handler: unary(Slides_List_FullMethodName, SlidesServer.List)},
		{MethodName: "Close", Handler: unary(Slides_Close_FullMethodName, SlidesServer.Close)},
		{MethodName: "Open", Handler: unary(Slides_Open_FullMethodName, SlidesServer.Open)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "slidectl/v1/slides",
}
