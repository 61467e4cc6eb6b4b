// Package onboardingv1 は onboarding.v1 の gRPC サービス定義です。
// メッセージには protobuf の well-known type を用い、既定の proto コーデックで送受信します。
package onboardingv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	WorkerServiceName = "onboarding.v1.WorkerService"

	WorkerService_SaveWorker_FullMethodName   = "/onboarding.v1.WorkerService/SaveWorker"
	WorkerService_DeleteWorker_FullMethodName = "/onboarding.v1.WorkerService/DeleteWorker"
	WorkerService_GetWorker_FullMethodName    = "/onboarding.v1.WorkerService/GetWorker"
	WorkerService_ListWorkers_FullMethodName  = "/onboarding.v1.WorkerService/ListWorkers"
	WorkerService_GetStats_FullMethodName     = "/onboarding.v1.WorkerService/GetStats"
	WorkerService_WatchWorkers_FullMethodName = "/onboarding.v1.WorkerService/WatchWorkers"
)

// WorkerServiceServer は WorkerService のサーバー側インターフェースです。
type WorkerServiceServer interface {
	SaveWorker(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteWorker(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	GetWorker(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListWorkers(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetStats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	WatchWorkers(*emptypb.Empty, WorkerService_WatchWorkersServer) error
}

// UnimplementedWorkerServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedWorkerServiceServer struct{}

func (UnimplementedWorkerServiceServer) SaveWorker(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveWorker not implemented")
}
func (UnimplementedWorkerServiceServer) DeleteWorker(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteWorker not implemented")
}
func (UnimplementedWorkerServiceServer) GetWorker(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetWorker not implemented")
}
func (UnimplementedWorkerServiceServer) ListWorkers(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListWorkers not implemented")
}
func (UnimplementedWorkerServiceServer) GetStats(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStats not implemented")
}
func (UnimplementedWorkerServiceServer) WatchWorkers(*emptypb.Empty, WorkerService_WatchWorkersServer) error {
	return status.Error(codes.Unimplemented, "method WatchWorkers not implemented")
}

// WorkerService_WatchWorkersServer はスナップショットを送信するストリームです。
type WorkerService_WatchWorkersServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type workerServiceWatchWorkersServer struct {
	grpc.ServerStream
}

func (x *workerServiceWatchWorkersServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterWorkerServiceServer は WorkerService をサーバーへ登録します。
func RegisterWorkerServiceServer(s grpc.ServiceRegistrar, srv WorkerServiceServer) {
	s.RegisterService(&WorkerService_ServiceDesc, srv)
}

func _WorkerService_SaveWorker_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WorkerServiceServer).SaveWorker(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: WorkerService_SaveWorker_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WorkerServiceServer).SaveWorker(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _WorkerService_DeleteWorker_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WorkerServiceServer).DeleteWorker(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: WorkerService_DeleteWorker_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WorkerServiceServer).DeleteWorker(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _WorkerService_GetWorker_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WorkerServiceServer).GetWorker(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: WorkerService_GetWorker_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WorkerServiceServer).GetWorker(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _WorkerService_ListWorkers_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WorkerServiceServer).ListWorkers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: WorkerService_ListWorkers_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WorkerServiceServer).ListWorkers(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _WorkerService_GetStats_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WorkerServiceServer).GetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: WorkerService_GetStats_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WorkerServiceServer).GetStats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _WorkerService_WatchWorkers_Handler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(WorkerServiceServer).WatchWorkers(m, &workerServiceWatchWorkersServer{stream})
}

// WorkerService_ServiceDesc は WorkerService のサービス記述子です。
var WorkerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: WorkerServiceName,
	HandlerType: (*WorkerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SaveWorker", Handler: _WorkerService_SaveWorker_Handler},
		{MethodName: "DeleteWorker", Handler: _WorkerService_DeleteWorker_Handler},
		{MethodName: "GetWorker", Handler: _WorkerService_GetWorker_Handler},
		{MethodName: "ListWorkers", Handler: _WorkerService_ListWorkers_Handler},
		{MethodName: "GetStats", Handler: _WorkerService_GetStats_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchWorkers", Handler: _WorkerService_WatchWorkers_Handler, ServerStreams: true},
	},
	Metadata: "onboarding/v1/worker.proto",
}

// WorkerServiceClient は WorkerService のクライアントです。
type WorkerServiceClient interface {
	SaveWorker(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteWorker(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetWorker(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListWorkers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	WatchWorkers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (WorkerService_WatchWorkersClient, error)
}

type workerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewWorkerServiceClient は WorkerServiceClient を生成します。
func NewWorkerServiceClient(cc grpc.ClientConnInterface) WorkerServiceClient {
	return &workerServiceClient{cc: cc}
}

func (c *workerServiceClient) SaveWorker(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, WorkerService_SaveWorker_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workerServiceClient) DeleteWorker(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, WorkerService_DeleteWorker_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workerServiceClient) GetWorker(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, WorkerService_GetWorker_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workerServiceClient) ListWorkers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, WorkerService_ListWorkers_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workerServiceClient) GetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, WorkerService_GetStats_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workerServiceClient) WatchWorkers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (WorkerService_WatchWorkersClient, error) {
	stream, err := c.cc.NewStream(ctx, &WorkerService_ServiceDesc.Streams[0], WorkerService_WatchWorkers_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &workerServiceWatchWorkersClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// WorkerService_WatchWorkersClient はスナップショットを受信するストリームです。
type WorkerService_WatchWorkersClient interface {
	Recv() (*structpb.Struct, error)
	grpc.ClientStream
}

type workerServiceWatchWorkersClient struct {
	grpc.ClientStream
}

func (x *workerServiceWatchWorkersClient) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
