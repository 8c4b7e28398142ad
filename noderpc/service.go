package noderpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "peerd.Node"

// NodeServer is the server-side contract of the peerd.Node service.
type NodeServer interface {
	Join(ctx context.Context, req *JoinRequest) (*JoinResponse, error)
	Ping(ctx context.Context, req *PingRequest) (*PingResponse, error)
	Broadcast(ctx context.Context, req *BroadcastRequest) (*BroadcastResponse, error)
}

// UnimplementedNodeServer can be embedded for forward-compatible servers.
type UnimplementedNodeServer struct{}

func (UnimplementedNodeServer) Join(context.Context, *JoinRequest) (*JoinResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Join not implemented")
}

func (UnimplementedNodeServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}

func (UnimplementedNodeServer) Broadcast(context.Context, *BroadcastRequest) (*BroadcastResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Broadcast not implemented")
}

// RegisterNodeServer registers the service implementation with a gRPC server.
func RegisterNodeServer(s grpc.ServiceRegistrar, srv NodeServer) {
	s.RegisterService(&nodeServiceDesc, srv)
}

func nodeJoinHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(JoinRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(NodeServer).Join(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Join",
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).Join(ctx, req.(*JoinRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func nodePingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(NodeServer).Ping(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Ping",
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).Ping(ctx, req.(*PingRequest))
	}

	return interceptor(ctx, in, info, handler)
}

func nodeBroadcastHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(BroadcastRequest)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(NodeServer).Broadcast(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/Broadcast",
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServer).Broadcast(ctx, req.(*BroadcastRequest))
	}

	return interceptor(ctx, in, info, handler)
}

var nodeServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*NodeServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Join",
			Handler:    nodeJoinHandler,
		},
		{
			MethodName: "Ping",
			Handler:    nodePingHandler,
		},
		{
			MethodName: "Broadcast",
			Handler:    nodeBroadcastHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "noderpc",
}
