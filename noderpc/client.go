package noderpc

import (
	"context"

	"google.golang.org/grpc"
)

// NodeClient is the client-side contract of the peerd.Node service.
type NodeClient interface {
	Join(ctx context.Context, in *JoinRequest, opts ...grpc.CallOption) (*JoinResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	Broadcast(ctx context.Context, in *BroadcastRequest, opts ...grpc.CallOption) (*BroadcastResponse, error)
}

type nodeClient struct {
	cc grpc.ClientConnInterface
}

// NewNodeClient creates a client on top of an established gRPC channel.
func NewNodeClient(cc grpc.ClientConnInterface) NodeClient {
	return &nodeClient{cc: cc}
}

func (c *nodeClient) Join(ctx context.Context, in *JoinRequest, opts ...grpc.CallOption) (*JoinResponse, error) {
	out := new(JoinResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Join", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *nodeClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Ping", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *nodeClient) Broadcast(ctx context.Context, in *BroadcastRequest, opts ...grpc.CallOption) (*BroadcastResponse, error) {
	out := new(BroadcastResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Broadcast", in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
