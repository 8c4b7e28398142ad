package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/meshworks/peerd/nodeclient"
	"github.com/meshworks/peerd/noderpc"
)

// Dialer creates gRPC connections to cluster nodes.
type Dialer struct{}

// NewDialer creates a new Dialer.
func NewDialer() *Dialer {
	return &Dialer{}
}

// DialContext opens a connection to the given address. The dial is
// non-blocking: the returned handle is usable immediately and connects on
// first call, so an unreachable peer fails at call time rather than here.
func (d *Dialer) DialContext(ctx context.Context, addr string) (nodeclient.Conn, error) {
	creds := insecure.NewCredentials()

	cc, err := grpc.DialContext(
		ctx,
		addr,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(noderpc.CodecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}

	c := &Client{
		client: noderpc.NewNodeClient(cc),
	}

	c.addOnCloseHook(cc.Close)

	return c, nil
}
