package grpc

import (
	"context"
	"sync/atomic"

	"github.com/meshworks/peerd/internal/multierror"
	"github.com/meshworks/peerd/membership"
	"github.com/meshworks/peerd/nodeclient"
	"github.com/meshworks/peerd/noderpc"
)

var _ nodeclient.Conn = (*Client)(nil)

// Client is a gRPC-backed connection to a single cluster node.
type Client struct {
	client  noderpc.NodeClient
	onClose []func() error
	closed  uint32
}

func (c *Client) addOnCloseHook(f func() error) {
	c.onClose = append(c.onClose, f)
}

// Close tears down the underlying channel. Calling Close twice is a no-op.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closed, 0, 1) {
		return nil // already closed
	}

	errs := multierror.New[int]()

	for idx, f := range c.onClose {
		if err := f(); err != nil {
			errs.Add(idx, err)
		}
	}

	return errs.Combined()
}

// IsClosed reports whether the connection has been closed.
func (c *Client) IsClosed() bool {
	return atomic.LoadUint32(&c.closed) == 1
}

// Join introduces self to the remote node and returns the remote's roster.
func (c *Client) Join(ctx context.Context, self membership.Peer) ([]membership.Peer, error) {
	resp, err := c.client.Join(ctx, &noderpc.JoinRequest{
		Me: noderpc.PeerInfo{
			ID:      string(self.ID),
			Address: self.Addr,
		},
	})
	if err != nil {
		return nil, err
	}

	peers := make([]membership.Peer, len(resp.Peers))
	for i, p := range resp.Peers {
		peers[i] = membership.Peer{
			ID:   membership.PeerID(p.ID),
			Addr: p.Address,
		}
	}

	return peers, nil
}

// Ping round-trips a liveness probe.
func (c *Client) Ping(ctx context.Context, from membership.PeerID) (string, error) {
	resp, err := c.client.Ping(ctx, &noderpc.PingRequest{
		From: string(from),
	})
	if err != nil {
		return "", err
	}

	return resp.Ack, nil
}

// Broadcast asks the remote node to fan a message out to its peers.
func (c *Client) Broadcast(ctx context.Context, from membership.PeerID, message string) (int, error) {
	resp, err := c.client.Broadcast(ctx, &noderpc.BroadcastRequest{
		From:    string(from),
		Message: message,
	})
	if err != nil {
		return 0, err
	}

	return resp.Delivered, nil
}
