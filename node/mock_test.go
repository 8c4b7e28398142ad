package node

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/meshworks/peerd/membership"
	"github.com/meshworks/peerd/nodeclient"
)

type mockConn struct {
	mut      sync.Mutex
	closed   uint32
	pingErr  error
	pingHang time.Duration
	pingFrom []membership.PeerID
}

func (c *mockConn) Join(ctx context.Context, self membership.Peer) ([]membership.Peer, error) {
	return nil, nil
}

func (c *mockConn) Ping(ctx context.Context, from membership.PeerID) (string, error) {
	if c.pingHang > 0 {
		select {
		case <-time.After(c.pingHang):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	c.mut.Lock()
	c.pingFrom = append(c.pingFrom, from)
	c.mut.Unlock()

	if c.pingErr != nil {
		return "", c.pingErr
	}

	return "pong", nil
}

func (c *mockConn) Broadcast(ctx context.Context, from membership.PeerID, message string) (int, error) {
	return 0, nil
}

func (c *mockConn) IsClosed() bool {
	return atomic.LoadUint32(&c.closed) == 1
}

func (c *mockConn) Close() error {
	atomic.StoreUint32(&c.closed, 1)
	return nil
}

type mockDialer struct{}

func (d *mockDialer) DialContext(ctx context.Context, addr string) (nodeclient.Conn, error) {
	return &mockConn{}, nil
}
