package nodeclient

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/meshworks/peerd/membership"
)

type mockConn struct {
	closed   uint32
	pingAck  string
	pingErr  error
	pingFrom []membership.PeerID
	mut      sync.Mutex
}

func (c *mockConn) Join(ctx context.Context, self membership.Peer) ([]membership.Peer, error) {
	return nil, nil
}

func (c *mockConn) Ping(ctx context.Context, from membership.PeerID) (string, error) {
	c.mut.Lock()
	c.pingFrom = append(c.pingFrom, from)
	c.mut.Unlock()

	return c.pingAck, c.pingErr
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

type mockDialer struct {
	mut    sync.Mutex
	dialed []string
	conns  map[string]Conn
	err    error
	delay  func()
}

func newMockDialer() *mockDialer {
	return &mockDialer{
		conns: make(map[string]Conn),
	}
}

func (d *mockDialer) DialContext(ctx context.Context, addr string) (Conn, error) {
	if d.delay != nil {
		d.delay()
	}

	d.mut.Lock()
	defer d.mut.Unlock()

	d.dialed = append(d.dialed, addr)

	if d.err != nil {
		return nil, d.err
	}

	if conn, ok := d.conns[addr]; ok {
		return conn, nil
	}

	conn := &mockConn{}
	d.conns[addr] = conn

	return conn, nil
}

func (d *mockDialer) dialCount() int {
	d.mut.Lock()
	defer d.mut.Unlock()

	return len(d.dialed)
}

type staticPeers map[membership.PeerID]membership.Peer

func (p staticPeers) Peer(id membership.PeerID) (membership.Peer, bool) {
	peer, ok := p[id]
	return peer, ok
}
