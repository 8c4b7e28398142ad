package nodeclient

import (
	"context"

	"github.com/meshworks/peerd/membership"
)

// Conn is a client to a single cluster node.
type Conn interface {
	// Join introduces self to the remote node and returns the roster the
	// remote responded with, including the remote's own identity.
	Join(ctx context.Context, self membership.Peer) ([]membership.Peer, error)

	// Ping round-trips a liveness probe and returns the responder's ack line.
	Ping(ctx context.Context, from membership.PeerID) (string, error)

	// Broadcast asks the remote node to fan a message out to its own peers
	// and returns the number of acknowledgements it collected.
	Broadcast(ctx context.Context, from membership.PeerID, message string) (int, error)

	// IsClosed reports whether the connection has been closed and cannot be
	// used anymore.
	IsClosed() bool

	// Close tears down the underlying channel. Safe to call more than once.
	Close() error
}

// Dialer establishes connections to cluster nodes.
type Dialer interface {
	DialContext(ctx context.Context, addr string) (Conn, error)
}
