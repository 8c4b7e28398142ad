package membership

import "github.com/google/uuid"

// PeerID is an opaque token uniquely identifying a node for the lifetime of
// its process. A restarted node gets a fresh identity.
type PeerID string

// NewPeerID generates a fresh node identity.
func NewPeerID() PeerID {
	return PeerID(uuid.NewString())
}

// Peer is a single cluster member: an identity plus the host:port address
// its RPC server listens on.
type Peer struct {
	ID   PeerID
	Addr string
}
