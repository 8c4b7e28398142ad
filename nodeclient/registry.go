package nodeclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/meshworks/peerd/internal/generic"
	"github.com/meshworks/peerd/internal/multierror"
	"github.com/meshworks/peerd/membership"
)

// PeerRegistry resolves peer ids to their addresses. Implemented by
// membership.Roster.
type PeerRegistry interface {
	Peer(id membership.PeerID) (membership.Peer, bool)
}

// ConnRegistry is the client pool: a mapping of peer ids to live outbound
// connections, kept in lockstep with the roster. A connection is created the
// first time a peer id is needed and is reused for all subsequent calls.
type ConnRegistry struct {
	mut         sync.RWMutex
	connections map[membership.PeerID]Conn
	inProgress  generic.SyncMap[membership.PeerID, chan struct{}]
	peers       PeerRegistry
	dialTimeout time.Duration
	dialer      Dialer
}

// NewConnRegistry creates an empty registry that resolves peer addresses
// through the given PeerRegistry and dials them with the given Dialer.
func NewConnRegistry(peers PeerRegistry, dialer Dialer, dialTimeout time.Duration) *ConnRegistry {
	return &ConnRegistry{
		connections: make(map[membership.PeerID]Conn),
		dialTimeout: dialTimeout,
		peers:       peers,
		dialer:      dialer,
	}
}

func (r *ConnRegistry) load(id membership.PeerID) (Conn, bool) {
	r.mut.RLock()

	conn, ok := r.connections[id]
	if !ok {
		r.mut.RUnlock()
		return nil, false
	}

	// The connection is present but was closed manually, so it is not usable.
	// Need to re-acquire the lock and remove it from the registry.
	if conn.IsClosed() {
		r.mut.RUnlock()
		r.mut.Lock()

		// A new connection might have been created while we were waiting for the lock.
		if conn, ok := r.connections[id]; ok && !conn.IsClosed() {
			r.mut.Unlock()
			return conn, true
		}

		// Still closed? Remove it from the registry.
		delete(r.connections, id)
		r.mut.Unlock()

		return nil, false
	}

	r.mut.RUnlock()

	return conn, ok
}

func (r *ConnRegistry) connect(id membership.PeerID) (Conn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.dialTimeout)
	defer cancel()

	var retry bool

	for {
		c := make(chan struct{})

		done, loaded := r.inProgress.LoadOrStore(id, c)

		// Store failed means another goroutine is already dialing the peer.
		// Wait for it to finish or for the context to expire.
		if loaded {
			close(c)

			select {
			case <-done:
				// noop
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			r.mut.RLock()

			// Try to get the connection created by the other goroutine.
			if conn, ok := r.connections[id]; ok {
				r.mut.RUnlock()
				return conn, nil
			}

			r.mut.RUnlock()

			// The other goroutine has failed to connect to the peer. Make one more attempt.
			if !retry {
				retry = true
				continue
			}

			// We have already retried with no luck.
			return nil, fmt.Errorf("failed to connect in another goroutine")
		}

		defer r.inProgress.Delete(id)
		defer close(done)

		// Now we are the one dialing the peer.
		peer, ok := r.peers.Peer(id)
		if !ok {
			return nil, fmt.Errorf("peer not found: %s", id)
		}

		conn, err := r.dialer.DialContext(ctx, peer.Addr)
		if err != nil {
			return nil, fmt.Errorf("failed to dial %s: %w", peer.Addr, err)
		}

		r.mut.Lock()
		defer r.mut.Unlock()

		// Check if the connection has been added manually while we were dialing.
		// If so, discard the connection we just created and use the existing one.
		if old, ok := r.connections[id]; ok && !old.IsClosed() {
			_ = conn.Close()
			return old, nil
		}

		r.connections[id] = conn

		return conn, nil
	}
}

// Get returns a connection to the peer with the given id. If the connection
// is not present, it dials the peer's roster address and caches the result.
func (r *ConnRegistry) Get(id membership.PeerID) (Conn, error) {
	if conn, ok := r.load(id); ok {
		return conn, nil
	}

	return r.connect(id)
}

// Ensure makes sure a connection handle exists for the given peer id. It is
// called on every roster insertion so the two collections stay in lockstep.
func (r *ConnRegistry) Ensure(id membership.PeerID) error {
	if _, ok := r.load(id); ok {
		return nil
	}

	_, err := r.connect(id)

	return err
}

// Has reports whether a usable connection handle exists for the peer.
func (r *ConnRegistry) Has(id membership.PeerID) bool {
	_, ok := r.load(id)
	return ok
}

// Put adds a connection to the registry. If a connection to the peer with
// the same id already exists, the old connection is closed.
func (r *ConnRegistry) Put(id membership.PeerID, conn Conn) {
	r.mut.Lock()
	defer r.mut.Unlock()

	if old, ok := r.connections[id]; ok {
		_ = old.Close()
	}

	r.connections[id] = conn
}

// Snapshot returns a point-in-time copy of the current connections. Fan-out
// iterates the snapshot so that peers joining mid-broadcast are simply not
// part of that round, and no lock is held across network calls.
func (r *ConnRegistry) Snapshot() map[membership.PeerID]Conn {
	r.mut.RLock()
	defer r.mut.RUnlock()

	conns := make(map[membership.PeerID]Conn, len(r.connections))
	generic.MapCopy(r.connections, conns)

	return conns
}

// Len returns the number of pooled connections.
func (r *ConnRegistry) Len() int {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return len(r.connections)
}

// CloseAll closes and removes every pooled connection. Called once at node
// shutdown.
func (r *ConnRegistry) CloseAll() error {
	r.mut.Lock()
	defer r.mut.Unlock()

	errs := multierror.New[membership.PeerID]()

	for id, conn := range r.connections {
		if err := conn.Close(); err != nil {
			errs.Add(id, err)
		}

		delete(r.connections, id)
	}

	return errs.Combined()
}
