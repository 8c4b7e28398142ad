package membership

import (
	"sync"

	"github.com/twmb/murmur3"

	"github.com/meshworks/peerd/internal/generic"
)

// Roster is a node's local view of cluster membership: a mapping of peer
// identities to addresses. It never contains the owning node itself. Entries
// are upserted by the join protocol and are not evicted; a peer that goes
// away leaves a stale entry until process restart.
type Roster struct {
	mut   sync.RWMutex
	peers map[PeerID]Peer
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{
		peers: make(map[PeerID]Peer),
	}
}

// Add upserts a peer. It returns true if the peer was not known before,
// false if an existing entry was updated. Keys are unique by id, so calling
// Add twice with the same id keeps a single entry with the latest address.
func (r *Roster) Add(p Peer) bool {
	r.mut.Lock()
	defer r.mut.Unlock()

	_, known := r.peers[p.ID]
	r.peers[p.ID] = p

	return !known
}

// Peer returns the peer with the given id, if known.
func (r *Roster) Peer(id PeerID) (Peer, bool) {
	r.mut.RLock()
	defer r.mut.RUnlock()

	p, ok := r.peers[id]

	return p, ok
}

// Has reports whether the given id is in the roster.
func (r *Roster) Has(id PeerID) bool {
	r.mut.RLock()
	defer r.mut.RUnlock()

	_, ok := r.peers[id]

	return ok
}

// Peers returns all known peers ordered by id. The ordering is not needed
// for correctness but keeps responses and checksums deterministic.
func (r *Roster) Peers() []Peer {
	r.mut.RLock()
	defer r.mut.RUnlock()

	ids := generic.MapKeys(r.peers)
	generic.SortSlice(ids, false)

	peers := make([]Peer, len(ids))
	for i, id := range ids {
		peers[i] = r.peers[id]
	}

	return peers
}

// Len returns the number of known peers.
func (r *Roster) Len() int {
	r.mut.RLock()
	defer r.mut.RUnlock()

	return len(r.peers)
}

// Checksum returns a fingerprint of the current roster contents, making
// membership changes visible in logs without dumping the whole roster.
func (r *Roster) Checksum() uint64 {
	peers := r.Peers()

	h := murmur3.New64()

	for _, p := range peers {
		_, _ = h.Write([]byte(p.ID))
		_, _ = h.Write([]byte{'='})
		_, _ = h.Write([]byte(p.Addr))
		_, _ = h.Write([]byte{'\n'})
	}

	return h.Sum64()
}
