package membership

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoster_AddIdempotent(t *testing.T) {
	r := NewRoster()

	added := r.Add(Peer{ID: "b", Addr: "127.0.0.1:50052"})
	require.True(t, added)

	added = r.Add(Peer{ID: "b", Addr: "127.0.0.1:50053"})
	require.False(t, added)

	require.Equal(t, 1, r.Len())

	p, ok := r.Peer("b")
	require.True(t, ok)
	require.Equal(t, "127.0.0.1:50053", p.Addr, "latest address wins")
}

func TestRoster_PeersOrdered(t *testing.T) {
	r := NewRoster()
	r.Add(Peer{ID: "c", Addr: "host3:3000"})
	r.Add(Peer{ID: "a", Addr: "host1:3000"})
	r.Add(Peer{ID: "b", Addr: "host2:3000"})

	peers := r.Peers()

	require.Equal(t, []Peer{
		{ID: "a", Addr: "host1:3000"},
		{ID: "b", Addr: "host2:3000"},
		{ID: "c", Addr: "host3:3000"},
	}, peers)
}

func TestRoster_Checksum(t *testing.T) {
	r1 := NewRoster()
	r2 := NewRoster()

	require.Equal(t, r1.Checksum(), r2.Checksum())

	// Insertion order must not matter.
	r1.Add(Peer{ID: "a", Addr: "host1:3000"})
	r1.Add(Peer{ID: "b", Addr: "host2:3000"})
	r2.Add(Peer{ID: "b", Addr: "host2:3000"})
	r2.Add(Peer{ID: "a", Addr: "host1:3000"})

	require.Equal(t, r1.Checksum(), r2.Checksum())

	r2.Add(Peer{ID: "c", Addr: "host3:3000"})
	require.NotEqual(t, r1.Checksum(), r2.Checksum())
}

func TestRoster_ConcurrentAdd(t *testing.T) {
	r := NewRoster()

	concurrency := 16
	perWorker := 100

	wg := sync.WaitGroup{}
	wg.Add(concurrency)

	for w := 0; w < concurrency; w++ {
		go func(w int) {
			defer wg.Done()

			for i := 0; i < perWorker; i++ {
				id := PeerID(fmt.Sprintf("peer-%d-%d", w, i))
				r.Add(Peer{ID: id, Addr: "127.0.0.1:3000"})
			}
		}(w)
	}

	wg.Wait()

	require.Equal(t, concurrency*perWorker, r.Len())
}
