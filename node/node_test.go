package node

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meshworks/peerd/membership"
	nodegrpc "github.com/meshworks/peerd/nodeclient/grpc"
)

func startNode(t *testing.T, seeds ...string) *Node {
	t.Helper()

	conf := DefaultConfig()
	conf.BindAddr = "127.0.0.1:0"
	conf.Seeds = seeds
	conf.Dialer = nodegrpc.NewDialer()
	conf.JoinTimeout = 2 * time.Second
	conf.PingTimeout = 2 * time.Second

	n := New(conf)
	require.NoError(t, n.Start())

	t.Cleanup(func() {
		if n.State() == StateRunning {
			require.NoError(t, n.Stop(context.Background()))
		}
	})

	return n
}

func TestTwoNodeBringUp(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := startNode(t)
	b := startNode(t)

	dialer := nodegrpc.NewDialer()

	// B introduces itself to A. A's roster was empty, so the response is
	// just A's own identity.
	connA, err := dialer.DialContext(ctx, a.Self().Addr)
	require.NoError(t, err)
	defer connA.Close()

	peers, err := connA.Join(ctx, b.Self())
	require.NoError(t, err)
	require.Equal(t, []membership.Peer{a.Self()}, peers)

	// The symmetric call: A introduces itself to B.
	connB, err := dialer.DialContext(ctx, b.Self().Addr)
	require.NoError(t, err)
	defer connB.Close()

	peers, err = connB.Join(ctx, a.Self())
	require.NoError(t, err)
	require.Equal(t, []membership.Peer{b.Self()}, peers)

	// Both rosters now contain the other node, with live pool handles.
	require.Equal(t, []membership.Peer{b.Self()}, a.Peers())
	require.Equal(t, []membership.Peer{a.Self()}, b.Peers())
	require.True(t, a.conns.Has(b.Self().ID))
	require.True(t, b.conns.Has(a.Self().ID))

	// A's broadcast reaches its single known peer.
	delivered, err := connA.Broadcast(ctx, a.Self().ID, "hello")
	require.NoError(t, err)
	require.Equal(t, 1, delivered)
}

func TestBootstrapJoinsSeeds(t *testing.T) {
	a := startNode(t)
	b := startNode(t, a.Self().Addr)

	// Bootstrap is asynchronous, so both sides converge eventually: B learns
	// A from the join response, A learns B from handling the join.
	require.Eventually(t, func() bool {
		return b.roster.Has(a.Self().ID) && a.roster.Has(b.Self().ID)
	}, 3*time.Second, 10*time.Millisecond)
}

func TestBootstrapFailureNonFatal(t *testing.T) {
	// Nothing listens on port 1, so the seed join can only fail.
	n := startNode(t, "127.0.0.1:1")

	require.Equal(t, StateRunning, n.State())
	require.Equal(t, 0, len(n.Peers()))

	require.NoError(t, n.Stop(context.Background()))
	require.Equal(t, StateStopped, n.State())
}

func TestBroadcast_UnreachablePeerNotCounted(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := startNode(t)
	b := startNode(t)

	dialer := nodegrpc.NewDialer()

	connA, err := dialer.DialContext(ctx, a.Self().Addr)
	require.NoError(t, err)
	defer connA.Close()

	_, err = connA.Join(ctx, b.Self())
	require.NoError(t, err)

	// A peer that was known once but is no longer reachable.
	a.AddPeer(membership.Peer{ID: "dead", Addr: "127.0.0.1:1"})
	require.Equal(t, 2, len(a.Peers()))

	delivered, err := connA.Broadcast(ctx, a.Self().ID, "hello")
	require.NoError(t, err)
	require.Equal(t, 1, delivered)
}

func TestJoinIdempotent(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := startNode(t)
	b := startNode(t)

	dialer := nodegrpc.NewDialer()

	connA, err := dialer.DialContext(ctx, a.Self().Addr)
	require.NoError(t, err)
	defer connA.Close()

	for i := 0; i < 2; i++ {
		_, err = connA.Join(ctx, b.Self())
		require.NoError(t, err)
	}

	require.Equal(t, []membership.Peer{b.Self()}, a.Peers())
}

func TestLifecycleStateErrors(t *testing.T) {
	conf := DefaultConfig()
	conf.BindAddr = "127.0.0.1:0"
	conf.Dialer = nodegrpc.NewDialer()

	n := New(conf)

	// Stop before start.
	require.Error(t, n.Stop(context.Background()))

	require.NoError(t, n.Start())
	require.Equal(t, StateRunning, n.State())

	// Double start.
	require.Error(t, n.Start())

	require.NoError(t, n.Stop(context.Background()))
	require.Equal(t, StateStopped, n.State())

	// Restarting a stopped node is not supported.
	require.Error(t, n.Start())
}

func TestStartFails_BindError(t *testing.T) {
	a := startNode(t)

	conf := DefaultConfig()
	conf.BindAddr = a.Self().Addr // already taken
	conf.Dialer = nodegrpc.NewDialer()

	n := New(conf)

	err := n.Start()
	require.Error(t, err)
	require.NotEqual(t, StateRunning, n.State())
}
