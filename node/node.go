// Package node ties the membership roster, the client pool and the RPC
// service together into a single runnable cluster node.
package node

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"

	"github.com/meshworks/peerd/membership"
	"github.com/meshworks/peerd/node/service"
	"github.com/meshworks/peerd/nodeclient"
	"github.com/meshworks/peerd/noderpc"
)

// Node is a single cluster member process: an identity, a roster of known
// peers, a pool of outbound connections kept in lockstep with the roster,
// and an inbound RPC listener.
type Node struct {
	mut    sync.Mutex
	state  State
	self   membership.Peer
	roster *membership.Roster
	conns  *nodeclient.ConnRegistry

	dialer      nodeclient.Dialer
	logger      kitlog.Logger
	bindAddr    string
	seeds       []string
	joinTimeout time.Duration
	pingTimeout time.Duration

	server          *grpc.Server
	cancelBootstrap context.CancelFunc
	wg              sync.WaitGroup
}

// New creates a node with a freshly generated identity. The node does not
// bind anything until Start is called.
func New(conf Config) *Node {
	roster := membership.NewRoster()

	return &Node{
		state: StateCreated,
		self: membership.Peer{
			ID:   membership.NewPeerID(),
			Addr: conf.PublicAddr,
		},
		roster:      roster,
		conns:       nodeclient.NewConnRegistry(roster, conf.Dialer, conf.DialTimeout),
		dialer:      conf.Dialer,
		logger:      conf.Logger,
		seeds:       conf.Seeds,
		joinTimeout: conf.JoinTimeout,
		pingTimeout: conf.PingTimeout,
		bindAddr:    conf.BindAddr,
	}
}

// Start binds the RPC listener, registers the service, and fires one
// best-effort join per configured seed. A listener bind failure is fatal and
// leaves the node in its created state; seed failures are logged and
// ignored, so a node with zero reachable seeds still starts with an empty
// roster.
func (n *Node) Start() error {
	n.mut.Lock()

	if n.state != StateCreated {
		state := n.state
		n.mut.Unlock()

		return fmt.Errorf("node is %s, expected %s", state, StateCreated)
	}

	n.state = StateStarting
	n.mut.Unlock()

	listener, err := net.Listen("tcp", n.bindAddr)
	if err != nil {
		n.mut.Lock()
		n.state = StateCreated
		n.mut.Unlock()

		return fmt.Errorf("bind %s: %w", n.bindAddr, err)
	}

	server := grpc.NewServer()
	noderpc.RegisterNodeServer(server, service.New(n, n.logger))

	bootstrapCtx, cancel := context.WithCancel(context.Background())

	n.mut.Lock()
	n.server = server
	n.cancelBootstrap = cancel

	// A ":0" bind address resolves to a real port only now.
	if n.self.Addr == "" {
		n.self.Addr = listener.Addr().String()
	}

	n.state = StateRunning
	n.mut.Unlock()

	n.wg.Add(1)

	go func() {
		defer n.wg.Done()

		if err := server.Serve(listener); err != nil {
			level.Error(n.logger).Log("msg", "rpc server stopped", "err", err)
		}
	}()

	level.Info(n.logger).Log("msg", "node is running", "id", n.self.ID, "addr", n.Self().Addr)

	for _, seed := range n.seeds {
		n.wg.Add(1)

		go func(addr string) {
			defer n.wg.Done()
			n.bootstrapJoin(bootstrapCtx, addr)
		}(seed)
	}

	return nil
}

func (n *Node) bootstrapJoin(ctx context.Context, addr string) {
	ctx, cancel := context.WithTimeout(ctx, n.joinTimeout)
	defer cancel()

	if err := n.Join(ctx, addr); err != nil {
		level.Warn(n.logger).Log("msg", "seed join failed", "addr", addr, "err", err)
		return
	}

	level.Info(n.logger).Log(
		"msg", "joined seed",
		"addr", addr,
		"roster_size", n.roster.Len(),
		"checksum", fmt.Sprintf("%016x", n.roster.Checksum()),
	)
}

// Join dials the node at the given address, introduces itself, and merges
// the returned roster into the local one. Every newly learned peer gets a
// pooled connection handle.
func (n *Node) Join(ctx context.Context, addr string) error {
	conn, err := n.dialer.DialContext(ctx, addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	defer func() {
		_ = conn.Close()
	}()

	peers, err := conn.Join(ctx, n.Self())
	if err != nil {
		return fmt.Errorf("join %s: %w", addr, err)
	}

	for _, p := range peers {
		n.AddPeer(p)
	}

	return nil
}

// AddPeer upserts the peer into the roster and makes sure the client pool
// holds a handle for it, keeping the two collections in lockstep. The
// node's own identity is never added.
func (n *Node) AddPeer(p membership.Peer) {
	if p.ID == "" || p.ID == n.self.ID {
		return
	}

	if n.roster.Add(p) {
		level.Info(n.logger).Log(
			"msg", "peer joined",
			"peer", p.ID,
			"addr", p.Addr,
			"checksum", fmt.Sprintf("%016x", n.roster.Checksum()),
		)
	}

	if err := n.conns.Ensure(p.ID); err != nil {
		level.Warn(n.logger).Log("msg", "failed to open peer connection", "peer", p.ID, "err", err)
	}
}

// Broadcast fans a liveness ping out to every pooled connection except the
// one keyed by from, all in parallel, and returns the number of peers that
// acknowledged within the ping timeout. The message text is only observed
// here at the coordinator; the fan-out itself does not carry it.
func (n *Node) Broadcast(ctx context.Context, from membership.PeerID, message string) int {
	level.Info(n.logger).Log("msg", "broadcasting", "from", from, "message", message)

	conns := n.conns.Snapshot()
	delete(conns, from)

	if len(conns) == 0 {
		return 0
	}

	wg := sync.WaitGroup{}
	acks := make(chan membership.PeerID, len(conns))

	for id, conn := range conns {
		wg.Add(1)

		go func(id membership.PeerID, conn nodeclient.Conn) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, n.pingTimeout)
			defer cancel()

			ack, err := conn.Ping(callCtx, n.self.ID)
			if err != nil {
				level.Warn(n.logger).Log("msg", "peer did not acknowledge", "peer", id, "err", err)
				return
			}

			level.Debug(n.logger).Log("msg", "peer acknowledged", "peer", id, "ack", ack)
			acks <- id
		}(id, conn)
	}

	wg.Wait()
	close(acks)

	delivered := 0
	for range acks {
		delivered++
	}

	return delivered
}

// Stop gracefully shuts the node down: it stops accepting new calls, lets
// in-flight calls finish, then closes every pooled connection. If the
// context expires before the drain completes, the server is stopped hard.
func (n *Node) Stop(ctx context.Context) error {
	n.mut.Lock()

	if n.state != StateRunning {
		state := n.state
		n.mut.Unlock()

		return fmt.Errorf("node is %s, expected %s", state, StateRunning)
	}

	n.state = StateStopping
	server := n.server
	cancel := n.cancelBootstrap
	n.mut.Unlock()

	cancel()

	level.Info(n.logger).Log("msg", "shutting down", "id", n.self.ID)

	drained := make(chan struct{})

	go func() {
		server.GracefulStop()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		server.Stop()
		<-drained
	}

	if err := n.conns.CloseAll(); err != nil {
		level.Warn(n.logger).Log("msg", "failed to close peer connections", "err", err)
	}

	n.wg.Wait()

	n.mut.Lock()
	n.state = StateStopped
	n.mut.Unlock()

	return nil
}

// Self returns the node's own identity.
func (n *Node) Self() membership.Peer {
	n.mut.Lock()
	defer n.mut.Unlock()

	return n.self
}

// Peers returns the current roster, ordered by peer id.
func (n *Node) Peers() []membership.Peer {
	return n.roster.Peers()
}

// Checksum returns the roster convergence fingerprint.
func (n *Node) Checksum() uint64 {
	return n.roster.Checksum()
}

// State returns the node's lifecycle state.
func (n *Node) State() State {
	n.mut.Lock()
	defer n.mut.Unlock()

	return n.state
}
