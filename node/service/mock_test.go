package service

import (
	"context"

	"github.com/meshworks/peerd/membership"
)

type mockCluster struct {
	self      membership.Peer
	peers     []membership.Peer
	added     []membership.Peer
	delivered int

	broadcastFrom    membership.PeerID
	broadcastMessage string
}

func (c *mockCluster) Self() membership.Peer {
	return c.self
}

func (c *mockCluster) Peers() []membership.Peer {
	return c.peers
}

func (c *mockCluster) AddPeer(p membership.Peer) {
	c.added = append(c.added, p)
	c.peers = append(c.peers, p)
}

func (c *mockCluster) Broadcast(ctx context.Context, from membership.PeerID, message string) int {
	c.broadcastFrom = from
	c.broadcastMessage = message

	return c.delivered
}
