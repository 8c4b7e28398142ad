// Package service implements the inbound handlers of the peerd.Node RPC
// service on top of a narrow cluster interface.
package service

import (
	"context"

	kitlog "github.com/go-kit/log"

	"github.com/meshworks/peerd/membership"
	"github.com/meshworks/peerd/noderpc"
)

// Cluster is the part of the node the RPC handlers need.
type Cluster interface {
	// Self returns the local node's identity.
	Self() membership.Peer

	// Peers returns the current roster.
	Peers() []membership.Peer

	// AddPeer upserts a peer into the roster and the client pool.
	AddPeer(p membership.Peer)

	// Broadcast fans a ping out to every pooled peer except the one keyed by
	// from and returns the number of acknowledgements.
	Broadcast(ctx context.Context, from membership.PeerID, message string) int
}

// NodeService handles the Join, Ping and Broadcast operations.
type NodeService struct {
	noderpc.UnimplementedNodeServer
	cluster Cluster
	logger  kitlog.Logger
}

// New creates a NodeService on top of the given cluster.
func New(cluster Cluster, logger kitlog.Logger) *NodeService {
	return &NodeService{
		cluster: cluster,
		logger:  logger,
	}
}
