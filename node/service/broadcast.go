package service

import (
	"context"

	"github.com/meshworks/peerd/membership"
	"github.com/meshworks/peerd/noderpc"
)

// Broadcast makes the local node fan a ping out to every pooled peer except
// the entry keyed by the caller's id, so a node is never asked to
// re-acknowledge its own broadcast. Peers that fail or time out are simply
// not counted; the call itself never fails because of them.
func (s *NodeService) Broadcast(ctx context.Context, req *noderpc.BroadcastRequest) (*noderpc.BroadcastResponse, error) {
	delivered := s.cluster.Broadcast(ctx, membership.PeerID(req.From), req.Message)

	return &noderpc.BroadcastResponse{
		Delivered: delivered,
	}, nil
}
