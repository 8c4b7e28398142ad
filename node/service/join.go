package service

import (
	"context"

	"github.com/go-kit/log/level"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/meshworks/peerd/noderpc"
)

func validateJoinRequest(req *noderpc.JoinRequest) error {
	if req == nil {
		return status.Newf(codes.InvalidArgument, "request is nil").Err()
	}

	if req.Me.ID == "" {
		return status.Newf(codes.InvalidArgument, "peer id is empty").Err()
	}

	if req.Me.Address == "" {
		return status.Newf(codes.InvalidArgument, "peer address is empty").Err()
	}

	return nil
}

// Join inserts the caller into the local roster and client pool and responds
// with the rest of the roster plus the local node's own identity. The caller
// is left out of the response since it already knows itself.
func (s *NodeService) Join(ctx context.Context, req *noderpc.JoinRequest) (*noderpc.JoinResponse, error) {
	if err := validateJoinRequest(req); err != nil {
		return nil, err
	}

	caller := fromPeerInfo(req.Me)

	level.Debug(s.logger).Log("msg", "join request", "peer", caller.ID, "addr", caller.Addr)

	s.cluster.AddPeer(caller)

	var peers []noderpc.PeerInfo

	for _, p := range s.cluster.Peers() {
		if p.ID == caller.ID {
			continue
		}

		peers = append(peers, toPeerInfo(p))
	}

	peers = append(peers, toPeerInfo(s.cluster.Self()))

	return &noderpc.JoinResponse{
		Peers: peers,
	}, nil
}
