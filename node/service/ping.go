package service

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/meshworks/peerd/noderpc"
)

// Ping acknowledges a liveness probe with a line identifying the responder.
// It has no effect on the roster or the client pool.
func (s *NodeService) Ping(ctx context.Context, req *noderpc.PingRequest) (*noderpc.PingResponse, error) {
	level.Debug(s.logger).Log("msg", "ping", "from", req.From)

	return &noderpc.PingResponse{
		Ack: fmt.Sprintf("pong from %s", s.cluster.Self().ID),
	}, nil
}
