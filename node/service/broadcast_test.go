package service

import (
	"context"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"github.com/meshworks/peerd/membership"
	"github.com/meshworks/peerd/noderpc"
)

func TestBroadcast(t *testing.T) {
	cluster := &mockCluster{
		self:      membership.Peer{ID: "self", Addr: "127.0.0.1:50051"},
		delivered: 2,
	}

	svc := New(cluster, kitlog.NewNopLogger())

	resp, err := svc.Broadcast(context.Background(), &noderpc.BroadcastRequest{
		From:    "caller",
		Message: "hello",
	})

	require.NoError(t, err)
	require.Equal(t, 2, resp.Delivered)
	require.Equal(t, membership.PeerID("caller"), cluster.broadcastFrom)
	require.Equal(t, "hello", cluster.broadcastMessage)
}

func TestPing(t *testing.T) {
	cluster := &mockCluster{
		self: membership.Peer{ID: "self", Addr: "127.0.0.1:50051"},
	}

	svc := New(cluster, kitlog.NewNopLogger())

	resp, err := svc.Ping(context.Background(), &noderpc.PingRequest{From: "caller"})

	require.NoError(t, err)
	require.Equal(t, "pong from self", resp.Ack)
}
