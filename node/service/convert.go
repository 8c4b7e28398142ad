package service

import (
	"github.com/meshworks/peerd/membership"
	"github.com/meshworks/peerd/noderpc"
)

func toPeerInfo(p membership.Peer) noderpc.PeerInfo {
	return noderpc.PeerInfo{
		ID:      string(p.ID),
		Address: p.Addr,
	}
}

func fromPeerInfo(p noderpc.PeerInfo) membership.Peer {
	return membership.Peer{
		ID:   membership.PeerID(p.ID),
		Addr: p.Address,
	}
}
