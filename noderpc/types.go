// Package noderpc defines the wire contract of the peerd.Node service: three
// unary operations (Join, Ping, Broadcast) carried over gRPC with a JSON
// codec. The service descriptor and client are written by hand in the shape
// code generation would produce; the JSON field names below are consumed by
// the HTTP bridge in front of each node and must not change.
package noderpc

// PeerInfo identifies a single node on the wire.
type PeerInfo struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// JoinRequest introduces the caller to the receiving node.
type JoinRequest struct {
	Me PeerInfo `json:"me"`
}

// JoinResponse carries the receiving node's roster, with its own identity
// appended.
type JoinResponse struct {
	Peers []PeerInfo `json:"peers"`
}

// PingRequest is a liveness probe from the named node.
type PingRequest struct {
	From string `json:"from"`
}

// PingResponse acknowledges a probe with a line identifying the responder.
type PingResponse struct {
	Ack string `json:"ack"`
}

// BroadcastRequest asks the receiving node to fan a message out to its
// known peers.
type BroadcastRequest struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// BroadcastResponse reports how many peers acknowledged the fan-out.
type BroadcastResponse struct {
	Delivered int `json:"delivered"`
}
