// Package gateway is the thin HTTP-to-RPC bridge that fronts a node for the
// browser control panel: join a peer, broadcast a message, inspect the
// roster.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/meshworks/peerd/membership"
)

// Cluster is the part of the node the gateway needs.
type Cluster interface {
	// Self returns the local node's identity.
	Self() membership.Peer

	// Peers returns the current roster.
	Peers() []membership.Peer

	// Checksum returns the roster fingerprint.
	Checksum() uint64

	// Join introduces the local node to the node at the given address and
	// merges the returned roster.
	Join(ctx context.Context, addr string) error

	// Broadcast fans a ping out to every pooled peer except the one keyed by
	// from and returns the number of acknowledgements.
	Broadcast(ctx context.Context, from membership.PeerID, message string) int
}

type joinRequest struct {
	Peer string `json:"peer"`
}

type broadcastRequest struct {
	Message string `json:"message"`
}

type broadcastResponse struct {
	Delivered int `json:"delivered"`
}

type peerInfo struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

type rosterResponse struct {
	Self     peerInfo   `json:"self"`
	Peers    []peerInfo `json:"peers"`
	Checksum string     `json:"checksum"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// API serves the bridge endpoints on top of a cluster node.
type API struct {
	cluster Cluster
	logger  kitlog.Logger
}

// New creates the bridge API.
func New(cluster Cluster, logger kitlog.Logger) *API {
	return &API{
		cluster: cluster,
		logger:  logger,
	}
}

// CreateRouter builds the HTTP router for the bridge.
func CreateRouter(cluster Cluster, logger kitlog.Logger) *chi.Mux {
	r := chi.NewRouter()
	New(cluster, logger).Bind(r)

	return r
}

// Bind registers the bridge routes.
func (api *API) Bind(r chi.Router) {
	r.Post("/join", api.handleJoin)
	r.Post("/broadcast", api.handleBroadcast)
	r.Get("/cluster/peers", api.handlePeers)
}

func (api *API) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "malformed request body"})

		return
	}

	if req.Peer == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "peer address is empty"})

		return
	}

	if err := api.cluster.Join(r.Context(), req.Peer); err != nil {
		level.Warn(api.logger).Log("msg", "join via gateway failed", "addr", req.Peer, "err", err)

		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, errorResponse{
			Error: fmt.Sprintf("failed to join %s: %v", req.Peer, err),
		})

		return
	}

	render.JSON(w, r, toPeerInfos(api.cluster.Peers()))
}

func (api *API) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "malformed request body"})

		return
	}

	// The local node acts as the coordinator, so its own id is the one to
	// leave out of the fan-out.
	delivered := api.cluster.Broadcast(r.Context(), api.cluster.Self().ID, req.Message)

	render.JSON(w, r, broadcastResponse{Delivered: delivered})
}

func (api *API) handlePeers(w http.ResponseWriter, r *http.Request) {
	self := api.cluster.Self()

	render.JSON(w, r, rosterResponse{
		Self: peerInfo{
			ID:      string(self.ID),
			Address: self.Addr,
		},
		Peers:    toPeerInfos(api.cluster.Peers()),
		Checksum: fmt.Sprintf("%016x", api.cluster.Checksum()),
	})
}

func toPeerInfos(peers []membership.Peer) []peerInfo {
	infos := make([]peerInfo, len(peers))

	for i, p := range peers {
		infos[i] = peerInfo{
			ID:      string(p.ID),
			Address: p.Addr,
		}
	}

	return infos
}
