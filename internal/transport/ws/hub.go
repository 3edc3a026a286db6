// Package ws is the websocket transport adapter. It accepts connections,
// frames inbound messages for the registry, and delivers queued outbound
// events to live peers. It holds no domain state of its own.
package ws

import (
	"log/slog"
	"sync"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// Hub tracks every live peer connection, keyed by connection key
type Hub struct {
	mu     sync.RWMutex
	peers  map[model.ConnectionKey]*Peer
	logger *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		peers:  make(map[model.ConnectionKey]*Peer),
		logger: logger.With(slog.String("component", "ws-hub")),
	}
}

// Add registers a peer
func (h *Hub) Add(peer *Peer) {
	h.mu.Lock()
	h.peers[peer.key] = peer
	count := len(h.peers)
	h.mu.Unlock()

	h.logger.Info("peer connected",
		slog.String("conn", string(peer.key)),
		slog.Int("total_peers", count),
	)
}

// Remove unregisters a peer and closes its send channel
func (h *Hub) Remove(key model.ConnectionKey) {
	h.mu.Lock()
	peer, ok := h.peers[key]
	if ok {
		delete(h.peers, key)
		close(peer.send)
	}
	count := len(h.peers)
	h.mu.Unlock()

	if ok {
		h.logger.Info("peer disconnected",
			slog.String("conn", string(key)),
			slog.Int("total_peers", count),
		)
	}
}

// Deliver routes one event to its targets. Broadcast events go to every
// peer; addressed events to exactly one, dropped when the peer is gone.
// Sends never block: a peer with a full buffer misses the frame.
func (h *Hub) Deliver(ev model.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch ev.Scope {
	case model.ScopeBroadcast:
		for _, peer := range h.peers {
			h.send(peer, ev.Payload)
		}
	case model.ScopeAddressed:
		if peer, ok := h.peers[ev.To]; ok {
			h.send(peer, ev.Payload)
		}
	}
}

func (h *Hub) send(peer *Peer, payload []byte) {
	select {
	case peer.send <- payload:
	default:
		h.logger.Warn("frame dropped - peer buffer full",
			slog.String("conn", string(peer.key)),
		)
	}
}

// PeerCount returns the number of live peers
func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}
