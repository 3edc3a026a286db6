package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// Dispatcher receives decoded transport activity. The registry implements
// it; the transport guarantees HandleDisconnect is the final call for a
// key.
type Dispatcher interface {
	HandleMessage(ctx context.Context, key model.ConnectionKey, raw []byte)
	HandleDisconnect(ctx context.Context, key model.ConnectionKey)
}

// Handler upgrades HTTP requests to websocket peers and pumps their
// frames through the dispatcher
type Handler struct {
	hub        *Hub
	dispatcher Dispatcher
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates a websocket Handler
func NewHandler(hub *Hub, dispatcher Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game protocol carries no credentials; origin checks are
			// left to a fronting proxy
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws")),
	}
}

// ServeHTTP handles one client connection for its whole lifetime
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", slog.String("error", err.Error()))
		return
	}

	// The remote address is unique per TCP connection and serves as the
	// connection key for addressed events
	key := model.ConnectionKey(conn.RemoteAddr().String())
	peer := NewPeer(key, conn)

	h.hub.Add(peer)
	go peer.writePump(h.logger)

	h.readPump(peer)

	h.hub.Remove(key)
	// Disconnect is dispatched after the read loop ends, so no further
	// commands can follow it for this key
	h.dispatcher.HandleDisconnect(context.Background(), key)

	h.logger.Info("connection closed",
		slog.String("conn", string(key)),
		slog.Duration("connection_duration", time.Since(peer.connectedAt)),
	)
}

// readPump forwards inbound frames to the dispatcher until the connection
// drops
func (h *Handler) readPump(peer *Peer) {
	peer.conn.SetReadLimit(maxFrameSize)
	_ = peer.conn.SetReadDeadline(time.Now().Add(pongWait))
	peer.conn.SetPongHandler(func(string) error {
		return peer.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := peer.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("read failed",
					slog.String("conn", string(peer.key)),
					slog.String("error", err.Error()),
				)
			}
			return
		}
		h.dispatcher.HandleMessage(context.Background(), peer.key, raw)
	}
}
