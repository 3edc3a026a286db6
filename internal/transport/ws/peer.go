package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

const (
	// sendBuffer is the per-peer outbound frame buffer
	sendBuffer = 256

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	// maxFrameSize bounds inbound frames; game commands are tiny
	maxFrameSize = 64 * 1024
)

// Peer is one live websocket connection
type Peer struct {
	key         model.ConnectionKey
	conn        *websocket.Conn
	send        chan []byte
	connectedAt time.Time
}

// NewPeer wraps an upgraded connection
func NewPeer(key model.ConnectionKey, conn *websocket.Conn) *Peer {
	return &Peer{
		key:         key,
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		connectedAt: time.Now(),
	}
}

// Key returns the peer's connection key
func (p *Peer) Key() model.ConnectionKey {
	return p.key
}

// writePump forwards queued frames to the socket and keeps the connection
// alive with pings. It exits when the send channel closes or a write
// fails.
func (p *Peer) writePump(logger *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-p.send:
			if !ok {
				_ = p.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
				return
			}
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Debug("write failed",
					slog.String("conn", string(p.key)),
					slog.String("error", err.Error()),
				)
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
