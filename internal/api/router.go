package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleshipgame-go/internal/middleware"
	"github.com/mcoot/battleshipgame-go/internal/protocol"
)

// LobbyReader is the read-only view the API exposes; the registry
// implements it
type LobbyReader interface {
	LobbySnapshot(ctx context.Context) []protocol.RoomInfo
	Leaderboard(ctx context.Context) []protocol.WinnerEntry
}

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger *slog.Logger
	Lobby  LobbyReader

	// Websocket is the upgrade handler mounted at /ws. It is mounted
	// outside the logging middleware, which would hide http.Hijacker from
	// the upgrader.
	Websocket http.Handler
}

// NewRouter creates the HTTP router: the websocket endpoint plus
// read-only JSON projections of the lobby and leaderboard
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)

	r.Handle("/ws", cfg.Websocket)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	// Without this a method mismatch falls through to the 404 handler
	api.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/lobby", lobbyHandler(cfg.Lobby)).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", leaderboardHandler(cfg.Lobby)).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func lobbyHandler(lobby LobbyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, lobby.LobbySnapshot(r.Context()))
	}
}

func leaderboardHandler(lobby LobbyReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, lobby.Leaderboard(r.Context()))
	}
}
