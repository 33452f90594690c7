package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/iamkameel/scrbrd-beta-2-sub004/scoring"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// All origins are accepted, matching the open CORS policy on the
		// REST routes.
		return true
	},
}

type WebSocketHandler struct {
	hub    *scoring.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *scoring.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs upgrades the connection and subscribes the client to a match room.
// Clients connect to /ws/matches/{matchID} and receive score pushes only;
// anything they send is discarded.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	matchIDStr := chi.URLParam(r, "matchID")
	if matchIDStr == "" {
		http.Error(w, "missing matchID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error to the client.
		h.logger.Error("websocket upgrade failed", "match_id", matchIDStr, "error", err)
		return
	}

	roomID := "match_" + matchIDStr

	client := &scoring.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Info("websocket client joined", "room", roomID)
}
