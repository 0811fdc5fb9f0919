package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"ground-experiment/groundlink/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Browser clients connect from a separately hosted UI
		return true
	},
}

// SubscribeEvents handles GET /ws. The channel is subscribe-only: the server
// pushes {type, data} frames and discards anything the client sends. The
// token travels in the query string because browsers cannot set headers on
// WebSocket dials.
func (h *Handlers) SubscribeEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "Unauthorized. Missing session token", http.StatusUnauthorized)
			return
		}

		session, err := h.deps.Services.Signer.ValidateToken(token)
		if err != nil {
			http.Error(w, "Unauthorized. Invalid session token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Warn("WebSocket upgrade failed", "error", err.Error())
			return
		}

		h.deps.Hub.Register(conn)
		logging.Info("WebSocket subscriber connected", "user_id", session.UserID)

		// Drain the connection until it closes or errors so the close
		// handshake and keepalives are processed; inbound frames are ignored.
		go func() {
			defer h.deps.Hub.Unregister(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
