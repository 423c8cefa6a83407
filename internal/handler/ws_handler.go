package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"relaychat/internal/app/chat"
	"relaychat/internal/pkg/logx"
)

// HandleWebSocket upgrades the request and runs the connection until it closes.
// Joining a room happens afterwards through a join frame.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Warn("Failed to upgrade connection to WebSocket", "error", err.Error())
			return
		}

		client := chat.NewClient(deps.Hub, conn, deps.Config.SendBufferSize)

		if !deps.Hub.Register(client) {
			logx.Warn("WebSocket connection rejected: hub is stopped.", "conn_id", client.ID)
			_ = conn.Close()
			return
		}

		logx.Debug("New WebSocket connection", "conn_id", client.ID)

		go client.WritePump()
		client.ReadPump()
	}
}
