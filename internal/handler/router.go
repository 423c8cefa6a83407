/*
Package handler provides the HTTP surface of the relay.

This file defines the Router: CORS, request IDs, request logging and panic
recovery for every route, the websocket endpoint, health, metrics and room
queries, and the optional static asset directory.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/metrics"
	"relaychat/internal/pkg/resp"
)

// Router builds the application's routing table.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{}, len(deps.Config.AllowedOrigins))
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := deps.Config.AllowedOrigins
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, map[string]string{
			"status":  "ok",
			"service": "relaychat",
		})
	})

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/rooms", func(rooms chi.Router) {
		rooms.Get("/", HandleListRooms(deps))
		rooms.Get("/{room}", HandleRoomSnapshot(deps))
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, deps))

	if deps.Config.PublicDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.Config.PublicDir)))
	}

	return r
}
