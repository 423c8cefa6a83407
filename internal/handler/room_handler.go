/*
Package handler provides the HTTP surface of the relay.

This file serves read-only room queries: the active rooms with member counts,
and the snapshot of one room in the same shape as the roomData event.
*/
package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/resp"
)

// HandleListRooms responds with every active room.
func HandleListRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := deps.Hub.Rooms(r.Context())
		if err != nil {
			logx.Error(err, "Failed to list rooms")
			resp.RespondError(w, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, map[string]any{"rooms": rooms})
	}
}

// HandleRoomSnapshot responds with the members of one room.
func HandleRoomSnapshot(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, err := url.PathUnescape(chi.URLParam(r, "room"))
		room = strings.TrimSpace(room)
		if err != nil || room == "" {
			resp.RespondError(w, errs.NewError(errs.ErrInvalidParams))
			return
		}

		data, ok, err := deps.Hub.RoomSnapshot(r.Context(), room)
		if err != nil {
			logx.Error(err, "Failed to read room snapshot", "room", room)
			resp.RespondError(w, errs.NewError(errs.ErrUnknown, err))
			return
		}

		if !ok {
			resp.RespondError(w, errs.NewError(errs.ErrRoomNotFound))
			return
		}

		resp.RespondSuccess(w, data)
	}
}
