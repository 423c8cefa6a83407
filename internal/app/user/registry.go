/*
Package user tracks who is connected and in which room.

This file defines the Registry. It is not safe for concurrent use: the chat hub
owns it and calls it from a single goroutine.
*/
package user

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"relaychat/internal/pkg/errs"
)

// Registry maps connection identifiers to users and enforces that a username is
// held by at most one connection per room, compared case-insensitively.
type Registry struct {
	// users holds every live user keyed by connection.
	users map[string]User

	// order lists connection IDs in join order.
	order []string

	// taken maps room -> lowercased username -> connection holding it.
	taken map[string]map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]User),
		taken: make(map[string]map[string]string),
	}
}

// Add registers connID as username in room.
// Both values are trimmed and must be non-empty. A connection can own only one
// user, and a username only one connection per room.
func (r *Registry) Add(connID, username, room string) (User, *errs.CustomError) {
	username = strings.TrimSpace(username)
	room = strings.TrimSpace(room)

	if username == "" || room == "" {
		return User{}, errs.NewError(errs.ErrMissingField)
	}

	if _, ok := r.users[connID]; ok {
		return User{}, errs.NewError(errs.ErrAlreadyJoined)
	}

	key := foldName(username)
	if _, ok := r.taken[room][key]; ok {
		return User{}, errs.NewError(errs.ErrUsernameTaken)
	}

	u := User{ConnID: connID, Username: username, Room: room}

	r.users[connID] = u
	r.order = append(r.order, connID)

	if r.taken[room] == nil {
		r.taken[room] = make(map[string]string)
	}
	r.taken[room][key] = connID

	return u, nil
}

// Remove deletes the user owned by connID and returns it.
// It reports false when the connection never joined or was already removed.
func (r *Registry) Remove(connID string) (User, bool) {
	u, ok := r.users[connID]
	if !ok {
		return User{}, false
	}

	delete(r.users, connID)
	r.order = slices.DeleteFunc(r.order, func(id string) bool { return id == connID })

	names := r.taken[u.Room]
	delete(names, foldName(u.Username))
	if len(names) == 0 {
		delete(r.taken, u.Room)
	}

	return u, true
}

// Get returns the user owned by connID.
func (r *Registry) Get(connID string) (User, bool) {
	u, ok := r.users[connID]
	return u, ok
}

// UsersInRoom returns the users of room in join order.
func (r *Registry) UsersInRoom(room string) []User {
	return lo.FilterMap(r.order, func(connID string, _ int) (User, bool) {
		u := r.users[connID]
		return u, u.Room == room
	})
}

// Len returns the number of live users.
func (r *Registry) Len() int {
	return len(r.users)
}

// Rooms lists the active rooms, ordered by their longest-standing member.
func (r *Registry) Rooms() []RoomSummary {
	rooms := lo.Uniq(lo.Map(r.order, func(connID string, _ int) string {
		return r.users[connID].Room
	}))

	return lo.Map(rooms, func(room string, _ int) RoomSummary {
		return RoomSummary{Room: room, Users: len(r.taken[room])}
	})
}

func foldName(username string) string {
	return strings.ToLower(username)
}
