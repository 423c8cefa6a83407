/*
Package user tracks who is connected and in which room.

A User exists for every connection that has successfully joined a room. The
Registry is the authoritative record of room membership; the websocket
transport only mirrors it for delivery.
*/
package user

// User is a connection that has joined a room.
type User struct {
	// ConnID is the transport-assigned identifier of the connection. Primary key.
	ConnID string `json:"-"`

	// Username is the display name, trimmed, with its original casing.
	Username string `json:"username"`

	// Room is the name of the room the user joined, trimmed.
	Room string `json:"-"`
}

// RoomSummary is an active room and its member count.
type RoomSummary struct {
	Room  string `json:"room"`
	Users int    `json:"users"`
}
