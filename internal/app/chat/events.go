/*
Package chat contains the relay's core: the Coordinator that decides who
receives what, the Hub that serializes every connection event through one
goroutine and delivers frames, and the websocket Client pumps.

This file defines the event names and the wire shapes of frames and payloads.
*/
package chat

import (
	"encoding/json"

	"relaychat/internal/app/message"
	"relaychat/internal/app/user"
)

// Inbound event names.
const (
	EventJoin         = "join"
	EventSendMessage  = "sendMessage"
	EventSendLocation = "sendLocation"
)

// Outbound event names.
const (
	EventMessage         = "message"
	EventLocationMessage = "locationMessage"
	EventRoomData        = "roomData"
	EventAck             = "ack"
)

// JoinPayload is the data of a join event.
type JoinPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// LocationPayload is the data of a sendLocation event.
type LocationPayload struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// RoomData is a room snapshot: the room name and every current member.
type RoomData struct {
	Room  string      `json:"room"`
	Users []user.User `json:"users"`
}

// InboundFrame is a frame sent by a client. Ack, when present, is echoed in
// the acknowledgment so the client can match it to its callback.
type InboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	Ack   *uint64         `json:"ack,omitempty"`
}

// OutboundFrame is an event pushed to a client.
type OutboundFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// AckFrame acknowledges one inbound frame. Error is empty on success.
type AckFrame struct {
	Event string  `json:"event"`
	Ack   *uint64 `json:"ack"`
	Error string  `json:"error,omitempty"`
}

// eventFor picks the outbound event name for a formatted message.
func eventFor(m message.Message) string {
	if m.Kind == message.KindLocation {
		return EventLocationMessage
	}
	return EventMessage
}

// locationWire rejects location frames with a missing coordinate.
type locationWire struct {
	Lat  *float64 `json:"lat"`
	Long *float64 `json:"long"`
}
