package chat

// Transport delivers events to connections and tracks which named groups a
// connection belongs to. Groups only mirror the user registry for delivery;
// the registry stays the authority on room membership.
type Transport interface {
	// EmitTo sends an event to one connection.
	EmitTo(connID, event string, payload any)

	// EmitToRoom sends an event to every connection in room.
	EmitToRoom(room, event string, payload any)

	// EmitToRoomExcept sends an event to every connection in room but connID.
	EmitToRoomExcept(connID, room, event string, payload any)

	// JoinGroup adds connID to the room group.
	JoinGroup(connID, room string)
}

// ProfanityChecker flags text that must not be relayed.
type ProfanityChecker interface {
	IsProfane(text string) bool
}
