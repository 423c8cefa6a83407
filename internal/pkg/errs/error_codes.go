/*
Package errs provides the application error type and its error codes.

Codes identify a failure both in server logs and on the wire: websocket
acknowledgments carry the message of the code, HTTP responses carry both.
*/
package errs

// 1xxx: request and frame handling
const (
	// ErrInvalidParams indicates a request or frame payload failed to decode or validate.
	ErrInvalidParams = 1001

	// ErrUnsupportedEvent indicates a websocket frame named an event the server does not handle.
	ErrUnsupportedEvent = 1002
)

// 2xxx: chat membership and messaging
const (
	// ErrMissingField indicates a join with an empty username or room.
	ErrMissingField = 2001

	// ErrUsernameTaken indicates the username is already active in the target room.
	ErrUsernameTaken = 2002

	// ErrUserNotFound indicates an event from a connection that has not joined a room.
	ErrUserNotFound = 2003

	// ErrProfanityRejected indicates message text flagged by the profanity filter.
	ErrProfanityRejected = 2004

	// ErrAlreadyJoined indicates a second join on a connection that already owns a user.
	ErrAlreadyJoined = 2005

	// ErrRoomNotFound indicates a query for a room with no active members.
	ErrRoomNotFound = 2103
)

// 5xxx: internal
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000
)
