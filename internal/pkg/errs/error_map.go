/*
Package errs provides the application error type and its error codes.

This file maps each code to the message sent to clients and the HTTP status
used when the error leaves through the REST surface.
*/
package errs

import "net/http"

// errorMap holds the template CustomError for every known code.
// A zero Status is treated as 200 by NewError.
var errorMap = map[int]CustomError{
	ErrInvalidParams:    {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedEvent: {Code: ErrUnsupportedEvent, Message: "Unsupported event %q.", Status: http.StatusBadRequest},

	// Ack messages below are part of the client contract; do not reword.
	ErrMissingField:      {Code: ErrMissingField, Message: "Username and room are required!", Status: http.StatusBadRequest},
	ErrUsernameTaken:     {Code: ErrUsernameTaken, Message: "Username is in use!", Status: http.StatusConflict},
	ErrUserNotFound:      {Code: ErrUserNotFound, Message: "User not found", Status: http.StatusNotFound},
	ErrProfanityRejected: {Code: ErrProfanityRejected, Message: "Profanity is not allowed", Status: http.StatusUnprocessableEntity},
	ErrAlreadyJoined:     {Code: ErrAlreadyJoined, Message: "You have already joined a room.", Status: http.StatusConflict},
	ErrRoomNotFound:      {Code: ErrRoomNotFound, Message: "Chat room not found.", Status: http.StatusNotFound},

	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
