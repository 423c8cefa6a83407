/*
Package randx generates identifiers.

Connection identifiers are random UUID v4 strings, so a live identifier is never
handed out twice.
*/
package randx

import (
	"github.com/google/uuid"
)

// ConnectionID returns a fresh identifier for a websocket connection.
func ConnectionID() string {
	return uuid.NewString()
}
