package chat

import (
	"fmt"

	"github.com/rs/zerolog"

	"relaychat/internal/app/message"
	"relaychat/internal/app/user"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
)

const welcomeText = "Welcome!"

// Coordinator applies connection events to the registry and decides the
// recipients of every resulting message. Each method runs to completion and
// returns nil on success or the error to acknowledge the event with.
//
// A Coordinator is not safe for concurrent use.
type Coordinator struct {
	registry  *user.Registry
	transport Transport
	profanity ProfanityChecker
	logger    zerolog.Logger
}

// NewCoordinator wires a coordinator to its registry, transport and profanity check.
func NewCoordinator(registry *user.Registry, transport Transport, profanity ProfanityChecker) *Coordinator {
	return &Coordinator{
		registry:  registry,
		transport: transport,
		profanity: profanity,
		logger:    logx.Component("Coordinator"),
	}
}

// Join registers connID in the requested room. The caller is welcomed, the
// other members are told, and the whole room receives a fresh snapshot.
func (c *Coordinator) Join(connID string, in JoinPayload) *errs.CustomError {
	u, err := c.registry.Add(connID, in.Username, in.Room)
	if err != nil {
		c.logger.Debug().
			Str("conn_id", connID).
			Int("code", err.Code).
			Msg("Join rejected.")
		return err
	}

	c.transport.JoinGroup(connID, u.Room)

	c.emitTo(connID, message.FormatText(message.AdminSender, welcomeText))
	c.emitToRoomExcept(connID, u.Room, message.FormatText(message.AdminSender, fmt.Sprintf("%s has joined!", u.Username)))
	c.emitRoomData(u.Room)

	c.logger.Info().
		Str("conn_id", connID).
		Str("username", u.Username).
		Str("room", u.Room).
		Msg("User joined room.")

	return nil
}

// SendMessage relays text to the sender's room, sender included.
func (c *Coordinator) SendMessage(connID, text string) *errs.CustomError {
	u, ok := c.registry.Get(connID)
	if !ok {
		return errs.NewError(errs.ErrUserNotFound)
	}

	if c.profanity != nil && c.profanity.IsProfane(text) {
		c.logger.Info().
			Str("conn_id", connID).
			Str("room", u.Room).
			Msg("Message rejected by profanity filter.")
		return errs.NewError(errs.ErrProfanityRejected)
	}

	c.emitToRoom(u.Room, message.FormatText(u.Username, text))
	return nil
}

// SendLocation relays a map link for the coordinates to the sender's room.
// Locations are not profanity checked.
func (c *Coordinator) SendLocation(connID string, loc LocationPayload) *errs.CustomError {
	u, ok := c.registry.Get(connID)
	if !ok {
		return errs.NewError(errs.ErrUserNotFound)
	}

	c.emitToRoom(u.Room, message.FormatLocation(u.Username, message.MapLink(loc.Lat, loc.Long)))
	return nil
}

// Disconnect removes the user of connID, if any, and tells the remaining
// members of its room. It is safe to call more than once.
func (c *Coordinator) Disconnect(connID string) {
	u, ok := c.registry.Remove(connID)
	if !ok {
		return
	}

	c.emitToRoom(u.Room, message.FormatText(message.AdminSender, fmt.Sprintf("%s has left!", u.Username)))
	c.emitRoomData(u.Room)

	c.logger.Info().
		Str("conn_id", connID).
		Str("username", u.Username).
		Str("room", u.Room).
		Msg("User left room.")
}

// Snapshot returns the current member list of room.
func (c *Coordinator) Snapshot(room string) RoomData {
	return RoomData{Room: room, Users: c.registry.UsersInRoom(room)}
}

func (c *Coordinator) emitRoomData(room string) {
	c.transport.EmitToRoom(room, EventRoomData, c.Snapshot(room))
}

func (c *Coordinator) emitTo(connID string, m message.Message) {
	c.transport.EmitTo(connID, eventFor(m), m)
}

func (c *Coordinator) emitToRoom(room string, m message.Message) {
	c.transport.EmitToRoom(room, eventFor(m), m)
}

func (c *Coordinator) emitToRoomExcept(connID, room string, m message.Message) {
	c.transport.EmitToRoomExcept(connID, room, eventFor(m), m)
}
