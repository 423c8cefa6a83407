/*
Package chat contains the relay's core: the Coordinator that decides who
receives what, the Hub that serializes every connection event through one
goroutine and delivers frames, and the websocket Client pumps.

This file defines the Hub. It owns the user registry, the transport groups and
the client map, and touches them only from its Run loop, so none of them need
locking. It is also the Transport the Coordinator emits through.
*/
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"relaychat/internal/app/user"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/metrics"
)

// ErrHubStopped is returned by calls made after the hub stopped.
var ErrHubStopped = errors.New("chat hub stopped")

// inboundEvent is a client frame waiting for the Run loop.
type inboundEvent struct {
	client *Client
	frame  InboundFrame
}

// Hub serializes connection lifecycle and inbound events and delivers frames.
type Hub struct {
	// registry is the authoritative user/room record.
	registry *user.Registry

	// coordinator applies events to the registry and emits through the hub.
	coordinator *Coordinator

	// clients maps connection ID to its live client.
	clients map[string]*Client

	// groups maps room name to the connection IDs subscribed to it.
	groups map[string]map[string]struct{}

	// evictions holds clients whose send queue overflowed during the current
	// event. They are disconnected once the event has been fully handled.
	evictions map[string]*Client

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundEvent
	queries    chan func()

	// stopChan asks Run to return; done is closed once it has.
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	logger zerolog.Logger
}

// NewHub builds a hub with an empty registry. Call Run to start it.
func NewHub(profanity ProfanityChecker) *Hub {
	h := &Hub{
		registry:   user.NewRegistry(),
		clients:    make(map[string]*Client),
		groups:     make(map[string]map[string]struct{}),
		evictions:  make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundEvent),
		queries:    make(chan func()),
		stopChan:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logx.Component("Hub"),
	}
	h.coordinator = NewCoordinator(h.registry, h, profanity)

	return h
}

// Run processes events one at a time until Stop is called.
func (h *Hub) Run() {
	defer close(h.done)

	h.logger.Info().Msg("Hub loop started.")

	for {
		select {
		case client := <-h.register:
			h.clients[client.ID] = client
			metrics.Connections.Inc()

			h.logger.Debug().
				Str("conn_id", client.ID).
				Int("total_connections", len(h.clients)).
				Msg("Client connected.")

		case client := <-h.unregister:
			if current, ok := h.clients[client.ID]; !ok || current != client {
				continue
			}
			h.dropClient(client)
			h.coordinator.Disconnect(client.ID)
			h.evictSlowClients()
			metrics.Users.Set(float64(h.registry.Len()))

		case ev := <-h.inbound:
			if current, ok := h.clients[ev.client.ID]; !ok || current != ev.client {
				continue
			}
			h.handleFrame(ev.client, ev.frame)
			h.evictSlowClients()
			metrics.Users.Set(float64(h.registry.Len()))

		case query := <-h.queries:
			query()

		case <-h.stopChan:
			h.shutdown()
			return
		}
	}
}

// Stop ends the Run loop and closes every client's send queue. It blocks
// until the loop has returned and may be called more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		h.logger.Info().Msg("Stopping hub.")
		close(h.stopChan)
	})
	<-h.done
}

// Register hands a new client to the loop. It reports false once the hub stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister drops c and runs the disconnect handling for it.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// submit queues a client frame. It blocks until the loop accepts it so frames
// of one connection are handled in the order they were read.
func (h *Hub) submit(c *Client, frame InboundFrame) bool {
	select {
	case h.inbound <- inboundEvent{client: c, frame: frame}:
		return true
	case <-h.done:
		return false
	}
}

// RoomSnapshot returns the members of room. ok is false when nobody is in it.
func (h *Hub) RoomSnapshot(ctx context.Context, room string) (data RoomData, ok bool, err error) {
	err = h.query(ctx, func() {
		data = h.coordinator.Snapshot(room)
		ok = len(data.Users) > 0
	})
	return data, ok, err
}

// Rooms lists the active rooms with their member counts.
func (h *Hub) Rooms(ctx context.Context) (rooms []user.RoomSummary, err error) {
	err = h.query(ctx, func() {
		rooms = h.registry.Rooms()
	})
	return rooms, err
}

// query runs fn inside the Run loop and waits for it.
func (h *Hub) query(ctx context.Context, fn func()) error {
	finished := make(chan struct{})

	select {
	case h.queries <- func() { defer close(finished); fn() }:
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHubStopped
	}

	<-finished
	return nil
}

// handleFrame decodes one client frame, dispatches it and acknowledges it.
func (h *Hub) handleFrame(c *Client, frame InboundFrame) {
	var result *errs.CustomError

	switch frame.Event {
	case EventJoin:
		var in JoinPayload
		if err := json.Unmarshal(frame.Data, &in); err != nil {
			result = errs.NewError(errs.ErrInvalidParams)
			break
		}
		result = h.coordinator.Join(c.ID, in)

	case EventSendMessage:
		var text string
		if err := json.Unmarshal(frame.Data, &text); err != nil {
			result = errs.NewError(errs.ErrInvalidParams)
			break
		}
		result = h.coordinator.SendMessage(c.ID, text)

	case EventSendLocation:
		var wire locationWire
		if err := json.Unmarshal(frame.Data, &wire); err != nil || wire.Lat == nil || wire.Long == nil {
			result = errs.NewError(errs.ErrInvalidParams)
			break
		}
		result = h.coordinator.SendLocation(c.ID, LocationPayload{Lat: *wire.Lat, Long: *wire.Long})

	default:
		c.logger.Warn().Str("event", frame.Event).Msg("Client sent unsupported event")
		result = errs.NewError(errs.ErrUnsupportedEvent, frame.Event)
	}

	outcome := metrics.OutcomeOK
	if result != nil {
		outcome = metrics.OutcomeRejected
	}
	metrics.EventsHandled.WithLabelValues(frame.Event, outcome).Inc()

	h.ack(c, frame.Ack, result)
}

// ack answers an inbound frame exactly once.
func (h *Hub) ack(c *Client, id *uint64, result *errs.CustomError) {
	frame := AckFrame{Event: EventAck, Ack: id}
	if result != nil {
		frame.Error = result.Message
	}

	h.deliverEncoded(c, EventAck, frame)
}

// dropClient removes c from the client map and every group, then closes its
// send queue so the write pump shuts the connection.
func (h *Hub) dropClient(c *Client) {
	for room := range c.rooms {
		members := h.groups[room]
		delete(members, c.ID)
		if len(members) == 0 {
			delete(h.groups, room)
		}
	}
	clear(c.rooms)

	delete(h.clients, c.ID)
	close(c.send)
	metrics.Connections.Dec()

	h.logger.Debug().
		Str("conn_id", c.ID).
		Int("total_connections", len(h.clients)).
		Msg("Client disconnected.")
}

// evictSlowClients disconnects every client whose queue overflowed. Each
// disconnect notifies the remaining room members, which may overflow further
// queues, so it runs until no eviction is pending.
func (h *Hub) evictSlowClients() {
	for len(h.evictions) > 0 {
		for id, c := range h.evictions {
			delete(h.evictions, id)

			if current, ok := h.clients[id]; !ok || current != c {
				continue
			}

			c.logger.Warn().Msg("Client send queue full, disconnecting slow client.")
			h.dropClient(c)
			h.coordinator.Disconnect(id)
		}
	}
}

// shutdown closes every remaining client. Registry state is discarded with the hub.
func (h *Hub) shutdown() {
	for _, c := range h.clients {
		h.dropClient(c)
	}
	h.logger.Info().Msg("Hub loop stopped.")
}

// EmitTo implements Transport.
func (h *Hub) EmitTo(connID, event string, payload any) {
	c, ok := h.clients[connID]
	if !ok {
		return
	}
	h.deliverEncoded(c, event, OutboundFrame{Event: event, Data: payload})
}

// EmitToRoom implements Transport.
func (h *Hub) EmitToRoom(room, event string, payload any) {
	h.emitToGroup(room, "", event, payload)
}

// EmitToRoomExcept implements Transport.
func (h *Hub) EmitToRoomExcept(connID, room, event string, payload any) {
	h.emitToGroup(room, connID, event, payload)
}

// JoinGroup implements Transport.
func (h *Hub) JoinGroup(connID, room string) {
	c, ok := h.clients[connID]
	if !ok {
		return
	}

	if h.groups[room] == nil {
		h.groups[room] = make(map[string]struct{})
	}
	h.groups[room][connID] = struct{}{}
	c.rooms[room] = struct{}{}
}

// emitToGroup encodes the frame once and queues it for every member of room
// except skipID.
func (h *Hub) emitToGroup(room, skipID, event string, payload any) {
	members := h.groups[room]
	if len(members) == 0 {
		return
	}

	frame, err := json.Marshal(OutboundFrame{Event: event, Data: payload})
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Error marshaling frame for broadcast.")
		return
	}

	for connID := range members {
		if connID == skipID {
			continue
		}
		if c, ok := h.clients[connID]; ok {
			h.deliver(c, event, frame)
		}
	}
}

func (h *Hub) deliverEncoded(c *Client, event string, v any) {
	frame, err := json.Marshal(v)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Error marshaling frame for client.")
		return
	}
	h.deliver(c, event, frame)
}

// deliver queues frame without blocking. A full queue marks the client for
// eviction; it receives nothing more until it is dropped.
func (h *Hub) deliver(c *Client, event string, frame []byte) {
	if _, evicting := h.evictions[c.ID]; evicting {
		metrics.FramesDropped.Inc()
		return
	}

	select {
	case c.send <- frame:
		metrics.FramesSent.WithLabelValues(event).Inc()
	default:
		metrics.FramesDropped.Inc()
		h.evictions[c.ID] = c
		c.logger.Debug().
			Str("event", event).
			Int("queue_len", len(c.send)).
			Msg("Client send queue full, scheduling eviction.")
	}
}
