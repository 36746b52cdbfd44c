package core

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/wecode-dev/wecode-server/internal/metrics"
)

// Hub wires connected clients to the room store. Each registered client
// gets its own pump goroutine that applies that connection's commands in
// receipt order; same-room mutations serialize on the room's lock while
// different rooms proceed in parallel.
type Hub struct {
	log      *zerolog.Logger
	store    *RoomStore
	registry *Registry
	metrics  *metrics.Metrics

	mu      sync.RWMutex
	clients map[string]*Client
}

var _ Sink = (*Hub)(nil)

// NewHub creates a hub over the given store. logger and m may be nil.
func NewHub(store *RoomStore, logger *zerolog.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		log:      logger,
		store:    store,
		registry: NewRegistry(),
		metrics:  m,
		clients:  make(map[string]*Client),
	}
}

// RegisterClient adds the client and starts its command pump. The pump
// runs until UnregisterClient closes the command channel, then performs
// disconnect cleanup and closes the client's event channel.
func (h *Hub) RegisterClient(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	h.registry.Add(c.ID)
	h.metrics.ConnOpened()
	h.log.Debug().Str("conn_id", c.ID).Msg("client registered")

	go h.serveClient(c)
}

// UnregisterClient initiates teardown for the client. Safe to call more
// than once; only the first call closes the command channel. The caller
// must not send further commands after unregistering.
func (h *Hub) UnregisterClient(c *Client) {
	h.mu.Lock()
	_, present := h.clients[c.ID]
	delete(h.clients, c.ID)
	h.mu.Unlock()

	if present {
		close(c.Commands)
	}
}

func (h *Hub) serveClient(c *Client) {
	for cmd := range c.Commands {
		h.handle(c, cmd)
	}
	h.disconnect(c)
	close(c.Events)
	h.metrics.ConnClosed()
}

// handle applies one command to the store and fans out the result
// according to the routing table. Mutations that race a deleted room
// resolve to silent no-ops.
func (h *Hub) handle(c *Client, cmd *Command) {
	h.metrics.ObserveEvent(cmd.Kind.String())

	switch cmd.Kind {
	case CommandJoinRoom:
		res, ok := h.store.Join(cmd.Room, Member{ConnectionID: c.ID, Name: cmd.Name}, cmd.Language)
		if !ok {
			return
		}
		h.registry.Join(c.ID, cmd.Room)
		if res.Created {
			h.log.Info().Str("room", cmd.Room).Str("language", res.Snapshot.Language).Msg("room created")
		}
		h.metrics.SetRooms(h.store.Count())

		// Bootstrap the joiner, then tell the whole room about the roster.
		h.Unicast(c.ID, &Event{Kind: EventCodeUpdate, Room: cmd.Room, Code: res.Snapshot.Code})
		h.Unicast(c.ID, &Event{Kind: EventLanguageUpdate, Room: cmd.Room, Language: res.Snapshot.Language})
		h.Unicast(c.ID, &Event{Kind: EventCanvasUpdate, Room: cmd.Room, Strokes: res.Snapshot.Strokes})
		h.Broadcast(&Event{Kind: EventUserList, Room: cmd.Room, Members: res.Members}, res.MemberIDs, "")

	case CommandChangeCode:
		ids, ok := h.store.ChangeCode(cmd.Room, cmd.Code)
		if !ok {
			return
		}
		h.Broadcast(&Event{Kind: EventCodeUpdate, Room: cmd.Room, Code: cmd.Code}, ids, c.ID)

	case CommandChangeLanguage:
		ids, ok := h.store.ChangeLanguage(cmd.Room, cmd.Language)
		if !ok {
			return
		}
		h.Broadcast(&Event{Kind: EventLanguageUpdate, Room: cmd.Room, Language: cmd.Language}, ids, c.ID)

	case CommandSendChat:
		msg, ids, ok := h.store.AppendChatMessage(cmd.Room, cmd.Name, cmd.Text)
		if !ok {
			return
		}
		// Inclusive broadcast: the sender's own UI confirms delivery
		// through the same path as everyone else's.
		h.Broadcast(&Event{Kind: EventChatMessage, Room: cmd.Room, Chat: &msg}, ids, "")

	case CommandDraw:
		if cmd.Stroke == nil {
			return
		}
		ids, ok := h.store.AppendStroke(cmd.Room, *cmd.Stroke)
		if !ok {
			return
		}
		h.Broadcast(&Event{Kind: EventDraw, Room: cmd.Room, Stroke: cmd.Stroke}, ids, c.ID)

	case CommandClearCanvas:
		ids, ok := h.store.ClearCanvas(cmd.Room)
		if !ok {
			return
		}
		h.Broadcast(&Event{Kind: EventClearCanvas, Room: cmd.Room}, ids, "")

	case CommandLeaveRoom:
		h.registry.Leave(c.ID, cmd.Room)
		h.leaveRoom(c.ID, cmd.Room)
	}
}

// disconnect cascades membership removal into every room the connection
// had joined. Processing a duplicate disconnect is a no-op because the
// registry forgets the connection on the first pass.
func (h *Hub) disconnect(c *Client) {
	for _, roomID := range h.registry.Remove(c.ID) {
		h.leaveRoom(c.ID, roomID)
	}
	h.log.Debug().Str("conn_id", c.ID).Msg("client disconnected")
}

func (h *Hub) leaveRoom(connID, roomID string) {
	res, ok := h.store.RemoveMember(roomID, connID)
	if !ok {
		return
	}
	if res.Deleted {
		h.log.Info().Str("room", roomID).Msg("room closed (empty)")
	} else {
		h.Broadcast(&Event{Kind: EventUserList, Room: roomID, Members: res.Members}, res.MemberIDs, "")
	}
	h.metrics.SetRooms(h.store.Count())
}

// Unicast implements Sink. The send happens under the read lock so it can
// never race the channel close in serveClient.
func (h *Hub) Unicast(connID string, ev *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.clients[connID]; ok {
		h.send(c, ev)
	}
}

// Broadcast implements Sink.
func (h *Hub) Broadcast(ev *Event, connIDs []string, exclude string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range connIDs {
		if id == exclude {
			continue
		}
		if c, ok := h.clients[id]; ok {
			h.send(c, ev)
		}
	}
}

// send never blocks: if the client's Events buffer is full the event is
// dropped, so a slow peer can miss a mutation and only reconciles by
// rejoining the room.
func (h *Hub) send(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
		h.log.Warn().Str("conn_id", c.ID).Msg("event dropped, slow consumer")
	}
}
