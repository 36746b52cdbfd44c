package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventCodeUpdate carries the room's current code buffer.
	EventCodeUpdate EventKind = iota
	// EventLanguageUpdate carries the room's current language tag.
	EventLanguageUpdate
	// EventCanvasUpdate delivers the full stroke history to a joining client.
	EventCanvasUpdate
	// EventUserList carries the room's current member roster.
	EventUserList
	// EventChatMessage relays a chat message with its server timestamp.
	EventChatMessage
	// EventDraw relays a single stroke.
	EventDraw
	// EventClearCanvas signals that the canvas was wiped.
	EventClearCanvas
	// EventError notifies a client about a validation error.
	EventError
)

// Event is sent to clients to describe what happened in a room.
type Event struct {
	Kind     EventKind
	Room     string
	Code     string
	Language string
	Strokes  []Stroke
	Members  []Member
	Chat     *ChatMessage
	Stroke   *Stroke
	Error    *CoreError
}
