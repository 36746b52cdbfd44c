package core

// Sink delivers events to connections. The in-process implementation backs
// it with per-client buffered channels; a send to a departed or slow
// connection is dropped, and disconnect cleanup reconciles the roster.
type Sink interface {
	// Unicast sends an event to one connection.
	Unicast(connID string, ev *Event)
	// Broadcast sends an event to every listed connection, optionally
	// skipping the sender.
	Broadcast(ev *Event, connIDs []string, exclude string)
}
