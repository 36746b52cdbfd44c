package core

import "time"

// Member is a participant of a room.
type Member struct {
	ConnectionID string
	Name         string
}

// ChatMessage is a chat message relayed through a room. The timestamp is
// assigned server-side at receipt; messages are not retained after delivery.
type ChatMessage struct {
	From string
	Text string
	At   time.Time
}

// Point is a canvas coordinate.
type Point struct {
	X float64
	Y float64
}

// Stroke is a single drawing segment. PrevPoint is nil for the first
// segment of a line.
type Stroke struct {
	PrevPoint    *Point
	CurrentPoint Point
	Color        string
	Width        float64
}
