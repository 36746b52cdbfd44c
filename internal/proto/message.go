package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin           = "join"
	InboundTypeCodeChange     = "codeChange"
	InboundTypeLanguageChange = "languageChange"
	InboundTypeChatMessage    = "chatMessage"
	InboundTypeDraw           = "draw"
	InboundTypeClearCanvas    = "clearCanvas"
	InboundTypeLeave          = "leave"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventCodeUpdate     = "codeUpdate"
	EventLanguageUpdate = "languageUpdate"
	EventCanvasUpdate   = "canvasUpdate"
	EventUserListUpdate = "userListUpdate"
	EventChatMessage    = "chatMessage"
	EventDraw           = "draw"
	EventClearCanvas    = "clearCanvas"
)

// JoinData requests to join a room, optionally naming a language for the
// room's starter template.
type JoinData struct {
	RoomID   string `json:"roomId"`
	UserName string `json:"userName"`
	Language string `json:"language,omitempty"`
}

// CodeChangeData overwrites the room's shared code buffer.
type CodeChangeData struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

// LanguageChangeData switches the room's target language.
type LanguageChangeData struct {
	RoomID   string `json:"roomId"`
	Language string `json:"language"`
}

// ChatMessageData is a chat message from the client. The broadcast payload
// adds a server-assigned timestamp.
type ChatMessageData struct {
	RoomID   string `json:"roomId"`
	UserName string `json:"userName"`
	Message  string `json:"message"`
}

// DrawData is a single stroke from the client.
type DrawData struct {
	RoomID string     `json:"roomId"`
	Data   StrokeData `json:"data"`
}

// RoomRefData carries just a room reference (clearCanvas, leave).
type RoomRefData struct {
	RoomID string `json:"roomId"`
}

// PointData is a canvas coordinate.
type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StrokeData is a drawing segment. PrevPoint is null for the first segment
// of a line.
type StrokeData struct {
	PrevPoint    *PointData `json:"prevPoint"`
	CurrentPoint PointData  `json:"currentPoint"`
	Color        string     `json:"color"`
	Width        float64    `json:"width"`
}

// MemberData is one roster entry in userListUpdate payloads.
type MemberData struct {
	SocketID string `json:"socketId"`
	UserName string `json:"userName"`
}

// ChatBroadcast is the relayed chat payload; Timestamp is ISO 8601,
// assigned server-side at receipt.
type ChatBroadcast struct {
	UserName  string `json:"userName"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Room  string `json:"roomId,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
