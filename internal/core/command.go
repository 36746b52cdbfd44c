package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the client to a room and bootstraps its state.
	CommandJoinRoom CommandKind = iota
	// CommandChangeCode overwrites the room's shared code buffer.
	CommandChangeCode
	// CommandChangeLanguage switches the room's target language.
	CommandChangeLanguage
	// CommandSendChat relays a chat message to room participants.
	CommandSendChat
	// CommandDraw appends a stroke to the room's canvas history.
	CommandDraw
	// CommandClearCanvas empties the room's canvas history.
	CommandClearCanvas
	// CommandLeaveRoom unsubscribes the client from a room.
	CommandLeaveRoom
)

var commandNames = map[CommandKind]string{
	CommandJoinRoom:       "join",
	CommandChangeCode:     "codeChange",
	CommandChangeLanguage: "languageChange",
	CommandSendChat:       "chatMessage",
	CommandDraw:           "draw",
	CommandClearCanvas:    "clearCanvas",
	CommandLeaveRoom:      "leave",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Room     string
	Name     string // display name, set on join and chat
	Code     string
	Language string
	Text     string
	Stroke   *Stroke
}
