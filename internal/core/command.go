package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom binds the connection to a room under a display name.
	CommandJoinRoom CommandKind = iota
	// CommandSendMessage broadcasts a chat message to the other room members.
	CommandSendMessage
	// CommandAIMessage broadcasts bot-originated content to the whole room.
	CommandAIMessage
	// CommandStartTyping marks a user as typing.
	CommandStartTyping
	// CommandStopTyping clears a user's typing state.
	CommandStopTyping
)

// Command represents an action requested by a client.
type Command struct {
	Kind    CommandKind
	Room    string
	User    string
	Message Message
}
