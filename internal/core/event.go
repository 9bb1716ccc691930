package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventUsersUpdated carries the full member list of a room after a
	// join or leave.
	EventUsersUpdated EventKind = iota
	// EventMessage delivers a chat message to recipients other than the
	// sender.
	EventMessage
	// EventAIResponse delivers bot-originated content to the whole room.
	EventAIResponse
	// EventUserTyping notifies that a user started typing.
	EventUserTyping
	// EventUserStoppedTyping notifies that a user stopped typing.
	EventUserStoppedTyping
	// EventError notifies the client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Room    string
	User    string
	Users   []string // for EventUsersUpdated
	Message Message
	Error   *CoreError
}
