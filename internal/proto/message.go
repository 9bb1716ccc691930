package proto

import "encoding/json"

// Inbound is the envelope for events coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom      = "join-room"
	InboundTypeSendMessage   = "send-message"
	InboundTypeAIMessage     = "ai-message"
	InboundTypeTyping        = "typing"
	InboundTypeStoppedTyping = "stopped-typing"

	OutboundTypeUsersUpdated      = "users-updated"
	OutboundTypeMessage           = "message"
	OutboundTypeAIResponse        = "ai-response"
	OutboundTypeUserTyping        = "user-typing"
	OutboundTypeUserStoppedTyping = "user-stopped-typing"
	OutboundTypeError             = "error"
)

// JoinRoomData requests to join a room under a display name.
type JoinRoomData struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

// MessageData carries a chat or AI message. The message object is opaque
// beyond its id and is re-broadcast verbatim.
type MessageData struct {
	RoomID  string          `json:"roomId"`
	Message json.RawMessage `json:"message"`
}

// TypingData marks a user as typing or stopped typing.
type TypingData struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

// Outbound is the envelope for events sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// TypingEvent identifies the user a typing delta is about.
type TypingEvent struct {
	DisplayName string `json:"displayName"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
