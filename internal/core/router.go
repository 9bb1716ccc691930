package core

// MessageRouter validates and deduplicates inbound messages and fans
// them out to the room's connections. User and system messages share the
// same per-room dedup gate and differ only in who is excluded.
type MessageRouter struct {
	store  *RoomStore
	groups *groupTable
}

func newMessageRouter(store *RoomStore, groups *groupTable) *MessageRouter {
	return &MessageRouter{store: store, groups: groups}
}

// RouteUserMessage delivers msg to every connection in the room except
// the sender, who already rendered an optimistic local copy. A message
// id already inside the dedup window is dropped silently. An empty id is
// a caller contract violation.
func (r *MessageRouter) RouteUserMessage(roomID string, msg Message, sender *Client) error {
	if msg.ID == "" {
		return ErrInvalidMessage
	}
	if !r.store.RecordIfNew(roomID, msg.ID) {
		return nil
	}
	r.groups.broadcast(roomID, &Event{
		Kind:    EventMessage,
		Room:    roomID,
		Message: msg,
	}, sender)
	return nil
}

// RouteSystemMessage delivers bot-originated content to every connection
// in the room; there is no sender to exclude. Same dedup gate as user
// messages, so a replayed system message is suppressed independently.
func (r *MessageRouter) RouteSystemMessage(roomID string, msg Message) error {
	if msg.ID == "" {
		return ErrInvalidMessage
	}
	if !r.store.RecordIfNew(roomID, msg.ID) {
		return nil
	}
	r.groups.broadcast(roomID, &Event{
		Kind:    EventAIResponse,
		Room:    roomID,
		Message: msg,
	}, nil)
	return nil
}
