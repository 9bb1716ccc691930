package core

// PresenceBroadcaster emits membership snapshots and typing deltas to a
// room's connections.
type PresenceBroadcaster struct {
	groups *groupTable
}

func newPresenceBroadcaster(groups *groupTable) *PresenceBroadcaster {
	return &PresenceBroadcaster{groups: groups}
}

// AnnounceMembership sends the full current member list to everyone in
// the room. Full snapshots rather than deltas: receivers never have to
// merge concurrent updates.
func (p *PresenceBroadcaster) AnnounceMembership(roomID string, members []string) {
	p.groups.broadcast(roomID, &Event{
		Kind:  EventUsersUpdated,
		Room:  roomID,
		Users: members,
	}, nil)
}

// AnnounceTyping sends a start or stop delta to everyone in the room
// except the typer's own connection. Typing state is ephemeral; late
// joiners start from an empty typing set.
func (p *PresenceBroadcaster) AnnounceTyping(roomID, name string, isTyping bool, typer *Client) {
	kind := EventUserTyping
	if !isTyping {
		kind = EventUserStoppedTyping
	}
	p.groups.broadcast(roomID, &Event{
		Kind: kind,
		Room: roomID,
		User: name,
	}, typer)
}
