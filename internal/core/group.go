package core

// group is the transport-side broadcast set for one room: the physical
// connections that currently receive its events. Distinct from the
// display-name membership the RoomStore tracks; two connections sharing
// a display name are one member but two recipients.
type group struct {
	clients map[*Client]struct{}
}

// groupTable maps room ids to their broadcast groups. Groups follow room
// lifecycle: created on first join, dropped when the last connection
// leaves. Not safe for concurrent use; the hub serializes all access.
type groupTable struct {
	groups map[string]*group
}

func newGroupTable() *groupTable {
	return &groupTable{groups: make(map[string]*group)}
}

func (t *groupTable) join(roomID string, c *Client) {
	g, ok := t.groups[roomID]
	if !ok {
		g = &group{clients: make(map[*Client]struct{})}
		t.groups[roomID] = g
	}
	g.clients[c] = struct{}{}
}

func (t *groupTable) leave(roomID string, c *Client) {
	g, ok := t.groups[roomID]
	if !ok {
		return
	}
	delete(g.clients, c)
	if len(g.clients) == 0 {
		delete(t.groups, roomID)
	}
}

// broadcast sends ev to every connection in the room except skip.
func (t *groupTable) broadcast(roomID string, ev *Event, skip *Client) {
	g, ok := t.groups[roomID]
	if !ok {
		return
	}
	for c := range g.clients {
		if c == skip {
			continue
		}
		select {
		case c.Events <- ev:
		default:
			// Drop if slow consumer.
		}
	}
}
