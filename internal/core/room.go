package core

import "sort"

// Room aggregates everything tracked for one room id: the
// insertion-ordered member set, the message-id dedup window, and the set
// of users currently typing. All three live and die together.
type Room struct {
	ID string

	members []string
	present map[string]struct{}
	history *dedupWindow
	typing  map[string]struct{}
}

func newRoom(id string) *Room {
	return &Room{
		ID:      id,
		present: make(map[string]struct{}),
		history: newDedupWindow(),
		typing:  make(map[string]struct{}),
	}
}

func (r *Room) addMember(name string) {
	if _, ok := r.present[name]; ok {
		return
	}
	r.present[name] = struct{}{}
	r.members = append(r.members, name)
}

func (r *Room) removeMember(name string) {
	if _, ok := r.present[name]; !ok {
		return
	}
	delete(r.present, name)
	for i, m := range r.members {
		if m == name {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
}

// Members returns the member list in join order.
func (r *Room) Members() []string {
	out := make([]string, len(r.members))
	copy(out, r.members)
	return out
}

// LeaveResult reports the state of a room after a member left.
type LeaveResult struct {
	Destroyed bool
	Members   []string
	WasTyping bool
}

// RoomInfo is a read-only view of one room for the ops surface.
type RoomInfo struct {
	ID      string `json:"id"`
	Members int    `json:"members"`
	Typing  int    `json:"typing"`
}

// RoomStore owns every live Room, keyed by room id. A room exists exactly
// while it has members: Join creates it for the first member and Leave
// destroys it, with all its sub-state, when the last member goes.
// Not safe for concurrent use; the hub serializes all access.
type RoomStore struct {
	rooms map[string]*Room
}

// NewRoomStore constructs an empty store.
func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]*Room)}
}

// Join adds name to the room, creating the room if needed, and returns
// the updated member list. Joining twice under the same name is a no-op
// on membership.
func (s *RoomStore) Join(roomID, name string) []string {
	room, ok := s.rooms[roomID]
	if !ok {
		room = newRoom(roomID)
		s.rooms[roomID] = room
	}
	room.addMember(name)
	return room.Members()
}

// Leave removes name from the room's member and typing sets. When
// membership reaches zero the room is dropped atomically, dedup window
// and typing set included. Leaving a room that no longer exists reports
// it as destroyed.
func (s *RoomStore) Leave(roomID, name string) LeaveResult {
	room, ok := s.rooms[roomID]
	if !ok {
		return LeaveResult{Destroyed: true}
	}

	_, wasTyping := room.typing[name]
	delete(room.typing, name)
	room.removeMember(name)

	if len(room.present) == 0 {
		delete(s.rooms, roomID)
		return LeaveResult{Destroyed: true, WasTyping: wasTyping}
	}
	return LeaveResult{Members: room.Members(), WasTyping: wasTyping}
}

// RecordIfNew reports whether messageID was absent from the room's dedup
// window and records it. The caller must suppress delivery on false. An
// unknown room swallows the id: everyone already left, so there is
// nobody to deliver to.
func (s *RoomStore) RecordIfNew(roomID, messageID string) bool {
	room, ok := s.rooms[roomID]
	if !ok {
		return false
	}
	return room.history.recordIfNew(messageID)
}

// SetTyping adds or removes name from the room's typing set. Stale
// events for a room that is already gone are ignored; a client racing
// its own disconnect may still fire one.
func (s *RoomStore) SetTyping(roomID, name string, isTyping bool) {
	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	if isTyping {
		room.typing[name] = struct{}{}
	} else {
		delete(room.typing, name)
	}
}

// Exists reports whether the room currently has members.
func (s *RoomStore) Exists(roomID string) bool {
	_, ok := s.rooms[roomID]
	return ok
}

// Snapshot returns a summary of every live room, ordered by room id.
func (s *RoomStore) Snapshot() []RoomInfo {
	out := make([]RoomInfo, 0, len(s.rooms))
	for id, room := range s.rooms {
		out = append(out, RoomInfo{
			ID:      id,
			Members: len(room.present),
			Typing:  len(room.typing),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
