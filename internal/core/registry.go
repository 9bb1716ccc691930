package core

// Binding is the (room, display name) pair a connection is attached to.
type Binding struct {
	Room string
	Name string
}

// ConnectionRegistry tracks the room binding of each live connection.
// Not safe for concurrent use; the hub serializes all access.
type ConnectionRegistry struct {
	bindings map[string]Binding
}

// NewConnectionRegistry constructs an empty registry.
func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{bindings: make(map[string]Binding)}
}

// Bind records the binding for a connection, overwriting any prior one.
// Display-name uniqueness is the room store's concern, not the registry's.
func (r *ConnectionRegistry) Bind(connID, room, name string) {
	r.bindings[connID] = Binding{Room: room, Name: name}
}

// Lookup returns the current binding, if any.
func (r *ConnectionRegistry) Lookup(connID string) (Binding, bool) {
	b, ok := r.bindings[connID]
	return b, ok
}

// Unbind removes and returns the prior binding. The second return is
// false when the connection never joined a room.
func (r *ConnectionRegistry) Unbind(connID string) (Binding, bool) {
	b, ok := r.bindings[connID]
	if ok {
		delete(r.bindings, connID)
	}
	return b, ok
}
