package core

// Client is one transport connection as seen by the core layer. The
// transport pushes decoded commands into Commands and drains Events back
// to the wire; the hub owns everything else about the connection.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
		done:     make(chan struct{}),
	}
}
