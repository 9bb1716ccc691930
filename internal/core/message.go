package core

import "encoding/json"

// Message is a chat message as seen by the core. The payload is carried
// opaquely and re-broadcast verbatim; only the client-generated ID takes
// part in deduplication, and nothing is retained past the dedup window.
type Message struct {
	ID      string
	Payload json.RawMessage
}
