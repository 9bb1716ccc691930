package core

import (
	"context"

	"github.com/rs/zerolog"
)

type envelope struct {
	client *Client
	cmd    *Command
}

// Hub is the composition root for the chat core. A single Run goroutine
// owns the registry, room store, and broadcast groups; every command,
// disconnect, and snapshot query is processed to completion before the
// next, so the components themselves need no locking.
type Hub struct {
	registry *ConnectionRegistry
	store    *RoomStore
	groups   *groupTable
	presence *PresenceBroadcaster
	router   *MessageRouter

	inbox      chan envelope
	register   chan *Client
	unregister chan *Client
	snapshots  chan chan []RoomInfo

	log *zerolog.Logger
}

// NewHub creates a hub with empty state. A nil logger disables logging.
func NewHub(logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	store := NewRoomStore()
	groups := newGroupTable()

	return &Hub{
		registry:   NewConnectionRegistry(),
		store:      store,
		groups:     groups,
		presence:   newPresenceBroadcaster(groups),
		router:     newMessageRouter(store, groups),
		inbox:      make(chan envelope, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		snapshots:  make(chan chan []RoomInfo),
		log:        logger,
	}
}

// RegisterClient announces a new transport connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient tells the hub a transport connection has gone away.
// Safe to call for clients that never joined a room.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Snapshot returns a point-in-time view of every live room. The query is
// answered by the hub goroutine, so callers never touch room state
// directly.
func (h *Hub) Snapshot(ctx context.Context) ([]RoomInfo, error) {
	reply := make(chan []RoomInfo, 1)
	select {
	case h.snapshots <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case rooms := <-reply:
		return rooms, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run processes hub traffic until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			go h.pump(ctx, c)
			h.log.Debug().Str("conn_id", c.ID).Msg("connection registered")
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case env := <-h.inbox:
			h.handleCommand(env.client, env.cmd)
		case reply := <-h.snapshots:
			reply <- h.store.Snapshot()
		case <-ctx.Done():
			return
		}
	}
}

// pump forwards one client's commands into the shared inbox, preserving
// per-connection ordering.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.inbox <- envelope{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		h.handleJoin(c, cmd.Room, cmd.User)
	case CommandSendMessage:
		if err := h.router.RouteUserMessage(cmd.Room, cmd.Message, c); err != nil {
			h.sendError(c, ErrCodeInvalidMessage, err.Error())
		}
	case CommandAIMessage:
		if err := h.router.RouteSystemMessage(cmd.Room, cmd.Message); err != nil {
			h.sendError(c, ErrCodeInvalidMessage, err.Error())
		}
	case CommandStartTyping:
		h.handleTyping(c, cmd.Room, cmd.User, true)
	case CommandStopTyping:
		h.handleTyping(c, cmd.Room, cmd.User, false)
	}
}

func (h *Hub) handleJoin(c *Client, roomID, name string) {
	if roomID == "" || name == "" {
		h.sendError(c, ErrCodeBadRequest, "roomId and displayName are required")
		return
	}
	if prev, bound := h.registry.Lookup(c.ID); bound {
		if prev.Room != roomID || prev.Name != name {
			// Re-binding to another room is unsupported; the connection
			// must be closed and reopened.
			h.sendError(c, ErrCodeAlreadyBound, ErrAlreadyBound.Error())
			return
		}
		// Identical join resent: harmless, fall through and re-announce.
	}

	members := h.store.Join(roomID, name)
	h.registry.Bind(c.ID, roomID, name)
	h.groups.join(roomID, c)
	h.presence.AnnounceMembership(roomID, members)

	h.log.Info().Str("room", roomID).Str("user", name).Msg("user joined room")
}

func (h *Hub) handleTyping(c *Client, roomID, name string, isTyping bool) {
	h.store.SetTyping(roomID, name, isTyping)
	h.presence.AnnounceTyping(roomID, name, isTyping, c)
}

func (h *Hub) handleDisconnect(c *Client) {
	select {
	case <-c.done:
	default:
		close(c.done)
	}

	binding, ok := h.registry.Unbind(c.ID)
	if !ok {
		// Disconnected before ever joining a room.
		h.log.Debug().Str("conn_id", c.ID).Msg("connection closed")
		return
	}

	// The departing connection stops receiving before anything is
	// announced to the remaining members.
	h.groups.leave(binding.Room, c)
	result := h.store.Leave(binding.Room, binding.Name)

	// A disconnected user must never appear still typing: the stop delta
	// goes out before the membership update.
	if result.WasTyping {
		h.presence.AnnounceTyping(binding.Room, binding.Name, false, c)
	}

	if result.Destroyed {
		h.log.Info().Str("room", binding.Room).Str("user", binding.Name).Msg("last user left, room destroyed")
		return
	}

	h.presence.AnnounceMembership(binding.Room, result.Members)
	h.log.Info().Str("room", binding.Room).Str("user", binding.Name).Msg("user left room")
}

func (h *Hub) sendError(c *Client, code, msg string) {
	ev := &Event{Kind: EventError, Error: coreError(code, msg)}
	select {
	case c.Events <- ev:
	default:
	}
}
