package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/avolkhin/relayhub/internal/config"
	"github.com/avolkhin/relayhub/internal/core"
	"github.com/avolkhin/relayhub/internal/proto"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	hub := core.NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := NewServer(hub, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func dialWS(t *testing.T, ts *httptest.Server, ctx context.Context) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func sendEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, eventType, data string) {
	t.Helper()

	err := wsjson.Write(ctx, conn, proto.Inbound{
		Type: eventType,
		Data: json.RawMessage(data),
	})
	if err != nil {
		t.Fatalf("write %s: %v", eventType, err)
	}
}

func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn) proto.Outbound {
	t.Helper()

	var out proto.Outbound
	if err := wsjson.Read(ctx, conn, &out); err != nil {
		t.Fatalf("read outbound: %v", err)
	}
	return out
}

// readEventOfType skips unrelated events (typically interleaved
// users-updated snapshots) until one of the wanted type arrives.
func readEventOfType(t *testing.T, ctx context.Context, conn *websocket.Conn, eventType string) proto.Outbound {
	t.Helper()

	for i := 0; i < 10; i++ {
		out := readEvent(t, ctx, conn)
		if out.Type == eventType {
			return out
		}
	}
	t.Fatalf("no %s event received", eventType)
	return proto.Outbound{}
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestRoomsEndpoint(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ts, ctx)
	sendEvent(t, ctx, conn, proto.InboundTypeJoinRoom, `{"roomId":"r1","displayName":"alice"}`)
	readEventOfType(t, ctx, conn, proto.OutboundTypeUsersUpdated)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms")
	if err != nil {
		t.Fatalf("rooms request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Rooms []core.RoomInfo `json:"rooms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode rooms: %v", err)
	}
	if len(body.Rooms) != 1 || body.Rooms[0].ID != "r1" || body.Rooms[0].Members != 1 {
		t.Fatalf("unexpected rooms payload: %+v", body.Rooms)
	}
}

func TestWebSocketJoinAndMessage(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	alice := dialWS(t, ts, ctx)
	bob := dialWS(t, ts, ctx)

	sendEvent(t, ctx, alice, proto.InboundTypeJoinRoom, `{"roomId":"r1","displayName":"alice"}`)
	out := readEventOfType(t, ctx, alice, proto.OutboundTypeUsersUpdated)
	users, ok := out.Data.([]any)
	if !ok || len(users) != 1 || users[0] != "alice" {
		t.Fatalf("unexpected first snapshot: %+v", out.Data)
	}

	sendEvent(t, ctx, bob, proto.InboundTypeJoinRoom, `{"roomId":"r1","displayName":"bob"}`)
	out = readEventOfType(t, ctx, bob, proto.OutboundTypeUsersUpdated)
	users, ok = out.Data.([]any)
	if !ok || len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
		t.Fatalf("unexpected second snapshot: %+v", out.Data)
	}

	sendEvent(t, ctx, alice, proto.InboundTypeSendMessage, `{"roomId":"r1","message":{"id":"m1","text":"hi"}}`)
	out = readEventOfType(t, ctx, bob, proto.OutboundTypeMessage)
	msg, ok := out.Data.(map[string]any)
	if !ok || msg["id"] != "m1" || msg["text"] != "hi" {
		t.Fatalf("message payload must round-trip verbatim: %+v", out.Data)
	}
}

func TestWebSocketTypingDelta(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	alice := dialWS(t, ts, ctx)
	bob := dialWS(t, ts, ctx)

	sendEvent(t, ctx, alice, proto.InboundTypeJoinRoom, `{"roomId":"r1","displayName":"alice"}`)
	readEventOfType(t, ctx, alice, proto.OutboundTypeUsersUpdated)
	sendEvent(t, ctx, bob, proto.InboundTypeJoinRoom, `{"roomId":"r1","displayName":"bob"}`)
	readEventOfType(t, ctx, bob, proto.OutboundTypeUsersUpdated)

	sendEvent(t, ctx, alice, proto.InboundTypeTyping, `{"roomId":"r1","displayName":"alice"}`)
	out := readEventOfType(t, ctx, bob, proto.OutboundTypeUserTyping)
	delta, ok := out.Data.(map[string]any)
	if !ok || delta["displayName"] != "alice" {
		t.Fatalf("unexpected typing delta: %+v", out.Data)
	}
}

func TestWebSocketRejectsUnknownType(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ts, ctx)
	sendEvent(t, ctx, conn, "teleport", `{}`)

	out := readEvent(t, ctx, conn)
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != core.ErrCodeBadRequest {
		t.Fatalf("expected bad_request error, got %+v", out)
	}
}

func TestWebSocketRejectsMessageWithoutID(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ts, ctx)
	sendEvent(t, ctx, conn, proto.InboundTypeJoinRoom, `{"roomId":"r1","displayName":"alice"}`)
	readEventOfType(t, ctx, conn, proto.OutboundTypeUsersUpdated)

	sendEvent(t, ctx, conn, proto.InboundTypeSendMessage, `{"roomId":"r1","message":{"text":"no id"}}`)
	out := readEvent(t, ctx, conn)
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != core.ErrCodeInvalidMessage {
		t.Fatalf("expected invalid_message error, got %+v", out)
	}
}
