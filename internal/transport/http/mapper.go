package http

import (
	"encoding/json"
	"fmt"

	"github.com/avolkhin/relayhub/internal/core"
	"github.com/avolkhin/relayhub/internal/proto"
)

// messageID extracts the client-generated id from an otherwise opaque
// message object.
type messageID struct {
	ID string `json:"id"`
}

// inboundToCommand maps a wire event to a hub command. A nil command
// with a non-nil proto error means the event was rejected at the
// protocol level; the connection stays open.
func inboundToCommand(in proto.Inbound) (*core.Command, *proto.Error) {
	switch in.Type {
	case proto.InboundTypeJoinRoom:
		var data proto.JoinRoomData
		if err := json.Unmarshal(in.Data, &data); err != nil {
			return nil, malformedData(in.Type)
		}
		if data.RoomID == "" || data.DisplayName == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId and displayName are required"}
		}
		return &core.Command{Kind: core.CommandJoinRoom, Room: data.RoomID, User: data.DisplayName}, nil

	case proto.InboundTypeSendMessage, proto.InboundTypeAIMessage:
		var data proto.MessageData
		if err := json.Unmarshal(in.Data, &data); err != nil {
			return nil, malformedData(in.Type)
		}
		var id messageID
		if err := json.Unmarshal(data.Message, &id); err != nil || id.ID == "" {
			return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "message id is required"}
		}
		kind := core.CommandSendMessage
		if in.Type == proto.InboundTypeAIMessage {
			kind = core.CommandAIMessage
		}
		return &core.Command{
			Kind:    kind,
			Room:    data.RoomID,
			Message: core.Message{ID: id.ID, Payload: data.Message},
		}, nil

	case proto.InboundTypeTyping, proto.InboundTypeStoppedTyping:
		var data proto.TypingData
		if err := json.Unmarshal(in.Data, &data); err != nil {
			return nil, malformedData(in.Type)
		}
		kind := core.CommandStartTyping
		if in.Type == proto.InboundTypeStoppedTyping {
			kind = core.CommandStopTyping
		}
		return &core.Command{Kind: kind, Room: data.RoomID, User: data.DisplayName}, nil

	default:
		return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: fmt.Sprintf("unknown event type %q", in.Type)}
	}
}

func malformedData(eventType string) *proto.Error {
	return &proto.Error{Code: core.ErrCodeBadRequest, Msg: fmt.Sprintf("malformed %s data", eventType)}
}

// outboundFromEvent maps a hub event to its wire representation.
func outboundFromEvent(ev *core.Event) proto.Outbound {
	switch ev.Kind {
	case core.EventUsersUpdated:
		return proto.Outbound{Type: proto.OutboundTypeUsersUpdated, Data: ev.Users}
	case core.EventMessage:
		return proto.Outbound{Type: proto.OutboundTypeMessage, Data: ev.Message.Payload}
	case core.EventAIResponse:
		return proto.Outbound{Type: proto.OutboundTypeAIResponse, Data: ev.Message.Payload}
	case core.EventUserTyping:
		return proto.Outbound{Type: proto.OutboundTypeUserTyping, Data: proto.TypingEvent{DisplayName: ev.User}}
	case core.EventUserStoppedTyping:
		return proto.Outbound{Type: proto.OutboundTypeUserStoppedTyping, Data: proto.TypingEvent{DisplayName: ev.User}}
	case core.EventError:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: ev.Error.Code, Msg: ev.Error.Message}}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: core.ErrCodeBadRequest, Msg: "unmappable event"}}
	}
}
