package http

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/wecode-dev/wecode-server/internal/core"
	"github.com/wecode-dev/wecode-server/internal/proto"
)

// inboundToCommand validates an inbound message and maps it to a core
// command. Validation failures come back as a proto.Error for the sending
// connection only; a decode failure is terminal for the connection.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(join.RoomID) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		if strings.TrimSpace(join.UserName) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "userName is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			Room:     join.RoomID,
			Name:     join.UserName,
			Language: join.Language,
		}, nil, nil

	case proto.InboundTypeCodeChange:
		var change proto.CodeChangeData
		if err := json.Unmarshal(inbound.Data, &change); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(change.RoomID) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandChangeCode,
			Room: change.RoomID,
			Code: change.Code,
		}, nil, nil

	case proto.InboundTypeLanguageChange:
		var change proto.LanguageChangeData
		if err := json.Unmarshal(inbound.Data, &change); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(change.RoomID) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandChangeLanguage,
			Room:     change.RoomID,
			Language: change.Language,
		}, nil, nil

	case proto.InboundTypeChatMessage:
		var chat proto.ChatMessageData
		if err := json.Unmarshal(inbound.Data, &chat); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(chat.RoomID) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		if strings.TrimSpace(chat.Message) == "" {
			return nil, &proto.Error{Code: core.ErrCodeEmptyMessage, Msg: "message is empty"}, nil
		}
		return &core.Command{
			Kind: core.CommandSendChat,
			Room: chat.RoomID,
			Name: chat.UserName,
			Text: chat.Message,
		}, nil, nil

	case proto.InboundTypeDraw:
		var draw proto.DrawData
		if err := json.Unmarshal(inbound.Data, &draw); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(draw.RoomID) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		stroke := strokeFromProto(draw.Data)
		return &core.Command{
			Kind:   core.CommandDraw,
			Room:   draw.RoomID,
			Stroke: &stroke,
		}, nil, nil

	case proto.InboundTypeClearCanvas:
		var ref proto.RoomRefData
		if err := json.Unmarshal(inbound.Data, &ref); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(ref.RoomID) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandClearCanvas,
			Room: ref.RoomID,
		}, nil, nil

	case proto.InboundTypeLeave:
		var ref proto.RoomRefData
		if err := json.Unmarshal(inbound.Data, &ref); err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(ref.RoomID) == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandLeaveRoom,
			Room: ref.RoomID,
		}, nil, nil

	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	out := proto.Outbound{Type: proto.OutboundTypeEvent, Room: event.Room}

	switch event.Kind {
	case core.EventCodeUpdate:
		out.Event = proto.EventCodeUpdate
		out.Data = event.Code
	case core.EventLanguageUpdate:
		out.Event = proto.EventLanguageUpdate
		out.Data = event.Language
	case core.EventCanvasUpdate:
		out.Event = proto.EventCanvasUpdate
		strokes := make([]proto.StrokeData, 0, len(event.Strokes))
		for _, s := range event.Strokes {
			strokes = append(strokes, strokeToProto(s))
		}
		out.Data = strokes
	case core.EventUserList:
		out.Event = proto.EventUserListUpdate
		members := make([]proto.MemberData, 0, len(event.Members))
		for _, m := range event.Members {
			members = append(members, proto.MemberData{
				SocketID: m.ConnectionID,
				UserName: m.Name,
			})
		}
		out.Data = members
	case core.EventChatMessage:
		out.Event = proto.EventChatMessage
		out.Data = proto.ChatBroadcast{
			UserName:  event.Chat.From,
			Message:   event.Chat.Text,
			Timestamp: event.Chat.At.Format(time.RFC3339),
		}
	case core.EventDraw:
		out.Event = proto.EventDraw
		out.Data = strokeToProto(*event.Stroke)
	case core.EventClearCanvas:
		out.Event = proto.EventClearCanvas
	case core.EventError:
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	}
	return out
}

func strokeFromProto(s proto.StrokeData) core.Stroke {
	stroke := core.Stroke{
		CurrentPoint: core.Point{X: s.CurrentPoint.X, Y: s.CurrentPoint.Y},
		Color:        s.Color,
		Width:        s.Width,
	}
	if s.PrevPoint != nil {
		stroke.PrevPoint = &core.Point{X: s.PrevPoint.X, Y: s.PrevPoint.Y}
	}
	return stroke
}

func strokeToProto(s core.Stroke) proto.StrokeData {
	data := proto.StrokeData{
		CurrentPoint: proto.PointData{X: s.CurrentPoint.X, Y: s.CurrentPoint.Y},
		Color:        s.Color,
		Width:        s.Width,
	}
	if s.PrevPoint != nil {
		data.PrevPoint = &proto.PointData{X: s.PrevPoint.X, Y: s.PrevPoint.Y}
	}
	return data
}
