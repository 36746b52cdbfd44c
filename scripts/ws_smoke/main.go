// Command ws_smoke dials a running wecode server, joins a room, pushes a
// code change and a chat message, and prints every event it receives.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/wecode-dev/wecode-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:5000/ws", "WebSocket address")
	user := flag.String("user", "tester", "display name for the join")
	room := flag.String("room", "smoke-room", "room id")
	language := flag.String("language", "python", "language for the room template")
	code := flag.String("code", "print('smoke')", "code change to send")
	text := flag.String("text", "hello from smoke test", "chat message to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(typ string, data any) error {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", typ, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: raw}); err != nil {
			return fmt.Errorf("send %s: %w", typ, err)
		}
		return nil
	}

	if err := send(proto.InboundTypeJoin, proto.JoinData{
		RoomID: *room, UserName: *user, Language: *language,
	}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeCodeChange, proto.CodeChangeData{
		RoomID: *room, Code: *code,
	}); err != nil {
		return err
	}
	if err := send(proto.InboundTypeChatMessage, proto.ChatMessageData{
		RoomID: *room, UserName: *user, Message: *text,
	}); err != nil {
		return err
	}

	for {
		var out proto.Outbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			if ctx.Err() != nil {
				return nil // timed out after printing what we got
			}
			return fmt.Errorf("read: %w", err)
		}
		pretty, _ := json.Marshal(out)
		fmt.Printf("<- %s\n", pretty)
	}
}
