package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/wecode-dev/wecode-server/internal/config"
	"github.com/wecode-dev/wecode-server/internal/core"
	"github.com/wecode-dev/wecode-server/internal/proto"
	"github.com/wecode-dev/wecode-server/internal/runner"
)

// fakeRunner returns canned results for exec handler tests.
type fakeRunner struct {
	result *runner.Result
	err    error
}

func (f *fakeRunner) Execute(_ context.Context, _, _, _ string) (*runner.Result, error) {
	return f.result, f.err
}

func startTestServer(t *testing.T, run runner.Runner) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.AllowedOrigin = "*"
	store := core.NewRoomStore(0)
	hub := core.NewHub(store, nil, nil)

	server := NewServer(hub, store, run, nil, &cfg, testLogger())
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func sendInbound(ctx context.Context, t *testing.T, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", typ, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: raw}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

// readUntilEvent reads outbound frames until one matches the event name.
func readUntilEvent(ctx context.Context, t *testing.T, conn *websocket.Conn, event string) rawOutbound {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		var out rawOutbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			t.Fatalf("read waiting for %q: %v", event, err)
		}
		if out.Event == event {
			return out
		}
	}
	t.Fatalf("event %q never received", event)
	return rawOutbound{}
}

func testLogger() *zerolog.Logger {
	nop := zerolog.Nop()
	return &nop
}

// rawOutbound mirrors proto.Outbound with raw payload bytes so tests can
// decode Data into the expected shape.
type rawOutbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Room  string          `json:"roomId"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}
