package core

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestJoinCreatesRoomWithLanguageTemplate(t *testing.T) {
	s := NewRoomStore(0)

	res, ok := s.Join("abcd-1234", Member{ConnectionID: "a", Name: "alice"}, "python")
	if !ok {
		t.Fatal("join failed")
	}
	if !res.Created {
		t.Fatal("expected room to be created")
	}
	if res.Snapshot.Language != "python" {
		t.Fatalf("unexpected language: %q", res.Snapshot.Language)
	}
	if !strings.Contains(res.Snapshot.Code, "print(") {
		t.Fatalf("expected python template, got %q", res.Snapshot.Code)
	}
	if len(res.Members) != 1 || res.Members[0].Name != "alice" {
		t.Fatalf("unexpected members: %+v", res.Members)
	}
}

func TestJoinUnknownLanguageFallsBack(t *testing.T) {
	s := NewRoomStore(0)

	res, _ := s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "cobol")
	if res.Snapshot.Language != "cobol" {
		t.Fatalf("requested language tag should be kept, got %q", res.Snapshot.Language)
	}
	if res.Snapshot.Code != "// Start coding..." {
		t.Fatalf("expected generic placeholder, got %q", res.Snapshot.Code)
	}
}

func TestJoinEmptyLanguageUsesDefault(t *testing.T) {
	s := NewRoomStore(0)

	res, _ := s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "")
	if res.Snapshot.Language != DefaultLanguage {
		t.Fatalf("expected default language, got %q", res.Snapshot.Language)
	}
}

func TestJoinBlankRoomIDIsNoop(t *testing.T) {
	s := NewRoomStore(0)

	if _, ok := s.Join("  ", Member{ConnectionID: "a"}, ""); ok {
		t.Fatal("blank room id must not create a room")
	}
	if s.Count() != 0 {
		t.Fatalf("expected no rooms, got %d", s.Count())
	}
}

func TestDuplicateJoinIsIdempotent(t *testing.T) {
	s := NewRoomStore(0)

	s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "")
	res, _ := s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "")

	if len(res.Members) != 1 {
		t.Fatalf("duplicate join created duplicate members: %+v", res.Members)
	}
	if res.Created {
		t.Fatal("second join must not report creation")
	}
}

func TestLateJoinerSeesCurrentState(t *testing.T) {
	s := NewRoomStore(0)

	s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "python")
	s.ChangeCode("r", "print(1)")
	s.AppendStroke("r", Stroke{CurrentPoint: Point{X: 1, Y: 2}, Color: "#fff", Width: 3})
	s.AppendStroke("r", Stroke{CurrentPoint: Point{X: 3, Y: 4}, Color: "#000", Width: 1})

	res, _ := s.Join("r", Member{ConnectionID: "b", Name: "bob"}, "java")
	if res.Snapshot.Code != "print(1)" {
		t.Fatalf("late joiner got stale code: %q", res.Snapshot.Code)
	}
	if res.Snapshot.Language != "python" {
		t.Fatalf("late joiner must not reseed language: %q", res.Snapshot.Language)
	}
	if len(res.Snapshot.Strokes) != 2 || res.Snapshot.Strokes[0].CurrentPoint.X != 1 {
		t.Fatalf("late joiner got wrong stroke history: %+v", res.Snapshot.Strokes)
	}
}

func TestMutationsOnUnknownRoomAreSilentNoops(t *testing.T) {
	s := NewRoomStore(0)

	if _, ok := s.ChangeCode("ghost", "x"); ok {
		t.Fatal("ChangeCode on unknown room must be a no-op")
	}
	if _, ok := s.ChangeLanguage("ghost", "python"); ok {
		t.Fatal("ChangeLanguage on unknown room must be a no-op")
	}
	if _, _, ok := s.AppendChatMessage("ghost", "a", "hi"); ok {
		t.Fatal("AppendChatMessage on unknown room must be a no-op")
	}
	if _, ok := s.AppendStroke("ghost", Stroke{}); ok {
		t.Fatal("AppendStroke on unknown room must be a no-op")
	}
	if _, ok := s.ClearCanvas("ghost"); ok {
		t.Fatal("ClearCanvas on unknown room must be a no-op")
	}
	if _, ok := s.RemoveMember("ghost", "a"); ok {
		t.Fatal("RemoveMember on unknown room must be a no-op")
	}
	if s.Count() != 0 {
		t.Fatal("no-op mutations must not create rooms")
	}
}

func TestChatMessageServerTimestampAndBlankRejection(t *testing.T) {
	s := NewRoomStore(0)
	s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "")

	before := time.Now().Add(-time.Second)
	msg, ids, ok := s.AppendChatMessage("r", "alice", "hi")
	if !ok {
		t.Fatal("chat message rejected")
	}
	if msg.At.Before(before) || msg.At.After(time.Now().Add(time.Second)) {
		t.Fatalf("timestamp not server-assigned: %v", msg.At)
	}
	if len(ids) != 1 {
		t.Fatalf("unexpected recipients: %v", ids)
	}

	if _, _, ok := s.AppendChatMessage("r", "alice", "   \t"); ok {
		t.Fatal("whitespace-only message must be rejected")
	}
}

func TestClearCanvasEmptiesStrokes(t *testing.T) {
	s := NewRoomStore(0)
	s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "")
	s.AppendStroke("r", Stroke{CurrentPoint: Point{X: 1}})

	if _, ok := s.ClearCanvas("r"); !ok {
		t.Fatal("clear failed")
	}

	res, _ := s.Join("r", Member{ConnectionID: "b", Name: "bob"}, "")
	if len(res.Snapshot.Strokes) != 0 {
		t.Fatalf("joiner after clear received strokes: %+v", res.Snapshot.Strokes)
	}
}

func TestStrokeHistoryIsCapped(t *testing.T) {
	s := NewRoomStore(3)
	s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "")

	for i := 0; i < 5; i++ {
		s.AppendStroke("r", Stroke{CurrentPoint: Point{X: float64(i)}})
	}

	res, _ := s.Join("r", Member{ConnectionID: "b", Name: "bob"}, "")
	if len(res.Snapshot.Strokes) != 3 {
		t.Fatalf("expected capped history of 3, got %d", len(res.Snapshot.Strokes))
	}
	if res.Snapshot.Strokes[0].CurrentPoint.X != 2 {
		t.Fatalf("expected oldest strokes dropped, got %+v", res.Snapshot.Strokes)
	}
}

func TestRoomDeletedWhenLastMemberLeaves(t *testing.T) {
	s := NewRoomStore(0)
	s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "python")
	s.Join("r", Member{ConnectionID: "b", Name: "bob"}, "")
	s.ChangeCode("r", "print(1)")

	res, ok := s.RemoveMember("r", "a")
	if !ok || res.Deleted {
		t.Fatalf("unexpected removal result: %+v ok=%v", res, ok)
	}
	if len(res.Members) != 1 || res.Members[0].ConnectionID != "b" {
		t.Fatalf("unexpected remaining members: %+v", res.Members)
	}

	res, ok = s.RemoveMember("r", "b")
	if !ok || !res.Deleted {
		t.Fatalf("last leave must delete the room: %+v ok=%v", res, ok)
	}
	if s.Count() != 0 {
		t.Fatal("room still present after delete")
	}

	// A fresh join reconstructs defaults; no state survives.
	fresh, _ := s.Join("r", Member{ConnectionID: "c", Name: "carol"}, "python")
	if !fresh.Created {
		t.Fatal("expected a fresh room")
	}
	if fresh.Snapshot.Code == "print(1)" {
		t.Fatal("state leaked across room deletion")
	}
}

func TestRemoveMemberIsIdempotent(t *testing.T) {
	s := NewRoomStore(0)
	s.Join("r", Member{ConnectionID: "a", Name: "alice"}, "")
	s.Join("r", Member{ConnectionID: "b", Name: "bob"}, "")

	if _, ok := s.RemoveMember("r", "a"); !ok {
		t.Fatal("first removal failed")
	}
	if _, ok := s.RemoveMember("r", "a"); ok {
		t.Fatal("second removal must be a no-op")
	}
}

func TestConcurrentJoinsCreateRoomOnce(t *testing.T) {
	s := NewRoomStore(0)

	const n = 32
	var wg sync.WaitGroup
	created := make(chan bool, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, ok := s.Join("race", Member{ConnectionID: fmt.Sprintf("c%d", i)}, "python")
			if !ok {
				t.Error("join failed")
				return
			}
			created <- res.Created
		}(i)
	}
	wg.Wait()
	close(created)

	creations := 0
	for c := range created {
		if c {
			creations++
		}
	}
	if creations != 1 {
		t.Fatalf("room created %d times", creations)
	}

	stats, _ := s.Stats("race")
	if stats.MemberCount != n {
		t.Fatalf("expected %d members, got %d", n, stats.MemberCount)
	}
}

func TestConcurrentCodeChangesNeverInterleave(t *testing.T) {
	s := NewRoomStore(0)
	s.Join("r", Member{ConnectionID: "a"}, "")

	payloads := []string{
		strings.Repeat("x", 4096),
		strings.Repeat("y", 4096),
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.ChangeCode("r", p)
			}
		}(payloads[i])
	}
	wg.Wait()

	res, _ := s.Join("r", Member{ConnectionID: "b"}, "")
	if res.Snapshot.Code != payloads[0] && res.Snapshot.Code != payloads[1] {
		t.Fatal("observed a half-updated code buffer")
	}
}

func TestStats(t *testing.T) {
	s := NewRoomStore(0)

	if _, ok := s.Stats("r"); ok {
		t.Fatal("stats for unknown room must fail")
	}

	s.Join("r", Member{ConnectionID: "a"}, "java")
	s.AppendStroke("r", Stroke{})

	stats, ok := s.Stats("r")
	if !ok {
		t.Fatal("stats failed")
	}
	if stats.Language != "java" || stats.MemberCount != 1 || stats.StrokeCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
