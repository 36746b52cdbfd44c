package core

import "sync"

// DefaultMaxStrokes bounds the canvas history kept per room. The oldest
// strokes are dropped beyond the cap so a long-lived room cannot grow
// without bound.
const DefaultMaxStrokes = 10000

// RoomStore owns the in-memory map of live rooms. Rooms are created on
// first join and destroyed the instant their member list empties; every
// mutation targeting an unknown room is a silent no-op, because the room
// may have been deleted by a racing last-member-leave after the client
// observed it.
type RoomStore struct {
	mu         sync.RWMutex
	rooms      map[string]*room
	maxStrokes int
}

// NewRoomStore creates an empty store. maxStrokes <= 0 selects
// DefaultMaxStrokes.
func NewRoomStore(maxStrokes int) *RoomStore {
	if maxStrokes <= 0 {
		maxStrokes = DefaultMaxStrokes
	}
	return &RoomStore{
		rooms:      make(map[string]*room),
		maxStrokes: maxStrokes,
	}
}

// Snapshot is the room state delivered to a joining client.
type Snapshot struct {
	Code     string
	Language string
	Strokes  []Stroke
}

// JoinResult describes the outcome of a join: the bootstrap snapshot for
// the joiner plus the roster and recipient set for the room broadcast.
type JoinResult struct {
	Created   bool
	Snapshot  Snapshot
	Members   []Member
	MemberIDs []string
}

// Join upserts the member into the room, creating and seeding the room if
// it does not exist. Blank room IDs are rejected. Creation and
// first-member-add happen atomically under the room lock, so no observer
// ever sees the room with zero members.
func (s *RoomStore) Join(roomID string, m Member, requestedLanguage string) (JoinResult, bool) {
	if blank(roomID) {
		return JoinResult{}, false
	}

	for {
		s.mu.Lock()
		rm, exists := s.rooms[roomID]
		if !exists {
			rm = newRoom(roomID, requestedLanguage)
			s.rooms[roomID] = rm
		}
		s.mu.Unlock()

		rm.mu.Lock()
		if rm.dead {
			// Lost a race with delete-on-empty; retry against a fresh room.
			rm.mu.Unlock()
			continue
		}
		rm.upsertMember(m)
		res := JoinResult{
			Created: !exists,
			Snapshot: Snapshot{
				Code:     rm.code,
				Language: rm.language,
				Strokes:  rm.strokeHistory(),
			},
			Members:   rm.memberList(),
			MemberIDs: rm.memberIDs(),
		}
		rm.mu.Unlock()
		return res, true
	}
}

// ChangeCode overwrites the room's code buffer, last writer wins. Returns
// the broadcast recipient set, or ok=false if the room no longer exists.
func (s *RoomStore) ChangeCode(roomID, code string) ([]string, bool) {
	rm, ok := s.lookup(roomID)
	if !ok {
		return nil, false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.dead {
		return nil, false
	}
	rm.code = code
	return rm.memberIDs(), true
}

// ChangeLanguage overwrites the room's language tag, last writer wins.
func (s *RoomStore) ChangeLanguage(roomID, language string) ([]string, bool) {
	rm, ok := s.lookup(roomID)
	if !ok {
		return nil, false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.dead {
		return nil, false
	}
	rm.language = language
	return rm.memberIDs(), true
}

// AppendChatMessage stamps a server-side timestamp and returns the message
// for relay. Blank bodies and unknown rooms are no-ops. Messages are not
// stored; late joiners receive no chat history.
func (s *RoomStore) AppendChatMessage(roomID, from, text string) (ChatMessage, []string, bool) {
	if blank(text) {
		return ChatMessage{}, nil, false
	}
	rm, ok := s.lookup(roomID)
	if !ok {
		return ChatMessage{}, nil, false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.dead {
		return ChatMessage{}, nil, false
	}
	return newChatMessage(from, text), rm.memberIDs(), true
}

// AppendStroke appends to the room's canvas history, dropping the oldest
// stroke once the cap is reached.
func (s *RoomStore) AppendStroke(roomID string, stroke Stroke) ([]string, bool) {
	rm, ok := s.lookup(roomID)
	if !ok {
		return nil, false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.dead {
		return nil, false
	}
	rm.strokes = append(rm.strokes, stroke)
	if len(rm.strokes) > s.maxStrokes {
		rm.strokes = rm.strokes[len(rm.strokes)-s.maxStrokes:]
	}
	return rm.memberIDs(), true
}

// ClearCanvas empties the stroke history without touching the rest of the
// room state.
func (s *RoomStore) ClearCanvas(roomID string) ([]string, bool) {
	rm, ok := s.lookup(roomID)
	if !ok {
		return nil, false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.dead {
		return nil, false
	}
	rm.strokes = nil
	return rm.memberIDs(), true
}

// RemoveResult describes the outcome of a member removal.
type RemoveResult struct {
	Members   []Member
	MemberIDs []string
	Deleted   bool
}

// RemoveMember drops the member from the room. When the last member
// leaves, the room and all of its state are discarded immediately.
// Returns ok=false if the room or the member was already gone.
func (s *RoomStore) RemoveMember(roomID, connID string) (RemoveResult, bool) {
	rm, ok := s.lookup(roomID)
	if !ok {
		return RemoveResult{}, false
	}

	rm.mu.Lock()
	if rm.dead || !rm.removeMember(connID) {
		rm.mu.Unlock()
		return RemoveResult{}, false
	}
	res := RemoveResult{
		Members:   rm.memberList(),
		MemberIDs: rm.memberIDs(),
	}
	if len(rm.members) == 0 {
		rm.dead = true
		res.Deleted = true
	}
	rm.mu.Unlock()

	if res.Deleted {
		s.mu.Lock()
		// Only delete the exact room we marked dead; a concurrent join may
		// already have replaced it under the same ID.
		if cur, exists := s.rooms[roomID]; exists && cur == rm {
			delete(s.rooms, roomID)
		}
		s.mu.Unlock()
	}
	return res, true
}

// RoomStats is a read-only view of a room for the REST surface.
type RoomStats struct {
	RoomID      string
	Language    string
	MemberCount int
	StrokeCount int
}

// Stats returns occupancy info for a room, ok=false if it does not exist.
func (s *RoomStore) Stats(roomID string) (RoomStats, bool) {
	rm, ok := s.lookup(roomID)
	if !ok {
		return RoomStats{}, false
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.dead {
		return RoomStats{}, false
	}
	return RoomStats{
		RoomID:      roomID,
		Language:    rm.language,
		MemberCount: len(rm.members),
		StrokeCount: len(rm.strokes),
	}, true
}

// Count returns the number of live rooms.
func (s *RoomStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

func (s *RoomStore) lookup(roomID string) (*room, bool) {
	s.mu.RLock()
	rm, ok := s.rooms[roomID]
	s.mu.RUnlock()
	return rm, ok
}
