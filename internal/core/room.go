package core

import (
	"strings"
	"sync"
	"time"
)

// room holds the live state of one collaborative session. All fields are
// guarded by mu; mutations for the same room serialize on it while
// different rooms proceed in parallel.
type room struct {
	mu       sync.Mutex
	id       string
	code     string
	language string
	members  map[string]Member // keyed by connection ID, upsert-idempotent
	order    []string          // connection IDs in join order
	strokes  []Stroke

	// dead marks a room that was deleted from the store while another
	// goroutine still held a pointer to it.
	dead bool
}

func newRoom(id, language string) *room {
	if language == "" {
		language = DefaultLanguage
	}
	return &room{
		id:       id,
		code:     TemplateFor(language),
		language: language,
		members:  make(map[string]Member),
	}
}

// upsertMember adds or refreshes a member. Duplicate joins from the same
// connection never create a second entry.
func (r *room) upsertMember(m Member) {
	if _, exists := r.members[m.ConnectionID]; !exists {
		r.order = append(r.order, m.ConnectionID)
	}
	r.members[m.ConnectionID] = m
}

// removeMember deletes a member; returns false if it was not present.
func (r *room) removeMember(connID string) bool {
	if _, exists := r.members[connID]; !exists {
		return false
	}
	delete(r.members, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// memberList returns the roster in join order.
func (r *room) memberList() []Member {
	out := make([]Member, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.members[id])
	}
	return out
}

// memberIDs returns the connection IDs in join order.
func (r *room) memberIDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// strokeHistory returns a copy of the stroke log in insertion order.
func (r *room) strokeHistory() []Stroke {
	out := make([]Stroke, len(r.strokes))
	copy(out, r.strokes)
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func newChatMessage(from, text string) ChatMessage {
	return ChatMessage{From: from, Text: text, At: time.Now().UTC()}
}
