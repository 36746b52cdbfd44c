package core

import "sync"

// Registry tracks which rooms each live connection has joined, so that a
// disconnect can cascade into membership removal in every one of them.
type Registry struct {
	mu    sync.Mutex
	conns map[string]map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]map[string]struct{})}
}

// Add registers a connection with no room subscriptions yet.
func (r *Registry) Add(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[connID]; !ok {
		r.conns[connID] = make(map[string]struct{})
	}
}

// Join records a room subscription for the connection.
func (r *Registry) Join(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rooms, ok := r.conns[connID]
	if !ok {
		rooms = make(map[string]struct{})
		r.conns[connID] = rooms
	}
	rooms[roomID] = struct{}{}
}

// Leave drops a single room subscription.
func (r *Registry) Leave(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rooms, ok := r.conns[connID]; ok {
		delete(rooms, roomID)
	}
}

// Remove forgets the connection and returns the rooms it had joined.
// Calling it twice for the same connection returns nil the second time,
// which keeps disconnect handling idempotent.
func (r *Registry) Remove(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	rooms, ok := r.conns[connID]
	if !ok {
		return nil
	}
	delete(r.conns, connID)
	out := make([]string, 0, len(rooms))
	for roomID := range rooms {
		out = append(out, roomID)
	}
	return out
}
