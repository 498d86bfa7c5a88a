package session

import (
	"sync"
	"sync/atomic"
)

// Registry is the shared map of live connections. Fan-out reads it every
// tick under a shared lock; the listener writes it on connect and
// disconnect under an exclusive lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ConnectionID]*Session
	nextID   atomic.Uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[ConnectionID]*Session),
	}
}

// Register creates a session for a freshly accepted connection.
func (r *Registry) Register(t Transport) *Session {
	s := &Session{
		ID:        ConnectionID(r.nextID.Add(1)),
		transport: t,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return s
}

// Remove drops a session. Called by the listener when the connection
// closes; a concurrent fan-out simply misses the entry, which is the
// expected disconnect race.
func (r *Registry) Remove(id ConnectionID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Get returns the session for a connection, or nil.
func (r *Registry) Get(id ConnectionID) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// ForEach calls fn for every session under the shared lock. fn must not
// register or remove sessions.
func (r *Registry) ForEach(fn func(*Session)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sessions {
		fn(s)
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
