// Package session tracks per-connection state. Sessions are created by the
// listener when a connection is accepted and removed by the listener when it
// closes; the simulation goroutine only ever reads and mutates them through
// the registry, never removes them.
package session

import "github.com/Oipo/IdleBossHunter/internal/ecs"

// ConnectionID identifies a live connection. It is opaque and stable for the
// connection's lifetime.
type ConnectionID uint64

// Transport is a liveness-and-delivery capability for one connection. It
// carries no socket ownership: closing and cleanup belong to the listener.
type Transport interface {
	Send(data []byte) error
	Expired() bool
}

// Session is the per-connection authentication and authorization state.
// Fields other than ID and transport are only touched by the simulation
// goroutine, inside handlers.
type Session struct {
	ID         ConnectionID
	Username   string
	Playing    bool
	GameMaster bool

	// Entity is the character entity in the world while Playing.
	Entity ecs.EntityID

	transport Transport
}

// Send serializes nothing itself; it hands the bytes to the transport.
func (s *Session) Send(data []byte) error {
	return s.transport.Send(data)
}

// Expired reports whether the connection behind this session is gone.
func (s *Session) Expired() bool {
	return s.transport == nil || s.transport.Expired()
}
