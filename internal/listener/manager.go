package listener

import (
	"context"
	"log/slog"

	"github.com/Oipo/IdleBossHunter/internal/game"
	"github.com/Oipo/IdleBossHunter/internal/queue"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

// ConnectionManager bridges I/O goroutines and the simulation: it registers
// sessions, parses raw frames, and queues everything for the next tick.
type ConnectionManager struct {
	sessions *session.Registry
	inbound  *queue.Queue[game.Inbound]
}

func NewConnectionManager(sessions *session.Registry, inbound *queue.Queue[game.Inbound]) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
		inbound:  inbound,
	}
}

// Accept registers a session for a freshly upgraded connection.
func (m *ConnectionManager) Accept(t session.Transport) *session.Session {
	return m.sessions.Register(t)
}

// HandleFrame parses one raw frame and queues it. Unparseable frames are
// dropped here so the simulation only ever sees valid documents.
func (m *ConnectionManager) HandleFrame(ctx context.Context, s *session.Session, data []byte) {
	d, err := wire.ParseDocument(data)
	if err != nil {
		slog.WarnContext(ctx, "dropping unparseable frame",
			"connection", s.ID,
			"error", err)
		return
	}
	m.inbound.Enqueue(game.Inbound{Session: s, Doc: d})
}

// Close removes the session and tells the simulation the connection is
// gone, so it can detach and persist the player's entity.
func (m *ConnectionManager) Close(s *session.Session) {
	m.sessions.Remove(s.ID)
	m.inbound.Enqueue(game.Inbound{Session: s, Disconnect: true})
}
