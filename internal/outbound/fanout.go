// Package outbound delivers simulation output to connections. Handlers and
// systems enqueue envelopes during a tick; the fan-out stage drains the
// queue at the end of the tick and hands bytes to each transport.
package outbound

import (
	"context"
	"log/slog"

	"github.com/Oipo/IdleBossHunter/internal/queue"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

// Envelope is one outgoing message. Broadcast envelopes go to every live
// session; otherwise To selects a single connection.
type Envelope struct {
	To        session.ConnectionID
	Broadcast bool
	Msg       wire.Message
}

// Fanout drains the outbound queue and writes to transports. A failed or
// expired recipient never affects delivery to the others.
type Fanout struct {
	queue    *queue.Queue[Envelope]
	sessions *session.Registry
	sent     func(n int)
}

// FanoutOpt configures a Fanout.
type FanoutOpt func(*Fanout)

// WithSentCounter registers a callback invoked with the number of sends
// attempted per envelope.
func WithSentCounter(fn func(n int)) FanoutOpt {
	return func(f *Fanout) {
		f.sent = fn
	}
}

// NewFanout creates a fan-out stage over a queue and a session registry.
func NewFanout(q *queue.Queue[Envelope], r *session.Registry, opts ...FanoutOpt) *Fanout {
	f := &Fanout{
		queue:    q,
		sessions: r,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Send enqueues a message for one connection.
func (f *Fanout) Send(to session.ConnectionID, msg wire.Message) {
	f.queue.Enqueue(Envelope{To: to, Msg: msg})
}

// Broadcast enqueues a message for every live connection.
func (f *Fanout) Broadcast(msg wire.Message) {
	f.queue.Enqueue(Envelope{Broadcast: true, Msg: msg})
}

// Tick drains the queue to empty and delivers every envelope. Serialization
// failures drop the envelope; send failures drop the one recipient.
func (f *Fanout) Tick(ctx context.Context) error {
	for {
		env, ok := f.queue.TryDequeue()
		if !ok {
			return nil
		}

		data, err := env.Msg.Serialize()
		if err != nil {
			slog.WarnContext(ctx, "serializing outbound message",
				"type", wire.Name(env.Msg.Type()),
				"error", err)
			continue
		}

		if env.Broadcast {
			f.broadcast(ctx, env.Msg.Type(), data)
			continue
		}
		f.deliver(ctx, env.To, env.Msg.Type(), data)
	}
}

// deliver sends to one connection. A missing or expired session means the
// recipient disconnected after the message was enqueued; that is a silent
// drop, not an error.
func (f *Fanout) deliver(ctx context.Context, to session.ConnectionID, t uint64, data []byte) {
	s := f.sessions.Get(to)
	if s == nil || s.Expired() {
		return
	}
	f.count(1)

	if err := s.Send(data); err != nil {
		slog.WarnContext(ctx, "sending message",
			"connection", to,
			"type", wire.Name(t),
			"error", err)
	}
}

func (f *Fanout) broadcast(ctx context.Context, t uint64, data []byte) {
	f.sessions.ForEach(func(s *session.Session) {
		if s.Expired() {
			return
		}
		f.count(1)

		if err := s.Send(data); err != nil {
			slog.WarnContext(ctx, "broadcasting message",
				"connection", s.ID,
				"type", wire.Name(t),
				"error", err)
		}
	})
}

func (f *Fanout) count(n int) {
	if f.sent != nil {
		f.sent(n)
	}
}
