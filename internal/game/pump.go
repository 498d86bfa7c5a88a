// Package game owns the inbound half of the simulation loop: draining the
// queue the listeners fill and dispatching each frame.
package game

import (
	"context"
	"log/slog"

	"github.com/Oipo/IdleBossHunter/internal/dispatch"
	"github.com/Oipo/IdleBossHunter/internal/queue"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

// Inbound is one queued item from a listener goroutine: either a parsed
// frame or a disconnect notice for the session.
type Inbound struct {
	Session    *session.Session
	Doc        *wire.Document
	Disconnect bool
}

// Pump drains the inbound queue at the start of every tick and dispatches
// each item. It runs on the simulation goroutine, so handlers own the world
// while the pump is ticking.
type Pump struct {
	queue *queue.Queue[Inbound]
	table *dispatch.Table
	deps  *dispatch.Context
}

// NewPump creates a pump over the inbound queue.
func NewPump(q *queue.Queue[Inbound], table *dispatch.Table, deps *dispatch.Context) *Pump {
	return &Pump{
		queue: q,
		table: table,
		deps:  deps,
	}
}

// Tick drains the queue to empty. Dispatch contains every failure, so the
// drain never stops early.
func (p *Pump) Tick(ctx context.Context) error {
	for {
		in, ok := p.queue.TryDequeue()
		if !ok {
			return nil
		}

		if in.Disconnect {
			p.disconnect(ctx, in.Session)
			continue
		}

		p.table.Dispatch(ctx, p.deps, in.Session, in.Doc)
	}
}

// disconnect removes a departed player's entity and persists its progress.
// The session itself was already removed from the registry by the listener.
func (p *Pump) disconnect(ctx context.Context, s *session.Session) {
	if !s.Playing {
		return
	}

	pc, ok := p.deps.World.Players.Get(s.Entity)
	if !ok {
		return
	}

	u, err := p.deps.Provider.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "beginning unit of work", "error", err)
	} else {
		ch, err := u.Characters().GetByName(pc.Name)
		if err == nil && ch != nil {
			ch.Level = pc.Level
			ch.SkillPoints = pc.SkillPoints
			ch.Stats = p.deps.Stats.Named(pc.Stats)
			err = u.Characters().Update(ch)
		}
		if err != nil {
			slog.ErrorContext(ctx, "saving character on disconnect",
				"character", pc.Name,
				"error", err)
			if rbErr := u.Rollback(); rbErr != nil {
				slog.WarnContext(ctx, "rolling back unit of work", "error", rbErr)
			}
		} else if err := u.Commit(); err != nil {
			slog.ErrorContext(ctx, "committing unit of work", "error", err)
		}
	}

	p.deps.World.RemoveEntity(s.Entity)
	s.Playing = false
	s.Entity = 0
}
