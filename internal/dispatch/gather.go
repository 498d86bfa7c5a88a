package dispatch

import (
	"context"

	"github.com/Oipo/IdleBossHunter/internal/ecs"
	"github.com/Oipo/IdleBossHunter/internal/repo"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

func handleStartGathering(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	req, ok := wire.DeserializeStartGatheringRequest(d)
	if !ok {
		return ErrMalformed
	}

	if !s.Playing {
		return Errorf("not_playing", "select a character before gathering")
	}

	kind, ok := ecs.ParseResourceKind(req.Resource)
	if !ok {
		return Errorf("unknown_resource", "no such resource %q", req.Resource)
	}

	// Gathering and battling are mutually exclusive states.
	c.World.Battles.Remove(s.Entity)
	c.World.Gathering.Set(s.Entity, ecs.GatherTag{Kind: kind})

	c.Out.Send(s.ID, &wire.OkResponse{Message: "gathering " + kind.String()})
	return nil
}

func handleStopGathering(ctx context.Context, c *Context, u repo.Unit, s *session.Session, d *wire.Document) error {
	if _, ok := wire.DeserializeStopGatheringRequest(d); !ok {
		return ErrMalformed
	}

	if !s.Playing {
		return Errorf("not_playing", "select a character before gathering")
	}

	if !c.World.Gathering.Remove(s.Entity) {
		return Errorf("not_gathering", "this character is not gathering")
	}

	// Back to idle battling.
	if p, ok := c.World.Players.Get(s.Entity); ok {
		c.World.Battles.Set(s.Entity, c.Encounters.Spawn(p))
	}

	c.Out.Send(s.ID, &wire.OkResponse{Message: "gathering stopped"})
	return nil
}
