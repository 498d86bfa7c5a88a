package systems

import (
	"github.com/Oipo/IdleBossHunter/internal/ecs"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

// ResourceSystem applies one tick of gathering yield to every tagged
// entity. It iterates the gather column only, so idle and fighting players
// cost nothing.
type ResourceSystem struct {
	world *ecs.World
	out   Sender

	statIDs map[ecs.ResourceKind]uint32
}

// NewResourceSystem creates a resource system. The stat registry must
// define a counter stat for every gatherable resource.
func NewResourceSystem(world *ecs.World, stats *ecs.StatRegistry, out Sender) *ResourceSystem {
	ids := make(map[ecs.ResourceKind]uint32)
	for _, kind := range ecs.ResourceKinds() {
		ids[kind] = stats.MustID(kind.String())
	}
	return &ResourceSystem{
		world:   world,
		out:     out,
		statIDs: ids,
	}
}

// tick runs one gathering pass. Yield grows slowly with level so gathering
// stays worthwhile without outpacing combat rewards.
func (s *ResourceSystem) tick() {
	s.world.Gathering.Each(func(id ecs.EntityID, tag *ecs.GatherTag) {
		p, ok := s.world.Players.Get(id)
		if !ok {
			return
		}

		yield := 1 + int64(p.Level)/10

		if p.Stats == nil {
			p.Stats = ecs.StatMap{}
		}
		statID := s.statIDs[tag.Kind]
		p.Stats[statID] += yield

		s.out.Send(session.ConnectionID(p.ConnectionID), &wire.ResourceUpdateResponse{
			Resource: tag.Kind.String(),
			Gained:   yield,
			Total:    p.Stats[statID],
		})
	})
}
