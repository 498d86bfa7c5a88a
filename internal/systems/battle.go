// Package systems holds the per-tick simulation systems and the runner that
// drives them. Systems run after handler dispatch for the tick and before
// fan-out; they own the world for the duration of the call.
package systems

import (
	"github.com/google/uuid"

	"github.com/Oipo/IdleBossHunter/internal/ecs"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
)

// Sender delivers simulation output. Sends may come from worker goroutines,
// so implementations must be multi-producer safe.
type Sender interface {
	Send(to session.ConnectionID, msg wire.Message)
}

// BattleSystem resolves one exchange per encounter per tick. Resolution is a
// pure function of the two stat snapshots, so two worlds in the same state
// always battle identically.
type BattleSystem struct {
	world    *ecs.World
	bestiary *ecs.Bestiary
	out      Sender
	resolved func()

	hp      uint32
	maxHP   uint32
	damage  uint32
	defense uint32
	xp      uint32
	gold    uint32
}

// BattleOpt configures a BattleSystem.
type BattleOpt func(*BattleSystem)

// WithResolvedCounter registers a callback invoked once per resolved
// encounter.
func WithResolvedCounter(fn func()) BattleOpt {
	return func(s *BattleSystem) {
		s.resolved = fn
	}
}

// NewBattleSystem creates a battle system. The stat registry must already
// define the core combat stats.
func NewBattleSystem(world *ecs.World, stats *ecs.StatRegistry, bestiary *ecs.Bestiary, out Sender, opts ...BattleOpt) *BattleSystem {
	s := &BattleSystem{
		world:    world,
		bestiary: bestiary,
		out:      out,
		hp:       stats.MustID(ecs.StatHP),
		maxHP:    stats.MustID(ecs.StatMaxHP),
		damage:   stats.MustID(ecs.StatDamage),
		defense:  stats.MustID(ecs.StatDefense),
		xp:       stats.MustID(ecs.StatXP),
		gold:     stats.MustID(ecs.StatGold),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spawn builds a fresh encounter for a player: the strongest monster at or
// below the player's level, with both stat snapshots taken now. The player
// enters at full health.
func (s *BattleSystem) Spawn(p *ecs.PlayerComponent) ecs.BattleComponent {
	spec := s.bestiary.ForLevel(p.Level)

	total := p.TotalStats()
	total[s.hp] = total.GetOr(s.maxHP, total.GetOr(s.hp, 1))

	return ecs.BattleComponent{
		EncounterID:      uuid.NewString(),
		MonsterName:      spec.Name,
		MonsterLevel:     spec.Level,
		MonsterStats:     s.bestiary.StatMapFor(spec),
		TotalPlayerStats: total,
	}
}

// TickOne advances one entity's encounter by a single exchange. The runner
// calls it from worker goroutines; distinct slots never share state, so no
// locking is needed.
func (s *BattleSystem) TickOne(id ecs.EntityID, b *ecs.BattleComponent) {
	p, ok := s.world.Players.Get(id)
	if !ok {
		return
	}

	if b.Done {
		*b = s.Spawn(p)
		return
	}

	dealt := b.TotalPlayerStats.GetOr(s.damage, 0) - b.MonsterStats.GetOr(s.defense, 0)
	if dealt < 1 {
		dealt = 1
	}
	taken := b.MonsterStats.GetOr(s.damage, 0) - b.TotalPlayerStats.GetOr(s.defense, 0)
	if taken < 1 {
		taken = 1
	}

	b.MonsterStats[s.hp] -= dealt
	if b.MonsterStats[s.hp] <= 0 {
		s.finish(p, b)
		return
	}

	b.TotalPlayerStats[s.hp] -= taken
	if b.TotalPlayerStats[s.hp] <= 0 {
		// A downed player shakes it off and fights on at full health.
		b.TotalPlayerStats[s.hp] = b.TotalPlayerStats.GetOr(s.maxHP, 1)
	}

	s.out.Send(session.ConnectionID(p.ConnectionID), &wire.BattleUpdateResponse{
		MonsterName:  b.MonsterName,
		MonsterLevel: b.MonsterLevel,
		MonsterHP:    b.MonsterStats[s.hp],
		PlayerHP:     b.TotalPlayerStats[s.hp],
		DamageDealt:  dealt,
		DamageTaken:  taken,
	})
}

func (s *BattleSystem) finish(p *ecs.PlayerComponent, b *ecs.BattleComponent) {
	b.Done = true

	xpGained := int64(b.MonsterLevel) * 10
	goldGained := int64(b.MonsterLevel)*5 + b.MonsterStats.GetOr(s.maxHP, 0)/10

	if p.Stats == nil {
		p.Stats = ecs.StatMap{}
	}
	p.Stats[s.xp] += xpGained
	p.Stats[s.gold] += goldGained

	s.out.Send(session.ConnectionID(p.ConnectionID), &wire.BattleFinishedResponse{
		MonsterName:  b.MonsterName,
		MonsterLevel: b.MonsterLevel,
		XPGained:     xpGained,
		GoldGained:   goldGained,
	})

	if s.resolved != nil {
		s.resolved()
	}
}
