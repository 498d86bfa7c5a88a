package systems

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/Oipo/IdleBossHunter/internal/ecs"
	"github.com/Oipo/IdleBossHunter/internal/session"
	"github.com/Oipo/IdleBossHunter/internal/wire"
	"github.com/pixil98/go-testutil"
)

type captureSender struct {
	mu   sync.Mutex
	msgs []wire.Message
}

func (c *captureSender) Send(to session.ConnectionID, msg wire.Message) {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()
}

func (c *captureSender) byType(t uint64) []wire.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []wire.Message
	for _, m := range c.msgs {
		if m.Type() == t {
			out = append(out, m)
		}
	}
	return out
}

func testStats(t *testing.T) *ecs.StatRegistry {
	t.Helper()
	reg := ecs.NewStatRegistry()
	for i, name := range ecs.CoreStatNames() {
		if err := reg.Add(name, uint32(i+1)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	reg.Freeze()
	return reg
}

func testBestiary(t *testing.T, stats *ecs.StatRegistry) *ecs.Bestiary {
	t.Helper()
	b, err := ecs.NewBestiary(map[string]*ecs.MonsterSpec{
		"rat": {Name: "Giant Rat", Level: 1, Stats: map[string]int64{
			ecs.StatHP: 5, ecs.StatDamage: 2, ecs.StatDefense: 0,
		}},
		"troll": {Name: "Cave Troll", Level: 5, Stats: map[string]int64{
			ecs.StatHP: 80, ecs.StatDamage: 12, ecs.StatDefense: 4,
		}},
	}, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func addPlayer(w *ecs.World, stats *ecs.StatRegistry, level uint64) ecs.EntityID {
	id := w.NewEntity()
	w.Players.Set(id, ecs.PlayerComponent{
		Name:         "Crixus",
		ConnectionID: uint64(id),
		Level:        level,
		Stats: ecs.StatMap{
			stats.MustID(ecs.StatHP):      50,
			stats.MustID(ecs.StatMaxHP):   50,
			stats.MustID(ecs.StatDamage):  10,
			stats.MustID(ecs.StatDefense): 3,
		},
	})
	return id
}

func TestBattleResolution(t *testing.T) {
	stats := testStats(t)
	bestiary := testBestiary(t, stats)
	world := ecs.NewWorld()
	out := &captureSender{}
	sys := NewBattleSystem(world, stats, bestiary, out)

	id := addPlayer(world, stats, 1)
	p, _ := world.Players.Get(id)
	world.Battles.Set(id, sys.Spawn(p))

	// Level 1 picks the rat: 5 hp against 10 damage falls in one exchange.
	b, _ := world.Battles.Get(id)
	testutil.AssertEqual(t, "monster", b.MonsterName, "Giant Rat")
	firstEncounter := b.EncounterID

	sys.TickOne(id, b)
	testutil.AssertEqual(t, "done", b.Done, true)

	finished := out.byType(wire.TypeBattleFinishedResponse)
	testutil.AssertEqual(t, "finished messages", len(finished), 1)
	fin := finished[0].(*wire.BattleFinishedResponse)
	testutil.AssertEqual(t, "xp gained", fin.XPGained, int64(10))
	testutil.AssertEqual(t, "xp awarded", p.Stats.GetOr(stats.MustID(ecs.StatXP), 0), int64(10))
	if p.Stats.GetOr(stats.MustID(ecs.StatGold), 0) <= 0 {
		t.Error("expected gold to be awarded")
	}

	// The next tick replaces the finished encounter with a fresh one.
	sys.TickOne(id, b)
	testutil.AssertEqual(t, "respawned done", b.Done, false)
	if b.EncounterID == firstEncounter {
		t.Error("expected a new encounter id")
	}
}

func TestBattleOngoingExchange(t *testing.T) {
	stats := testStats(t)
	bestiary := testBestiary(t, stats)
	world := ecs.NewWorld()
	out := &captureSender{}
	sys := NewBattleSystem(world, stats, bestiary, out)

	id := addPlayer(world, stats, 5)
	p, _ := world.Players.Get(id)
	world.Battles.Set(id, sys.Spawn(p))

	// Level 5 picks the troll: 80 hp survives a 6 damage exchange.
	b, _ := world.Battles.Get(id)
	sys.TickOne(id, b)

	testutil.AssertEqual(t, "done", b.Done, false)
	updates := out.byType(wire.TypeBattleUpdateResponse)
	testutil.AssertEqual(t, "update messages", len(updates), 1)
	up := updates[0].(*wire.BattleUpdateResponse)
	testutil.AssertEqual(t, "damage dealt", up.DamageDealt, int64(6))
	testutil.AssertEqual(t, "damage taken", up.DamageTaken, int64(9))
	testutil.AssertEqual(t, "monster hp", up.MonsterHP, int64(74))
	testutil.AssertEqual(t, "player hp", up.PlayerHP, int64(41))
}

func TestBattleMinimumDamage(t *testing.T) {
	stats := testStats(t)
	bestiary := testBestiary(t, stats)
	world := ecs.NewWorld()
	out := &captureSender{}
	sys := NewBattleSystem(world, stats, bestiary, out)

	id := addPlayer(world, stats, 5)
	p, _ := world.Players.Get(id)
	p.Stats[stats.MustID(ecs.StatDamage)] = 1
	p.Stats[stats.MustID(ecs.StatDefense)] = 1000
	world.Battles.Set(id, sys.Spawn(p))

	b, _ := world.Battles.Get(id)
	sys.TickOne(id, b)

	up := out.byType(wire.TypeBattleUpdateResponse)[0].(*wire.BattleUpdateResponse)
	testutil.AssertEqual(t, "damage dealt floor", up.DamageDealt, int64(1))
	testutil.AssertEqual(t, "damage taken floor", up.DamageTaken, int64(1))
}

func TestBattleDefeatedPlayerHeals(t *testing.T) {
	stats := testStats(t)
	bestiary := testBestiary(t, stats)
	world := ecs.NewWorld()
	out := &captureSender{}
	sys := NewBattleSystem(world, stats, bestiary, out)

	id := addPlayer(world, stats, 5)
	p, _ := world.Players.Get(id)
	world.Battles.Set(id, sys.Spawn(p))

	b, _ := world.Battles.Get(id)
	b.TotalPlayerStats[stats.MustID(ecs.StatHP)] = 1
	sys.TickOne(id, b)

	testutil.AssertEqual(t, "done", b.Done, false)
	testutil.AssertEqual(t, "healed hp",
		b.TotalPlayerStats[stats.MustID(ecs.StatHP)], int64(50))
}

func TestBattleDeterminism(t *testing.T) {
	stats := testStats(t)
	bestiary := testBestiary(t, stats)

	build := func() (*ecs.World, *Runner) {
		world := ecs.NewWorld()
		out := &captureSender{}
		battle := NewBattleSystem(world, stats, bestiary, out)
		resource := NewResourceSystem(world, stats, out)
		for i := 0; i < 16; i++ {
			id := addPlayer(world, stats, uint64(1+i%7))
			p, _ := world.Players.Get(id)
			b := battle.Spawn(p)
			b.EncounterID = "fixed"
			world.Battles.Set(id, b)
		}
		return world, NewRunner(world, battle, resource, WithWorkers(3))
	}

	worldA, runnerA := build()
	worldB, runnerB := build()

	for tick := 0; tick < 10; tick++ {
		if err := runnerA.Tick(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := runnerB.Tick(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// Respawns mint fresh encounter ids, so pin them before comparing.
	for i := 0; i < worldA.Battles.Len(); i++ {
		_, ba := worldA.Battles.At(i)
		ba.EncounterID = "fixed"
	}
	for i := 0; i < worldB.Battles.Len(); i++ {
		_, bb := worldB.Battles.At(i)
		bb.EncounterID = "fixed"
	}

	for i := 0; i < worldA.Battles.Len(); i++ {
		idA, ba := worldA.Battles.At(i)
		bb, ok := worldB.Battles.Get(idA)
		if !ok {
			t.Fatalf("entity %d missing from second world", idA)
		}
		if !reflect.DeepEqual(*ba, *bb) {
			t.Errorf("entity %d diverged: %+v vs %+v", idA, *ba, *bb)
		}
	}
}

func TestResourceYield(t *testing.T) {
	stats := testStats(t)
	world := ecs.NewWorld()
	out := &captureSender{}
	sys := NewResourceSystem(world, stats, out)

	gatherer := addPlayer(world, stats, 20)
	world.Gathering.Set(gatherer, ecs.GatherTag{Kind: ecs.ResourceOre})
	idle := addPlayer(world, stats, 20)

	sys.tick()
	sys.tick()

	oreID := stats.MustID(ecs.ResourceOre.String())
	p, _ := world.Players.Get(gatherer)
	testutil.AssertEqual(t, "gathered total", p.Stats[oreID], int64(6))

	other, _ := world.Players.Get(idle)
	testutil.AssertEqual(t, "idle total", other.Stats.GetOr(oreID, 0), int64(0))

	updates := out.byType(wire.TypeResourceUpdateResponse)
	testutil.AssertEqual(t, "update messages", len(updates), 2)
	last := updates[1].(*wire.ResourceUpdateResponse)
	testutil.AssertEqual(t, "resource", last.Resource, "ore")
	testutil.AssertEqual(t, "gained", last.Gained, int64(3))
	testutil.AssertEqual(t, "total", last.Total, int64(6))
}
