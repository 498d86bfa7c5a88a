package ecs

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestStoreSetGetRemove(t *testing.T) {
	s := NewStore[BattleComponent]()

	s.Set(1, BattleComponent{MonsterName: "rat"})
	s.Set(2, BattleComponent{MonsterName: "bat"})
	testutil.AssertEqual(t, "len", s.Len(), 2)

	b, ok := s.Get(1)
	if !ok {
		t.Fatal("expected entity 1 to have a battle")
	}
	testutil.AssertEqual(t, "monster", b.MonsterName, "rat")

	// Mutation through the returned pointer sticks.
	b.Done = true
	b2, _ := s.Get(1)
	testutil.AssertEqual(t, "done", b2.Done, true)

	// Replacing overwrites in place.
	s.Set(1, BattleComponent{MonsterName: "wolf"})
	testutil.AssertEqual(t, "len after replace", s.Len(), 2)
	b3, _ := s.Get(1)
	testutil.AssertEqual(t, "replaced monster", b3.MonsterName, "wolf")

	testutil.AssertEqual(t, "remove", s.Remove(1), true)
	testutil.AssertEqual(t, "remove again", s.Remove(1), false)
	testutil.AssertEqual(t, "len after remove", s.Len(), 1)
	testutil.AssertEqual(t, "has 1", s.Has(1), false)
	testutil.AssertEqual(t, "has 2", s.Has(2), true)
}

func TestStoreSwapRemoveKeepsIndex(t *testing.T) {
	s := NewStore[GatherTag]()
	for i := EntityID(1); i <= 5; i++ {
		s.Set(i, GatherTag{Kind: ResourceKind(i)})
	}

	// Removing from the middle moves the last element into the hole.
	s.Remove(2)

	testutil.AssertEqual(t, "len", s.Len(), 4)
	for _, id := range []EntityID{1, 3, 4, 5} {
		tag, ok := s.Get(id)
		if !ok {
			t.Fatalf("entity %d lost its tag", id)
		}
		testutil.AssertEqual(t, "kind", tag.Kind, ResourceKind(id))
	}
}

func TestStoreEachVisitsOnlyTagged(t *testing.T) {
	s := NewStore[GatherTag]()
	s.Set(10, GatherTag{Kind: ResourceWood})
	s.Set(30, GatherTag{Kind: ResourceOre})

	seen := map[EntityID]ResourceKind{}
	s.Each(func(id EntityID, tag *GatherTag) {
		seen[id] = tag.Kind
	})

	testutil.AssertEqual(t, "visited", len(seen), 2)
	testutil.AssertEqual(t, "wood", seen[10], ResourceWood)
	testutil.AssertEqual(t, "ore", seen[30], ResourceOre)
}

func TestWorldRemoveEntity(t *testing.T) {
	w := NewWorld()

	id := w.NewEntity()
	w.Players.Set(id, PlayerComponent{Name: "Crixus"})
	w.Battles.Set(id, BattleComponent{MonsterName: "rat"})
	w.Gathering.Set(id, GatherTag{Kind: ResourceClay})

	w.RemoveEntity(id)

	testutil.AssertEqual(t, "players", w.Players.Has(id), false)
	testutil.AssertEqual(t, "battles", w.Battles.Has(id), false)
	testutil.AssertEqual(t, "gathering", w.Gathering.Has(id), false)
}

func TestWorldPlayerByName(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()
	w.Players.Set(id, PlayerComponent{Name: "Crixus"})

	gotID, p, ok := w.PlayerByName("Crixus")
	testutil.AssertEqual(t, "found", ok, true)
	testutil.AssertEqual(t, "id", gotID, id)
	testutil.AssertEqual(t, "name", p.Name, "Crixus")

	_, _, ok = w.PlayerByName("nobody")
	testutil.AssertEqual(t, "missing", ok, false)
}

func TestTotalStatsIncludesEquipment(t *testing.T) {
	p := PlayerComponent{
		Stats: StatMap{1: 10, 2: 5},
		EquippedItems: map[string]Item{
			"weapon": {Name: "axe", Stats: StatMap{2: 3, 7: 1}},
			"chest":  {Name: "mail", Stats: StatMap{1: -2}},
		},
	}

	total := p.TotalStats()
	testutil.AssertEqual(t, "stat 1", total[1], int64(8))
	testutil.AssertEqual(t, "stat 2", total[2], int64(8))
	testutil.AssertEqual(t, "stat 7", total[7], int64(1))

	// The snapshot is independent of the base map.
	total[1] = 999
	testutil.AssertEqual(t, "base untouched", p.Stats[1], int64(10))
}
