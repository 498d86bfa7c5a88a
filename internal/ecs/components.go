package ecs

import "fmt"

// Item is an equippable or carried item.
type Item struct {
	Name          string
	Description   string
	Slot          string
	Value         uint64
	Quality       uint64
	RequiredLevel uint64
	Stats         StatMap
}

// Skill is a named skill and its level.
type Skill struct {
	Name  string
	Level int64
}

// PlayerComponent is a character currently in the world.
type PlayerComponent struct {
	ID           uint64
	ConnectionID uint64
	Name         string
	Race         string
	Class        string
	SpawnMessage string

	Level       uint64
	SkillPoints uint64

	Stats         StatMap
	EquippedItems map[string]Item
	Inventory     []Item
	Skills        map[string]Skill
}

// TotalStats combines base stats with equipped item bonuses into a fresh
// map. The result is a snapshot; later stat changes do not flow into it.
func (p *PlayerComponent) TotalStats() StatMap {
	total := p.Stats.Clone()
	for _, item := range p.EquippedItems {
		for id, v := range item.Stats {
			total[id] += v
		}
	}
	return total
}

// BattleComponent is the current encounter of one player entity. An entity
// carries at most one; Done battles are replaced with a fresh encounter by
// the battle system on the following tick.
type BattleComponent struct {
	EncounterID  string
	Done         bool
	MonsterName  string
	MonsterLevel uint64

	MonsterStats     StatMap
	TotalPlayerStats StatMap
}

// ResourceKind enumerates the gatherable resources.
type ResourceKind uint32

const (
	ResourceWood ResourceKind = iota
	ResourceOre
	ResourceWater
	ResourcePlants
	ResourceClay
	ResourceGems
	ResourcePaper
	ResourceInk
	ResourceMetal
	ResourceBricks
	ResourceTimber
)

var resourceNames = [...]string{
	ResourceWood:   "wood",
	ResourceOre:    "ore",
	ResourceWater:  "water",
	ResourcePlants: "plants",
	ResourceClay:   "clay",
	ResourceGems:   "gems",
	ResourcePaper:  "paper",
	ResourceInk:    "ink",
	ResourceMetal:  "metal",
	ResourceBricks: "bricks",
	ResourceTimber: "timber",
}

func (k ResourceKind) String() string {
	if int(k) < len(resourceNames) {
		return resourceNames[k]
	}
	return fmt.Sprintf("resource(%d)", uint32(k))
}

// ResourceKinds returns every gatherable resource kind.
func ResourceKinds() []ResourceKind {
	kinds := make([]ResourceKind, len(resourceNames))
	for i := range resourceNames {
		kinds[i] = ResourceKind(i)
	}
	return kinds
}

// ParseResourceKind maps a wire resource name to its kind.
func ParseResourceKind(name string) (ResourceKind, bool) {
	for k, n := range resourceNames {
		if n == name {
			return ResourceKind(k), true
		}
	}
	return 0, false
}

// GatherTag marks an entity as gathering one resource. A tagged entity is
// skipped by the battle system; handlers keep the two states exclusive.
type GatherTag struct {
	Kind ResourceKind
}
