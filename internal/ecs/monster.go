package ecs

import (
	"fmt"
	"sort"

	"github.com/pixil98/go-errors/errors"
)

// MonsterSpec is the on-disk definition of a monster, loaded at startup.
// Stats are keyed by stat name and resolved through the stat registry when
// an encounter is spawned.
type MonsterSpec struct {
	Name  string           `json:"name"`
	Level uint64           `json:"level"`
	Stats map[string]int64 `json:"stats"`
}

func (m *MonsterSpec) Validate() error {
	el := errors.NewErrorList()

	if m.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if m.Level == 0 {
		el.Add(fmt.Errorf("level must be at least 1"))
	}
	if len(m.Stats) == 0 {
		el.Add(fmt.Errorf("stats are required"))
	}

	return el.Err()
}

// Bestiary selects encounters for players. The spec list is sorted by level
// then name once at startup, so selection is deterministic for a given
// player level.
type Bestiary struct {
	specs []*MonsterSpec
	stats *StatRegistry
}

// NewBestiary builds a bestiary from loaded monster specs. It errors when
// empty or when a spec names a stat the dictionary does not define.
func NewBestiary(specs map[string]*MonsterSpec, stats *StatRegistry) (*Bestiary, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("no monsters defined")
	}

	b := &Bestiary{stats: stats}
	for id, spec := range specs {
		for name := range spec.Stats {
			if _, ok := stats.ID(name); !ok {
				return nil, fmt.Errorf("monster %q: unknown stat %q", id, name)
			}
		}
		b.specs = append(b.specs, spec)
	}

	sort.Slice(b.specs, func(i, j int) bool {
		if b.specs[i].Level != b.specs[j].Level {
			return b.specs[i].Level < b.specs[j].Level
		}
		return b.specs[i].Name < b.specs[j].Name
	})

	return b, nil
}

// ForLevel returns the strongest monster whose level does not exceed the
// player's, falling back to the weakest one.
func (b *Bestiary) ForLevel(level uint64) *MonsterSpec {
	pick := b.specs[0]
	for _, spec := range b.specs {
		if spec.Level > level {
			break
		}
		pick = spec
	}
	return pick
}

// StatMapFor resolves a spec's named stats into an id-keyed map. Monster
// hp scales with level so encounters keep up with the player.
func (b *Bestiary) StatMapFor(spec *MonsterSpec) StatMap {
	m := make(StatMap, len(spec.Stats))
	for name, v := range spec.Stats {
		id, ok := b.stats.ID(name)
		if !ok {
			continue
		}
		m[id] = v
	}

	hp := b.stats.MustID(StatHP)
	maxHP := b.stats.MustID(StatMaxHP)
	if _, ok := m[hp]; !ok {
		m[hp] = int64(spec.Level) * 10
	}
	m[maxHP] = m[hp]
	return m
}
