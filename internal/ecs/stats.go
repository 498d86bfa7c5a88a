package ecs

import (
	"fmt"

	"github.com/pixil98/go-errors/errors"
)

// Well-known stat names. The dictionary may define more; these are the ones
// the core itself reads and writes.
const (
	StatHP      = "hp"
	StatMaxHP   = "max_hp"
	StatDamage  = "damage"
	StatDefense = "defense"
	StatXP      = "xp"
	StatGold    = "gold"
)

// StatMap maps a stat id to a signed value. Ordering is irrelevant.
type StatMap map[uint32]int64

// Clone returns an independent copy.
func (m StatMap) Clone() StatMap {
	c := make(StatMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// GetOr returns the value for a stat id, or def when unset.
func (m StatMap) GetOr(id uint32, def int64) int64 {
	if v, ok := m[id]; ok {
		return v
	}
	return def
}

// StatSpec is the on-disk definition of one stat, loaded at startup.
type StatSpec struct {
	Name string `json:"name"`
	ID   uint32 `json:"stat_id"`
}

func (s *StatSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}

	return el.Err()
}

// StatRegistry is the process-wide name↔id mapping. It is populated once at
// startup, frozen, and read-only afterwards, so lookups need no locking.
type StatRegistry struct {
	byName map[string]uint32
	byID   map[uint32]string
	frozen bool
}

// NewStatRegistry creates an empty, unfrozen registry.
func NewStatRegistry() *StatRegistry {
	return &StatRegistry{
		byName: make(map[string]uint32),
		byID:   make(map[uint32]string),
	}
}

// Add registers a stat. Duplicate names or ids, or adding after Freeze,
// are configuration errors.
func (r *StatRegistry) Add(name string, id uint32) error {
	if r.frozen {
		return fmt.Errorf("stat registry is frozen")
	}
	if existing, ok := r.byName[name]; ok {
		return fmt.Errorf("stat %q already registered as id %d", name, existing)
	}
	if existing, ok := r.byID[id]; ok {
		return fmt.Errorf("stat id %d already registered as %q", id, existing)
	}
	r.byName[name] = id
	r.byID[id] = name
	return nil
}

// Freeze makes the registry immutable.
func (r *StatRegistry) Freeze() {
	r.frozen = true
}

// ID resolves a stat name, reporting whether it exists.
func (r *StatRegistry) ID(name string) (uint32, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// MustID resolves a stat name that the core requires to exist. Use only
// after startup validation has confirmed the dictionary is complete.
func (r *StatRegistry) MustID(name string) uint32 {
	id, ok := r.byName[name]
	if !ok {
		panic(fmt.Sprintf("stat %q missing from dictionary", name))
	}
	return id
}

// Name resolves a stat id, or "" when unknown.
func (r *StatRegistry) Name(id uint32) string {
	return r.byID[id]
}

// Len returns the number of registered stats.
func (r *StatRegistry) Len() int {
	return len(r.byName)
}

// Named converts a StatMap into a name-keyed map for the wire. Unknown ids
// are skipped.
func (r *StatRegistry) Named(m StatMap) map[string]int64 {
	out := make(map[string]int64, len(m))
	for id, v := range m {
		if name := r.byID[id]; name != "" {
			out[name] = v
		}
	}
	return out
}

// CoreStatNames returns every stat name the core requires the dictionary to
// define: the combat and progression stats plus one counter per gatherable
// resource.
func CoreStatNames() []string {
	names := []string{StatHP, StatMaxHP, StatDamage, StatDefense, StatXP, StatGold}
	for _, n := range resourceNames {
		names = append(names, n)
	}
	return names
}
