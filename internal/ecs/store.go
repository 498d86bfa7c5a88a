// Package ecs holds the simulation state: entities, their components, and
// the process-wide stat dictionary. The world is owned by the simulation
// goroutine; nothing here is safe for concurrent mutation and nothing here
// locks.
package ecs

// EntityID identifies an entity in the world.
type EntityID uint64

// Store is one component column: a dense slice of components plus a sparse
// index from entity id to slot. Iteration touches only entities that carry
// the component, so a system's cost scales with its own population, not the
// whole world.
type Store[T any] struct {
	index map[EntityID]int
	ids   []EntityID
	items []T
}

// NewStore creates an empty component column.
func NewStore[T any]() *Store[T] {
	return &Store[T]{index: make(map[EntityID]int)}
}

// Set attaches or replaces the component for an entity.
func (s *Store[T]) Set(id EntityID, v T) {
	if i, ok := s.index[id]; ok {
		s.items[i] = v
		return
	}
	s.index[id] = len(s.items)
	s.ids = append(s.ids, id)
	s.items = append(s.items, v)
}

// Get returns a pointer into the column so callers can mutate in place. The
// pointer is invalidated by the next Set or Remove.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.items[i], true
}

// Has reports whether the entity carries this component.
func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// Remove detaches the component, swapping the last element into the hole.
func (s *Store[T]) Remove(id EntityID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}

	last := len(s.items) - 1
	if i != last {
		s.items[i] = s.items[last]
		s.ids[i] = s.ids[last]
		s.index[s.ids[i]] = i
	}

	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	s.ids = s.ids[:last]
	delete(s.index, id)
	return true
}

// Len returns the number of entities carrying this component.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// At returns the entity and component at a dense slot, for sharded
// iteration by a worker pool.
func (s *Store[T]) At(i int) (EntityID, *T) {
	return s.ids[i], &s.items[i]
}

// Each calls fn for every entity carrying this component. fn must not Set
// or Remove on this store.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := range s.items {
		fn(s.ids[i], &s.items[i])
	}
}
