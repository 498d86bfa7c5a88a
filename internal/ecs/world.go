package ecs

// World is the entity-component registry for the whole simulation. It is
// exclusively owned by the simulation goroutine during a tick: handlers
// mutate it while the inbound queue drains, systems read and write it
// afterwards, and no other goroutine ever touches it.
type World struct {
	nextEntity EntityID

	Players   *Store[PlayerComponent]
	Battles   *Store[BattleComponent]
	Gathering *Store[GatherTag]
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		Players:   NewStore[PlayerComponent](),
		Battles:   NewStore[BattleComponent](),
		Gathering: NewStore[GatherTag](),
	}
}

// NewEntity issues a fresh entity id.
func (w *World) NewEntity() EntityID {
	w.nextEntity++
	return w.nextEntity
}

// RemoveEntity detaches every component the entity carries.
func (w *World) RemoveEntity(id EntityID) {
	w.Players.Remove(id)
	w.Battles.Remove(id)
	w.Gathering.Remove(id)
}

// PlayerByName finds the entity for a character name, if it is in world.
func (w *World) PlayerByName(name string) (EntityID, *PlayerComponent, bool) {
	var foundID EntityID
	var found *PlayerComponent
	w.Players.Each(func(id EntityID, p *PlayerComponent) {
		if found == nil && p.Name == name {
			foundID = id
			found = p
		}
	})
	return foundID, found, found != nil
}
