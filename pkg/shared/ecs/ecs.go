package ecs

import (
	"reflect"
	"slices"
	"sync/atomic"
)

// Entity is a unique identifier for a game object.
type Entity uint64

// System is logic that operates on entities with specific components.
type System interface {
	Update(dt float64)
}

// Component is a marker interface for data attached to entities.
type Component interface{}

// World manages entities and their components. It is not safe for
// concurrent use; the server guards it with its own lock.
type World struct {
	nextEntityID uint64
	// components maps ComponentType -> EntityID -> Component
	components map[reflect.Type]map[Entity]Component
	systems    []System
}

func NewWorld() *World {
	return &World{
		components: make(map[reflect.Type]map[Entity]Component),
		systems:    make([]System, 0),
	}
}

// NewEntity creates a new entity with a unique ID.
func (w *World) NewEntity() Entity {
	id := atomic.AddUint64(&w.nextEntityID, 1)
	return Entity(id)
}

// RemoveEntity removes all components associated with an entity.
func (w *World) RemoveEntity(e Entity) {
	for _, store := range w.components {
		delete(store, e)
	}
}

// AddComponent attaches a component to an entity, replacing any component
// of the same type.
func (w *World) AddComponent(e Entity, c Component) {
	cType := reflect.TypeOf(c)
	if _, ok := w.components[cType]; !ok {
		w.components[cType] = make(map[Entity]Component)
	}
	w.components[cType][e] = c
}

// RemoveComponent removes the component with the same type as c.
func (w *World) RemoveComponent(e Entity, c Component) {
	cType := reflect.TypeOf(c)
	if store, ok := w.components[cType]; ok {
		delete(store, e)
	}
}

// GetComponent returns a copy of e's component of type T. Changes to the
// copy are written back with AddComponent.
func GetComponent[T Component](w *World, e Entity) (*T, bool) {
	var zero T
	cType := reflect.TypeOf(zero)
	if store, ok := w.components[cType]; ok {
		if val, ok := store[e]; ok {
			castVal := val.(T)
			return &castVal, true
		}
	}
	return nil, false
}

// AddSystem adds a system to the world.
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
}

// Update updates all systems.
func (w *World) Update(dt float64) {
	for _, system := range w.systems {
		system.Update(dt)
	}
}

// Query returns all entities that have a component of type T, in ascending
// id order.
func Query[T Component](w *World) []Entity {
	var zero T
	cType := reflect.TypeOf(zero)
	var entities []Entity
	if store, ok := w.components[cType]; ok {
		for e := range store {
			entities = append(entities, e)
		}
	}
	slices.Sort(entities)
	return entities
}
