package ecs

import (
	"go.uber.org/zap"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/event"
)

// EntityEvent is the payload for entity.created and entity.destroyed.
type EntityEvent struct {
	Entity *Entity
}

// ComponentEvent is the payload for component.added and component.removed.
type ComponentEvent struct {
	Entity    *Entity
	Kind      Kind
	Component Component
}

// Manager owns entity identity lifecycle, the recycle pool, and the
// tag→entity index. Accessed only from the game loop goroutine — no locks.
//
// Tag index invariant: an entity appears in the bucket for tag T iff T is in
// that entity's tag set, maintained on every add/remove including destroy.
type Manager struct {
	log *zap.Logger
	bus *event.Bus

	byID map[EntityID]*Entity
	list []*Entity // live entities in registry enumeration order
	tags map[string]map[EntityID]*Entity

	pool    []*Entity // bounded stack of reset shells
	poolCap int
	nextID  EntityID
}

// NewManager creates an entity registry publishing lifecycle events on bus.
// poolCap bounds the recycle pool; destroyed entities beyond it are not
// retained. A nil logger falls back to zap.NewNop.
func NewManager(bus *event.Bus, poolCap int, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if poolCap < 0 {
		poolCap = 0
	}
	return &Manager{
		log:     log,
		bus:     bus,
		byID:    make(map[EntityID]*Entity, 256),
		tags:    make(map[string]map[EntityID]*Entity, 32),
		pool:    make([]*Entity, 0, poolCap),
		poolCap: poolCap,
		nextID:  1,
	}
}

// CreateEntity returns a usable entity, preferring a pooled, reset shell
// over fresh allocation. A fresh identity is assigned only when no pooled
// shell is available; a recycled shell keeps the identity it was issued.
// A non-empty name is added as a tag. Fires entity.created.
func (m *Manager) CreateEntity(name string) *Entity {
	var e *Entity
	if n := len(m.pool); n > 0 {
		e = m.pool[n-1]
		m.pool = m.pool[:n-1]
	} else {
		e = newEntity(m.nextID)
		m.nextID++
	}
	e.mgr = m
	m.byID[e.id] = e
	m.list = append(m.list, e)

	if name != "" {
		e.AddTag(name)
	}
	m.bus.Publish(event.TopicEntityCreated, EntityEvent{Entity: e})
	return e
}

// DestroyEntity removes an entity from the registry. No-op for unknown ids.
// entity.destroyed fires before any state is removed, so observers see the
// entity fully intact in the handler body. Afterwards every component is
// detached (firing detach hooks and component.removed), every tag bucket is
// cleared, and the shell is offered to the recycle pool.
func (m *Manager) DestroyEntity(id EntityID) {
	e, ok := m.byID[id]
	if !ok {
		m.log.Debug("destroy of unknown entity", zap.Uint64("id", uint64(id)))
		return
	}
	if e.destroying {
		return
	}
	e.destroying = true

	m.bus.Publish(event.TopicEntityDestroyed, EntityEvent{Entity: e})

	e.reset()
	delete(m.byID, id)
	for i, le := range m.list {
		if le == e {
			m.list[i] = m.list[len(m.list)-1]
			m.list = m.list[:len(m.list)-1]
			break
		}
	}
	e.mgr = nil

	if len(m.pool) < m.poolCap {
		m.pool = append(m.pool, e)
	}
}

// Entity returns the live entity with the given id, or nil.
func (m *Manager) Entity(id EntityID) *Entity {
	return m.byID[id]
}

// EntitiesByTag returns the entities currently carrying the tag.
func (m *Manager) EntitiesByTag(tag string) []*Entity {
	bucket := m.tags[tag]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]*Entity, 0, len(bucket))
	for _, e := range bucket {
		out = append(out, e)
	}
	return out
}

// EntitiesWith returns entities carrying every listed component kind, in
// registry enumeration order. An empty kind list returns all entities.
func (m *Manager) EntitiesWith(kinds ...Kind) []*Entity {
	if len(kinds) == 0 {
		return m.All()
	}
	var out []*Entity
	for _, e := range m.list {
		if e.HasAll(kinds) {
			out = append(out, e)
		}
	}
	return out
}

// All returns every live entity in registry enumeration order.
func (m *Manager) All() []*Entity {
	out := make([]*Entity, len(m.list))
	copy(out, m.list)
	return out
}

// Count returns the number of live entities.
func (m *Manager) Count() int { return len(m.byID) }

// PooledCount returns the number of shells waiting in the recycle pool.
func (m *Manager) PooledCount() int { return len(m.pool) }

// Clear destroys every live entity. The recycle pool keeps at most its
// configured capacity of shells.
func (m *Manager) Clear() {
	for _, e := range m.All() {
		m.DestroyEntity(e.id)
	}
}

// onTagAdded is the index-maintenance hook invoked by the entity itself.
func (m *Manager) onTagAdded(e *Entity, tag string) {
	bucket := m.tags[tag]
	if bucket == nil {
		bucket = make(map[EntityID]*Entity, 4)
		m.tags[tag] = bucket
	}
	bucket[e.id] = e
}

// onTagRemoved is the index-maintenance hook invoked by the entity itself.
// Empty buckets are pruned.
func (m *Manager) onTagRemoved(e *Entity, tag string) {
	bucket := m.tags[tag]
	if bucket == nil {
		return
	}
	delete(bucket, e.id)
	if len(bucket) == 0 {
		delete(m.tags, tag)
	}
}
