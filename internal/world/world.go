// Package world is the composition root: it owns one instance of every core
// part, wires them together, and exposes the facade used by external
// collaborators (renderer, gameplay systems, scripts).
package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/event"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/index"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/spatial"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/store"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/system"
)

// Options sizes the world's pools and indexes.
type Options struct {
	EntityPoolSize    int
	TransformCapacity int
	RigidBodyCapacity int
	SpatialCellSize   float64
}

// DefaultOptions are the sizes used when a field is left zero.
func DefaultOptions() Options {
	return Options{
		EntityPoolSize:    256,
		TransformCapacity: 4096,
		RigidBodyCapacity: 2048,
		SpatialCellSize:   200,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.EntityPoolSize == 0 {
		o.EntityPoolSize = d.EntityPoolSize
	}
	if o.TransformCapacity == 0 {
		o.TransformCapacity = d.TransformCapacity
	}
	if o.RigidBodyCapacity == 0 {
		o.RigidBodyCapacity = d.RigidBodyCapacity
	}
	if o.SpatialCellSize == 0 {
		o.SpatialCellSize = d.SpatialCellSize
	}
	return o
}

// World wires the entity registry, scheduler, event bus, secondary indexes,
// and columnar stores into one simulation instance. The bus is injected, not
// ambient: one bus may be shared across producers, but every index here is
// exclusively owned by this World. Accessed only from the game loop
// goroutine — no locks.
type World struct {
	log *zap.Logger

	bus      *event.Bus
	entities *ecs.Manager
	systems  *system.Manager
	views    *index.Index
	spatial  *spatial.Hash

	transforms *store.TransformStore
	bodies     *store.RigidBodyStore

	initialized bool
}

// New builds a world around an explicitly injected bus. A nil bus gets a
// private one; a nil logger falls back to zap.NewNop.
func New(bus *event.Bus, opts Options, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	if bus == nil {
		bus = event.NewBus(log)
	}
	opts = opts.withDefaults()

	entities := ecs.NewManager(bus, opts.EntityPoolSize, log)
	w := &World{
		log:        log,
		bus:        bus,
		entities:   entities,
		systems:    system.NewManager(entities, log),
		views:      index.New(),
		spatial:    spatial.NewHash(opts.SpatialCellSize, log),
		transforms: store.NewTransformStore(opts.TransformCapacity, log),
		bodies:     store.NewRigidBodyStore(opts.RigidBodyCapacity, log),
	}

	return w
}

// Bus returns the injected event bus.
func (w *World) Bus() *event.Bus { return w.bus }

// Entities returns the entity registry.
func (w *World) Entities() *ecs.Manager { return w.entities }

// Systems returns the scheduler.
func (w *World) Systems() *system.Manager { return w.systems }

// Views returns the renderer-facing secondary index.
func (w *World) Views() *index.Index { return w.views }

// Spatial returns the proximity index. Kept in sync by explicit hook calls,
// not automatically.
func (w *World) Spatial() *spatial.Hash { return w.spatial }

// Transforms returns the columnar transform store.
func (w *World) Transforms() *store.TransformStore { return w.transforms }

// Bodies returns the columnar rigid-body store.
func (w *World) Bodies() *store.RigidBodyStore { return w.bodies }

// CreateEntity creates an entity, tagging it with name when non-empty.
func (w *World) CreateEntity(name string) *ecs.Entity {
	return w.entities.CreateEntity(name)
}

// DestroyEntity destroys an entity by id, then releases the secondary state
// this World attached to it: columnar slots, spatial cells, and the view.
// The indexes themselves stay sync-by-explicit-call; this facade is the
// explicit call site. No-op for unknown ids.
func (w *World) DestroyEntity(id ecs.EntityID) {
	if w.entities.Entity(id) == nil {
		return
	}
	w.entities.DestroyEntity(id)
	w.transforms.Free(id)
	w.bodies.Free(id)
	w.spatial.Remove(id)
	w.views.RemoveEntity(id)
}

// Entity returns the live entity with the given id, or nil.
func (w *World) Entity(id ecs.EntityID) *ecs.Entity {
	return w.entities.Entity(id)
}

// EntitiesByTag returns entities currently carrying the tag.
func (w *World) EntitiesByTag(tag string) []*ecs.Entity {
	return w.entities.EntitiesByTag(tag)
}

// EntitiesWith returns entities carrying every listed component kind.
func (w *World) EntitiesWith(kinds ...ecs.Kind) []*ecs.Entity {
	return w.entities.EntitiesWith(kinds...)
}

// RegisterSystem adds a processing unit to the scheduler.
func (w *World) RegisterSystem(s system.System) {
	w.systems.Register(s)
}

// Initialize runs one-time system setup and publishes world.initialized.
func (w *World) Initialize() {
	if w.initialized {
		return
	}
	w.initialized = true
	w.systems.Initialize()
	w.bus.Publish(event.TopicWorldInitialized, nil)
	w.log.Info("world initialized",
		zap.Int("systems", w.systems.Count()),
		zap.Int("entities", w.entities.Count()))
}

// Update runs one tick: world.preUpdate, the scheduler pass, then
// world.postUpdate.
func (w *World) Update(dt time.Duration) {
	w.bus.Publish(event.TopicWorldPreUpdate, dt)
	w.systems.Update(dt)
	w.bus.Publish(event.TopicWorldPostUpdate, dt)
}

// Clear destroys every entity and empties the secondary indexes. Systems
// stay registered.
func (w *World) Clear() {
	for _, e := range w.entities.All() {
		w.DestroyEntity(e.ID())
	}
	w.spatial.Clear()
}
