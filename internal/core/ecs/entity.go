package ecs

import "github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/event"

// EntityID uniquely identifies a live entity. IDs are issued monotonically
// for fresh allocations; a pooled shell keeps the ID it was issued, which
// stays unique because the shell is not live while pooled.
type EntityID uint64

// Entity is the leaf data unit: an identity, a kind-keyed component map, and
// a tag set. Entities are created and destroyed only through the Manager.
type Entity struct {
	id         EntityID
	mgr        *Manager // non-owning back-reference; nil while pooled
	components map[Kind]Component
	tags       map[string]struct{}
	destroying bool
}

func newEntity(id EntityID) *Entity {
	return &Entity{
		id:         id,
		components: make(map[Kind]Component, 8),
		tags:       make(map[string]struct{}, 4),
	}
}

// ID returns the entity's identity.
func (e *Entity) ID() EntityID { return e.id }

// Attach adds a component, replacing any existing component of the same
// kind (the replaced one is detached first). Fires the component's
// OnAttached hook, then publishes component.added.
func (e *Entity) Attach(c Component) {
	k := c.Kind()
	if _, exists := e.components[k]; exists {
		e.Detach(k)
	}
	e.components[k] = c
	c.bind(e)
	if h, ok := c.(Attacher); ok {
		h.OnAttached(e)
	}
	if e.mgr != nil {
		e.mgr.bus.Publish(event.TopicComponentAdded, ComponentEvent{
			Entity: e, Kind: k, Component: c,
		})
	}
}

// Detach removes the component of the given kind and returns it, or nil if
// absent. The owner back-reference is cleared before the forward reference
// is released.
func (e *Entity) Detach(k Kind) Component {
	c, ok := e.components[k]
	if !ok {
		return nil
	}
	delete(e.components, k)
	if h, ok := c.(Detacher); ok {
		h.OnDetached(e)
	}
	c.bind(nil)
	if e.mgr != nil {
		e.mgr.bus.Publish(event.TopicComponentRemoved, ComponentEvent{
			Entity: e, Kind: k, Component: c,
		})
	}
	return c
}

// Component returns the attached component of the given kind.
func (e *Entity) Component(k Kind) (Component, bool) {
	c, ok := e.components[k]
	return c, ok
}

// Has reports whether a component of the given kind is attached.
func (e *Entity) Has(k Kind) bool {
	_, ok := e.components[k]
	return ok
}

// HasAll reports whether every listed kind is attached. An empty list
// matches.
func (e *Entity) HasAll(kinds []Kind) bool {
	for _, k := range kinds {
		if _, ok := e.components[k]; !ok {
			return false
		}
	}
	return true
}

// ComponentCount returns the number of attached components.
func (e *Entity) ComponentCount() int { return len(e.components) }

// EnableComponent re-enables the component of the given kind, firing its
// OnEnabled hook on the transition. No-op if absent or already enabled.
func (e *Entity) EnableComponent(k Kind) {
	c, ok := e.components[k]
	if !ok || c.Enabled() {
		return
	}
	c.SetEnabled(true)
	if h, ok := c.(Enabler); ok {
		h.OnEnabled()
	}
}

// DisableComponent disables the component of the given kind, firing its
// OnDisabled hook on the transition. No-op if absent or already disabled.
func (e *Entity) DisableComponent(k Kind) {
	c, ok := e.components[k]
	if !ok || !c.Enabled() {
		return
	}
	c.SetEnabled(false)
	if h, ok := c.(Disabler); ok {
		h.OnDisabled()
	}
}

// AddTag adds a string tag and updates the manager's tag index.
func (e *Entity) AddTag(tag string) {
	if _, ok := e.tags[tag]; ok {
		return
	}
	e.tags[tag] = struct{}{}
	if e.mgr != nil {
		e.mgr.onTagAdded(e, tag)
	}
}

// RemoveTag removes a tag and updates the manager's tag index.
func (e *Entity) RemoveTag(tag string) {
	if _, ok := e.tags[tag]; !ok {
		return
	}
	delete(e.tags, tag)
	if e.mgr != nil {
		e.mgr.onTagRemoved(e, tag)
	}
}

// HasTag reports whether the tag is present. The tag set is the single
// source of truth — there is no cached boolean to reconcile.
func (e *Entity) HasTag(tag string) bool {
	_, ok := e.tags[tag]
	return ok
}

// Tags returns a copy of the entity's tag set.
func (e *Entity) Tags() []string {
	out := make([]string, 0, len(e.tags))
	for t := range e.tags {
		out = append(out, t)
	}
	return out
}

// reset detaches every component and clears every tag (updating the tag
// index), returning the shell to a blank state for pooling.
func (e *Entity) reset() {
	for k := range e.components {
		e.Detach(k)
	}
	for t := range e.tags {
		delete(e.tags, t)
		if e.mgr != nil {
			e.mgr.onTagRemoved(e, t)
		}
	}
	e.destroying = false
}

// Get returns the entity's component of type T. Typed sugar over
// Entity.Component.
func Get[T any](e *Entity) (*T, bool) {
	c, ok := e.Component(KindFor[T]())
	if !ok {
		return nil, false
	}
	t, ok := any(c).(*T)
	return t, ok
}
