package store

import (
	"go.uber.org/zap"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/spatial"
)

// Transform field layout: slot*transformStride + offset.
const (
	tfPosX = iota
	tfPosY
	tfPosZ
	tfQuatX
	tfQuatY
	tfQuatZ
	tfQuatW
	tfScaleX
	tfScaleY
	tfScaleZ
	transformStride
)

// TransformStore holds position, orientation, and scale for high-frequency
// entities in a flat stride-indexed array. Accessors no-op on ids without a
// slot. Slot defaults: origin position, identity orientation, unit scale.
type TransformStore struct {
	slots *Slots
	data  []float64
}

// NewTransformStore creates a store with room for capacity entities.
func NewTransformStore(capacity int, log *zap.Logger) *TransformStore {
	t := &TransformStore{
		data: make([]float64, capacity*transformStride),
	}
	t.slots = NewSlots("transform", capacity, t.initSlot, log)
	return t
}

// initSlot resets a slot to transform defaults.
func (t *TransformStore) initSlot(slot int) {
	base := slot * transformStride
	for i := 0; i < transformStride; i++ {
		t.data[base+i] = 0
	}
	t.data[base+tfQuatW] = 1
	t.data[base+tfScaleX] = 1
	t.data[base+tfScaleY] = 1
	t.data[base+tfScaleZ] = 1
}

// Allocate issues (or returns) the entity's slot; InvalidSlot when full.
func (t *TransformStore) Allocate(id ecs.EntityID) int { return t.slots.Allocate(id) }

// Free releases the entity's slot.
func (t *TransformStore) Free(id ecs.EntityID) { t.slots.Free(id) }

// Index returns the entity's slot, or InvalidSlot.
func (t *TransformStore) Index(id ecs.EntityID) int { return t.slots.IndexOf(id) }

// Len returns the number of live allocations.
func (t *TransformStore) Len() int { return t.slots.Len() }

// Cap returns the fixed capacity.
func (t *TransformStore) Cap() int { return t.slots.Cap() }

// Each calls fn for every allocated entity.
func (t *TransformStore) Each(fn func(id ecs.EntityID, slot int)) { t.slots.Each(fn) }

// SetPosition writes the entity's position. No-op without a slot.
func (t *TransformStore) SetPosition(id ecs.EntityID, x, y, z float64) {
	slot := t.slots.IndexOf(id)
	if slot == InvalidSlot {
		return
	}
	base := slot * transformStride
	t.data[base+tfPosX] = x
	t.data[base+tfPosY] = y
	t.data[base+tfPosZ] = z
}

// Position returns the entity's position; ok is false without a slot.
func (t *TransformStore) Position(id ecs.EntityID) (pos spatial.Vec3, ok bool) {
	slot := t.slots.IndexOf(id)
	if slot == InvalidSlot {
		return spatial.Vec3{}, false
	}
	base := slot * transformStride
	return spatial.Vec3{
		X: t.data[base+tfPosX],
		Y: t.data[base+tfPosY],
		Z: t.data[base+tfPosZ],
	}, true
}

// SetRotation writes the entity's orientation quaternion. No-op without a
// slot.
func (t *TransformStore) SetRotation(id ecs.EntityID, x, y, z, w float64) {
	slot := t.slots.IndexOf(id)
	if slot == InvalidSlot {
		return
	}
	base := slot * transformStride
	t.data[base+tfQuatX] = x
	t.data[base+tfQuatY] = y
	t.data[base+tfQuatZ] = z
	t.data[base+tfQuatW] = w
}

// Rotation returns the orientation quaternion; ok is false without a slot.
func (t *TransformStore) Rotation(id ecs.EntityID) (x, y, z, w float64, ok bool) {
	slot := t.slots.IndexOf(id)
	if slot == InvalidSlot {
		return 0, 0, 0, 0, false
	}
	base := slot * transformStride
	return t.data[base+tfQuatX], t.data[base+tfQuatY], t.data[base+tfQuatZ], t.data[base+tfQuatW], true
}

// SetScale writes the entity's scale. No-op without a slot.
func (t *TransformStore) SetScale(id ecs.EntityID, x, y, z float64) {
	slot := t.slots.IndexOf(id)
	if slot == InvalidSlot {
		return
	}
	base := slot * transformStride
	t.data[base+tfScaleX] = x
	t.data[base+tfScaleY] = y
	t.data[base+tfScaleZ] = z
}

// Scale returns the entity's scale; ok is false without a slot.
func (t *TransformStore) Scale(id ecs.EntityID) (x, y, z float64, ok bool) {
	slot := t.slots.IndexOf(id)
	if slot == InvalidSlot {
		return 0, 0, 0, false
	}
	base := slot * transformStride
	return t.data[base+tfScaleX], t.data[base+tfScaleY], t.data[base+tfScaleZ], true
}

// Translate adds a delta to the entity's position. No-op without a slot.
func (t *TransformStore) Translate(id ecs.EntityID, dx, dy, dz float64) {
	slot := t.slots.IndexOf(id)
	if slot == InvalidSlot {
		return
	}
	base := slot * transformStride
	t.data[base+tfPosX] += dx
	t.data[base+tfPosY] += dy
	t.data[base+tfPosZ] += dz
}
