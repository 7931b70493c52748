package store

import (
	"go.uber.org/zap"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/spatial"
)

// Rigid-body field layout: slot*bodyStride + offset.
const (
	rbVelX = iota
	rbVelY
	rbVelZ
	rbAngVelX
	rbAngVelY
	rbAngVelZ
	rbMass
	rbDrag
	rbAngDrag
	rbForceX
	rbForceY
	rbForceZ
	rbTorqueX
	rbTorqueY
	rbTorqueZ
	bodyStride
)

// Rigid-body slot defaults.
const (
	defaultMass    = 1.0
	defaultDrag    = 0.01
	defaultAngDrag = 0.05
)

// RigidBodyStore holds velocity, mass, drag, and force/torque accumulators
// in flat stride-indexed arrays, plus a kinematic flag per slot. Accessors
// no-op on ids without a slot. Slot defaults: unit mass, small linear and
// angular drag, non-kinematic, everything else zero.
type RigidBodyStore struct {
	slots     *Slots
	data      []float64
	kinematic []bool
}

// NewRigidBodyStore creates a store with room for capacity entities.
func NewRigidBodyStore(capacity int, log *zap.Logger) *RigidBodyStore {
	r := &RigidBodyStore{
		data:      make([]float64, capacity*bodyStride),
		kinematic: make([]bool, capacity),
	}
	r.slots = NewSlots("rigidbody", capacity, r.initSlot, log)
	return r
}

// initSlot resets a slot to rigid-body defaults.
func (r *RigidBodyStore) initSlot(slot int) {
	base := slot * bodyStride
	for i := 0; i < bodyStride; i++ {
		r.data[base+i] = 0
	}
	r.data[base+rbMass] = defaultMass
	r.data[base+rbDrag] = defaultDrag
	r.data[base+rbAngDrag] = defaultAngDrag
	r.kinematic[slot] = false
}

// Allocate issues (or returns) the entity's slot; InvalidSlot when full.
func (r *RigidBodyStore) Allocate(id ecs.EntityID) int { return r.slots.Allocate(id) }

// Free releases the entity's slot.
func (r *RigidBodyStore) Free(id ecs.EntityID) { r.slots.Free(id) }

// Index returns the entity's slot, or InvalidSlot.
func (r *RigidBodyStore) Index(id ecs.EntityID) int { return r.slots.IndexOf(id) }

// Len returns the number of live allocations.
func (r *RigidBodyStore) Len() int { return r.slots.Len() }

// Cap returns the fixed capacity.
func (r *RigidBodyStore) Cap() int { return r.slots.Cap() }

// Each calls fn for every allocated entity.
func (r *RigidBodyStore) Each(fn func(id ecs.EntityID, slot int)) { r.slots.Each(fn) }

// SetVelocity writes the linear velocity. No-op without a slot.
func (r *RigidBodyStore) SetVelocity(id ecs.EntityID, x, y, z float64) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return
	}
	base := slot * bodyStride
	r.data[base+rbVelX] = x
	r.data[base+rbVelY] = y
	r.data[base+rbVelZ] = z
}

// Velocity returns the linear velocity; ok is false without a slot.
func (r *RigidBodyStore) Velocity(id ecs.EntityID) (v spatial.Vec3, ok bool) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return spatial.Vec3{}, false
	}
	base := slot * bodyStride
	return spatial.Vec3{
		X: r.data[base+rbVelX],
		Y: r.data[base+rbVelY],
		Z: r.data[base+rbVelZ],
	}, true
}

// SetAngularVelocity writes the angular velocity. No-op without a slot.
func (r *RigidBodyStore) SetAngularVelocity(id ecs.EntityID, x, y, z float64) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return
	}
	base := slot * bodyStride
	r.data[base+rbAngVelX] = x
	r.data[base+rbAngVelY] = y
	r.data[base+rbAngVelZ] = z
}

// AngularVelocity returns the angular velocity; ok is false without a slot.
func (r *RigidBodyStore) AngularVelocity(id ecs.EntityID) (v spatial.Vec3, ok bool) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return spatial.Vec3{}, false
	}
	base := slot * bodyStride
	return spatial.Vec3{
		X: r.data[base+rbAngVelX],
		Y: r.data[base+rbAngVelY],
		Z: r.data[base+rbAngVelZ],
	}, true
}

// SetMass writes the mass. Non-positive values are ignored and logged by
// callers that care; the store clamps to the current value.
func (r *RigidBodyStore) SetMass(id ecs.EntityID, mass float64) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot || mass <= 0 {
		return
	}
	r.data[slot*bodyStride+rbMass] = mass
}

// Mass returns the mass; ok is false without a slot.
func (r *RigidBodyStore) Mass(id ecs.EntityID) (mass float64, ok bool) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return 0, false
	}
	return r.data[slot*bodyStride+rbMass], true
}

// SetDrag writes the linear and angular drag coefficients. No-op without a
// slot.
func (r *RigidBodyStore) SetDrag(id ecs.EntityID, drag, angularDrag float64) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return
	}
	base := slot * bodyStride
	r.data[base+rbDrag] = drag
	r.data[base+rbAngDrag] = angularDrag
}

// Drag returns the linear and angular drag; ok is false without a slot.
func (r *RigidBodyStore) Drag(id ecs.EntityID) (drag, angularDrag float64, ok bool) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return 0, 0, false
	}
	base := slot * bodyStride
	return r.data[base+rbDrag], r.data[base+rbAngDrag], true
}

// SetKinematic marks the body as externally driven. Kinematic bodies ignore
// forces and impulses. No-op without a slot.
func (r *RigidBodyStore) SetKinematic(id ecs.EntityID, kinematic bool) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return
	}
	r.kinematic[slot] = kinematic
}

// Kinematic reports the kinematic flag; ok is false without a slot.
func (r *RigidBodyStore) Kinematic(id ecs.EntityID) (kinematic, ok bool) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return false, false
	}
	return r.kinematic[slot], true
}

// ApplyForce adds to the force accumulator. No-op without a slot or on
// kinematic bodies.
func (r *RigidBodyStore) ApplyForce(id ecs.EntityID, x, y, z float64) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot || r.kinematic[slot] {
		return
	}
	base := slot * bodyStride
	r.data[base+rbForceX] += x
	r.data[base+rbForceY] += y
	r.data[base+rbForceZ] += z
}

// ApplyImpulse changes velocity immediately by impulse/mass. No-op without
// a slot or on kinematic bodies.
func (r *RigidBodyStore) ApplyImpulse(id ecs.EntityID, x, y, z float64) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot || r.kinematic[slot] {
		return
	}
	base := slot * bodyStride
	inv := 1.0 / r.data[base+rbMass]
	r.data[base+rbVelX] += x * inv
	r.data[base+rbVelY] += y * inv
	r.data[base+rbVelZ] += z * inv
}

// ApplyTorque adds to the torque accumulator. No-op without a slot or on
// kinematic bodies.
func (r *RigidBodyStore) ApplyTorque(id ecs.EntityID, x, y, z float64) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot || r.kinematic[slot] {
		return
	}
	base := slot * bodyStride
	r.data[base+rbTorqueX] += x
	r.data[base+rbTorqueY] += y
	r.data[base+rbTorqueZ] += z
}

// Force returns the force accumulator; ok is false without a slot.
func (r *RigidBodyStore) Force(id ecs.EntityID) (f spatial.Vec3, ok bool) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return spatial.Vec3{}, false
	}
	base := slot * bodyStride
	return spatial.Vec3{
		X: r.data[base+rbForceX],
		Y: r.data[base+rbForceY],
		Z: r.data[base+rbForceZ],
	}, true
}

// ClearAccumulators zeroes the force and torque accumulators, typically
// after an integration step. No-op without a slot.
func (r *RigidBodyStore) ClearAccumulators(id ecs.EntityID) {
	slot := r.slots.IndexOf(id)
	if slot == InvalidSlot {
		return
	}
	base := slot * bodyStride
	for i := rbForceX; i <= rbTorqueZ; i++ {
		r.data[base+i] = 0
	}
}
