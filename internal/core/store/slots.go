// Package store provides dense columnar component storage: fixed-capacity
// parallel arrays over a shared slot allocator, as the high-frequency
// alternative to per-entity associative storage.
package store

import (
	"go.uber.org/zap"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
)

// InvalidSlot is the sentinel returned when allocation fails or an id has
// no slot.
const InvalidSlot = -1

// Slots is a fixed-capacity slot allocator: an entity→slot map, a free-list
// of released slots, and a monotonically increasing high-water mark. A slot
// index is valid for exactly one live entity pairing at a time; freed slot
// contents are untouched until the reset hook runs on reallocation.
type Slots struct {
	log      *zap.Logger
	name     string
	capacity int
	next     int // high-water mark
	free     []int
	index    map[ecs.EntityID]int
	reset    func(slot int)
}

// NewSlots creates an allocator for capacity slots. reset is invoked with a
// slot index every time that slot is issued, before the caller sees it.
func NewSlots(name string, capacity int, reset func(slot int), log *zap.Logger) *Slots {
	if log == nil {
		log = zap.NewNop()
	}
	if capacity < 0 {
		capacity = 0
	}
	return &Slots{
		log:      log,
		name:     name,
		capacity: capacity,
		free:     make([]int, 0, 16),
		index:    make(map[ecs.EntityID]int, capacity),
		reset:    reset,
	}
}

// Allocate returns the entity's slot, issuing one if needed. Idempotent:
// an already-allocated id gets its existing slot with no reset. Returns
// InvalidSlot and logs once capacity is exhausted.
func (s *Slots) Allocate(id ecs.EntityID) int {
	if slot, ok := s.index[id]; ok {
		return slot
	}
	var slot int
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else if s.next < s.capacity {
		slot = s.next
		s.next++
	} else {
		s.log.Warn("columnar store exhausted",
			zap.String("store", s.name),
			zap.Int("capacity", s.capacity),
			zap.Uint64("entity", uint64(id)))
		return InvalidSlot
	}
	s.index[id] = slot
	if s.reset != nil {
		s.reset(slot)
	}
	return slot
}

// Free releases the entity's slot back to the free-list. No-op for ids
// without a slot.
func (s *Slots) Free(id ecs.EntityID) {
	slot, ok := s.index[id]
	if !ok {
		return
	}
	delete(s.index, id)
	s.free = append(s.free, slot)
}

// IndexOf returns the entity's slot, or InvalidSlot.
func (s *Slots) IndexOf(id ecs.EntityID) int {
	if slot, ok := s.index[id]; ok {
		return slot
	}
	return InvalidSlot
}

// Contains reports whether the entity holds a slot.
func (s *Slots) Contains(id ecs.EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// Each calls fn for every live (entity, slot) pairing.
func (s *Slots) Each(fn func(id ecs.EntityID, slot int)) {
	for id, slot := range s.index {
		fn(id, slot)
	}
}

// Len returns the number of live allocations.
func (s *Slots) Len() int { return len(s.index) }

// Cap returns the fixed capacity.
func (s *Slots) Cap() int { return s.capacity }

// Clear releases every slot and resets the high-water mark.
func (s *Slots) Clear() {
	s.next = 0
	s.free = s.free[:0]
	s.index = make(map[ecs.EntityID]int, s.capacity)
}
