package store

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
)

func TestAllocateIsIdempotent(t *testing.T) {
	s := NewSlots("test", 4, nil, nil)
	a := s.Allocate(1)
	b := s.Allocate(1)
	if a != b {
		t.Fatalf("repeat allocation must return the same slot, got %d then %d", a, b)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 live allocation, got %d", s.Len())
	}
}

func TestExhaustionReturnsSentinelAndWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := NewSlots("test", 2, nil, zap.New(core))

	if s.Allocate(1) == InvalidSlot || s.Allocate(2) == InvalidSlot {
		t.Fatal("allocations within capacity must succeed")
	}
	if got := s.Allocate(3); got != InvalidSlot {
		t.Fatalf("expected InvalidSlot at capacity, got %d", got)
	}
	if logs.FilterMessage("columnar store exhausted").Len() != 1 {
		t.Fatal("exhaustion must be logged")
	}
	if s.Contains(3) {
		t.Fatal("failed allocation must not be recorded")
	}
}

func TestFreedSlotIsReissuedWithReset(t *testing.T) {
	var resets []int
	s := NewSlots("test", 2, func(slot int) { resets = append(resets, slot) }, nil)

	first := s.Allocate(1)
	s.Free(1)
	second := s.Allocate(2)

	if first != second {
		t.Fatalf("freed slot should be reissued, got %d then %d", first, second)
	}
	if len(resets) != 2 {
		t.Fatalf("reset hook must run on every issue, got %d runs", len(resets))
	}
	if s.IndexOf(1) != InvalidSlot {
		t.Fatal("freed id must no longer resolve")
	}
}

func TestFreeUnknownIsNoop(t *testing.T) {
	s := NewSlots("test", 2, nil, nil)
	s.Free(99)
	if s.Len() != 0 {
		t.Fatal("no allocations expected")
	}
}

func TestEachVisitsLivePairings(t *testing.T) {
	s := NewSlots("test", 4, nil, nil)
	s.Allocate(1)
	s.Allocate(2)
	s.Free(1)

	visited := 0
	s.Each(func(id ecs.EntityID, slot int) {
		visited++
		if id != 2 {
			t.Fatalf("unexpected id %d", id)
		}
	})
	if visited != 1 {
		t.Fatalf("expected 1 live pairing, got %d", visited)
	}
}

func TestClearResetsAllocator(t *testing.T) {
	s := NewSlots("test", 2, nil, nil)
	s.Allocate(1)
	s.Allocate(2)
	s.Clear()

	if s.Len() != 0 {
		t.Fatal("clear must release every slot")
	}
	if s.Allocate(3) == InvalidSlot {
		t.Fatal("capacity must be available again after clear")
	}
}
