package store

import (
	"testing"
)

func TestPositionRoundtrip(t *testing.T) {
	s := NewTransformStore(4, nil)
	if s.Allocate(7) == InvalidSlot {
		t.Fatal("allocation within capacity must succeed")
	}

	s.SetPosition(7, 1, 2, 3)
	pos, ok := s.Position(7)
	if !ok || pos.X != 1 || pos.Y != 2 || pos.Z != 3 {
		t.Fatalf("expected (1,2,3), got %+v ok=%v", pos, ok)
	}

	s.Free(7)
	if s.Index(7) != InvalidSlot {
		t.Fatal("freed entity must resolve to InvalidSlot")
	}
	if _, ok := s.Position(7); ok {
		t.Fatal("read after free must report no slot")
	}
}

func TestSlotDefaultsOnReuse(t *testing.T) {
	s := NewTransformStore(1, nil)
	s.Allocate(1)
	s.SetPosition(1, 9, 9, 9)
	s.SetRotation(1, 0.5, 0.5, 0.5, 0.5)
	s.SetScale(1, 2, 2, 2)
	s.Free(1)

	// The reused slot must come back with defaults, not stale data.
	s.Allocate(2)
	if pos, _ := s.Position(2); pos.X != 0 || pos.Y != 0 || pos.Z != 0 {
		t.Fatalf("expected origin, got %+v", pos)
	}
	if x, y, z, w, _ := s.Rotation(2); x != 0 || y != 0 || z != 0 || w != 1 {
		t.Fatalf("expected identity quaternion, got (%v,%v,%v,%v)", x, y, z, w)
	}
	if x, y, z, _ := s.Scale(2); x != 1 || y != 1 || z != 1 {
		t.Fatalf("expected unit scale, got (%v,%v,%v)", x, y, z)
	}
}

func TestAccessorsNoopWithoutSlot(t *testing.T) {
	s := NewTransformStore(2, nil)
	s.SetPosition(5, 1, 1, 1) // never allocated, must not panic
	s.Translate(5, 1, 1, 1)
	if _, ok := s.Position(5); ok {
		t.Fatal("unallocated id must not resolve")
	}
}

func TestTranslateAccumulates(t *testing.T) {
	s := NewTransformStore(2, nil)
	s.Allocate(1)
	s.SetPosition(1, 10, 0, 0)
	s.Translate(1, -1, 2, 3)
	s.Translate(1, -1, 0, 0)

	pos, _ := s.Position(1)
	if pos.X != 8 || pos.Y != 2 || pos.Z != 3 {
		t.Fatalf("expected (8,2,3), got %+v", pos)
	}
}

func TestTransformCapacityExhaustion(t *testing.T) {
	s := NewTransformStore(2, nil)
	s.Allocate(1)
	s.Allocate(2)
	if s.Allocate(3) != InvalidSlot {
		t.Fatal("expected InvalidSlot once capacity is exhausted")
	}
	if s.Len() != 2 || s.Cap() != 2 {
		t.Fatalf("expected len=2 cap=2, got len=%d cap=%d", s.Len(), s.Cap())
	}
}
