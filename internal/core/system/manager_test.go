package system

import (
	"testing"
	"time"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/event"
)

type marker struct {
	ecs.Base
}

func (*marker) Kind() ecs.Kind { return ecs.KindFor[marker]() }

type recorder struct {
	Base
	name    string
	trace   *[]string
	inits   int
	updates int
	entities []ecs.EntityID
}

func (r *recorder) Init(*ecs.Manager) { r.inits++ }

func (r *recorder) Update(time.Duration) {
	r.updates++
	if r.trace != nil {
		*r.trace = append(*r.trace, r.name)
	}
	r.entities = r.entities[:0]
}

func (r *recorder) ProcessEntity(e *ecs.Entity, _ time.Duration) {
	r.entities = append(r.entities, e.ID())
}

// second is a distinct type so duplicate-type rejection does not apply.
type second struct{ recorder }

func newScheduler(t *testing.T) (*Manager, *ecs.Manager) {
	t.Helper()
	entities := ecs.NewManager(event.NewBus(nil), 8, nil)
	return NewManager(entities, nil), entities
}

func TestUpdateRunsInPriorityOrder(t *testing.T) {
	sched, _ := newScheduler(t)
	var trace []string

	late := &recorder{name: "late", trace: &trace}
	late.SystemPriority = 50
	early := &second{}
	early.name = "early"
	early.trace = &trace
	early.SystemPriority = 10

	sched.Register(late)
	sched.Register(early)
	sched.Initialize()
	sched.Update(time.Millisecond)

	if len(trace) != 2 || trace[0] != "early" || trace[1] != "late" {
		t.Fatalf("expected [early late], got %v", trace)
	}
}

func TestDuplicateTypeRegistrationRejected(t *testing.T) {
	sched, _ := newScheduler(t)
	first := &recorder{name: "first"}
	sched.Register(first)
	sched.Register(&recorder{name: "second"})

	if sched.Count() != 1 {
		t.Fatalf("expected 1 registered system, got %d", sched.Count())
	}

	sched.Initialize()
	sched.Update(time.Millisecond)
	if first.updates != 1 {
		t.Fatal("the existing registration should have been kept")
	}
}

func TestDisabledSystemIsSkipped(t *testing.T) {
	sched, _ := newScheduler(t)
	r := &recorder{name: "r"}
	sched.Register(r)
	sched.Initialize()

	r.SetEnabled(false)
	sched.Update(time.Millisecond)
	if r.updates != 0 {
		t.Fatal("disabled system must not update")
	}

	r.SetEnabled(true)
	sched.Update(time.Millisecond)
	if r.updates != 1 {
		t.Fatal("re-enabled system must update again")
	}
}

func TestInitializeRunsOnce(t *testing.T) {
	sched, _ := newScheduler(t)
	r := &recorder{name: "r"}
	sched.Register(r)

	sched.Initialize()
	sched.Initialize()
	if r.inits != 1 {
		t.Fatalf("expected 1 init, got %d", r.inits)
	}
}

func TestLateRegistrationInitsImmediately(t *testing.T) {
	sched, _ := newScheduler(t)
	sched.Initialize()

	r := &recorder{name: "late"}
	sched.Register(r)
	if r.inits != 1 {
		t.Fatal("system registered after Initialize must be set up on registration")
	}
}

func TestEntityFilterIsFreshEachTick(t *testing.T) {
	sched, entities := newScheduler(t)
	r := &recorder{name: "r"}
	r.RequiredKinds = []ecs.Kind{ecs.KindFor[marker]()}
	sched.Register(r)
	sched.Initialize()

	a := entities.CreateEntity("")
	a.Attach(&marker{})
	sched.Update(time.Millisecond)
	if len(r.entities) != 1 || r.entities[0] != a.ID() {
		t.Fatalf("expected [%d], got %v", a.ID(), r.entities)
	}

	// A component attached between ticks is picked up without any
	// re-registration step.
	b := entities.CreateEntity("")
	b.Attach(&marker{})
	sched.Update(time.Millisecond)
	if len(r.entities) != 2 {
		t.Fatalf("expected 2 matches after attach, got %d", len(r.entities))
	}

	entities.DestroyEntity(a.ID())
	sched.Update(time.Millisecond)
	if len(r.entities) != 1 || r.entities[0] != b.ID() {
		t.Fatalf("expected only %d after destroy, got %v", b.ID(), r.entities)
	}
}

func TestNoRequiredKindsMatchesEveryEntity(t *testing.T) {
	sched, entities := newScheduler(t)
	r := &recorder{name: "r"}
	sched.Register(r)
	sched.Initialize()

	entities.CreateEntity("")
	entities.CreateEntity("")
	sched.Update(time.Millisecond)
	if len(r.entities) != 2 {
		t.Fatalf("empty required set should match all entities, got %d", len(r.entities))
	}
}
