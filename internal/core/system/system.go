package system

import (
	"time"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
)

// System is the processing-unit contract. The Manager invokes Update once
// per tick for each enabled system, then ProcessEntity once per entity
// matching the system's required component kinds.
type System interface {
	Enabled() bool
	Priority() int // lower runs earlier
	Required() []ecs.Kind

	// Init runs once before the first tick.
	Init(entities *ecs.Manager)

	// Update is the per-tick hook, called before per-entity processing.
	Update(dt time.Duration)

	// ProcessEntity is called once per matching entity per tick, in
	// registry enumeration order.
	ProcessEntity(e *ecs.Entity, dt time.Duration)
}

// Base supplies the bookkeeping half of the System contract. Embed it and
// implement the behavior methods; the zero value is enabled with priority 0
// and no required kinds.
type Base struct {
	SystemPriority int
	RequiredKinds  []ecs.Kind
	disabled       bool
}

func (b *Base) Enabled() bool        { return !b.disabled }
func (b *Base) SetEnabled(on bool)   { b.disabled = !on }
func (b *Base) Priority() int        { return b.SystemPriority }
func (b *Base) Required() []ecs.Kind { return b.RequiredKinds }

func (b *Base) Init(*ecs.Manager)                        {}
func (b *Base) Update(time.Duration)                     {}
func (b *Base) ProcessEntity(*ecs.Entity, time.Duration) {}
