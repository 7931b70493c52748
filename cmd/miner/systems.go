package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/spatial"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/system"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/world"
)

// DriftSystem integrates rigid-body state into transforms for every
// asteroid and keeps the spatial index current.
type DriftSystem struct {
	system.Base
	w *world.World
}

func NewDriftSystem(w *world.World) *DriftSystem {
	s := &DriftSystem{w: w}
	s.SystemPriority = 10
	s.RequiredKinds = []ecs.Kind{KindAsteroid}
	return s
}

func (s *DriftSystem) ProcessEntity(e *ecs.Entity, dt time.Duration) {
	id := e.ID()
	bodies := s.w.Bodies()
	transforms := s.w.Transforms()

	pos, ok := transforms.Position(id)
	if !ok {
		return
	}
	vel, ok := bodies.Velocity(id)
	if !ok {
		return
	}

	step := dt.Seconds()
	mass, _ := bodies.Mass(id)
	force, _ := bodies.Force(id)
	drag, _, _ := bodies.Drag(id)

	vel.X += force.X / mass * step
	vel.Y += force.Y / mass * step
	vel.Z += force.Z / mass * step

	damp := 1 - drag*step
	if damp < 0 {
		damp = 0
	}
	vel.X *= damp
	vel.Y *= damp
	vel.Z *= damp

	pos.X += vel.X * step
	pos.Y += vel.Y * step
	pos.Z += vel.Z * step

	bodies.SetVelocity(id, vel.X, vel.Y, vel.Z)
	bodies.ClearAccumulators(id)
	transforms.SetPosition(id, pos.X, pos.Y, pos.Z)

	if ast, ok := ecs.Get[Asteroid](e); ok {
		s.w.Spatial().Update(id, pos, ast.Radius)
	}
}

// CensusSystem periodically logs world population and a proximity sample
// around the origin, and publishes the numbers on sim.census.
type CensusSystem struct {
	system.Base
	w         *world.World
	log       *zap.Logger
	every     int
	tick      int
	sampleRad float64
}

// CensusReport is the sim.census payload.
type CensusReport struct {
	Entities   int
	NearOrigin int
}

func NewCensusSystem(w *world.World, every int, log *zap.Logger) *CensusSystem {
	if every <= 0 {
		every = 300
	}
	s := &CensusSystem{w: w, log: log, every: every, sampleRad: 500}
	s.SystemPriority = 100
	return s
}

func (s *CensusSystem) Update(dt time.Duration) {
	s.tick++
	if s.tick%s.every != 0 {
		return
	}
	report := CensusReport{
		Entities:   s.w.Entities().Count(),
		NearOrigin: len(s.w.Spatial().QuerySphere(spatial.Vec3{}, s.sampleRad)),
	}
	s.log.Info("census",
		zap.Int("entities", report.Entities),
		zap.Int("near_origin", report.NearOrigin),
		zap.Int("pooled", s.w.Entities().PooledCount()))
	s.w.Bus().Publish("sim.census", report)
}

// Required narrows the per-entity pass to nothing the census cares about;
// all work happens in Update. An empty set would match every entity.
func (s *CensusSystem) Required() []ecs.Kind { return []ecs.Kind{KindShip, KindAsteroid} }
