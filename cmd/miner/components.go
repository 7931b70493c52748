package main

import "github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"

// Kind tokens for the demo components, issued once at init.
var (
	KindAsteroid = ecs.KindFor[Asteroid]()
	KindShip     = ecs.KindFor[Ship]()
)

// Asteroid is a demo component: a mineral payload and a bounding radius for
// the spatial index.
type Asteroid struct {
	ecs.Base
	Minerals int
	Radius   float64
}

func (*Asteroid) Kind() ecs.Kind { return KindAsteroid }

// Ship marks the single player-controlled entity.
type Ship struct {
	ecs.Base
	CargoCapacity int
}

func (*Ship) Kind() ecs.Kind { return KindShip }
