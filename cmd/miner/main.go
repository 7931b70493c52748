package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/config"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/event"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/index"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/spatial"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/scripting"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/miner.toml"
	if p := os.Getenv("MINER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if os.Getenv("MINER_PROFILE") == "cpu" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	// 3. Build the bus and world
	bus := event.NewBus(log)
	bus.SetFastTopics(cfg.Bus.FastTopics)
	if cfg.Bus.ValidatePayloads {
		v, verr := event.LoadValidator(cfg.Bus.ShapeTable, log)
		if verr != nil {
			log.Warn("payload validation disabled", zap.Error(verr))
		} else {
			bus.SetValidator(v)
		}
	}

	w := world.New(bus, world.Options{
		EntityPoolSize:    cfg.World.EntityPoolSize,
		TransformCapacity: cfg.World.TransformCapacity,
		RigidBodyCapacity: cfg.World.RigidBodyCapacity,
		SpatialCellSize:   cfg.Spatial.CellSize,
	}, log)

	// 4. Register systems
	w.RegisterSystem(NewDriftSystem(w))
	w.RegisterSystem(NewCensusSystem(w, cfg.Sim.StatsEvery, log))

	if cfg.Scripts.Enabled {
		engine, serr := scripting.NewEngine(cfg.Scripts.Dir, log)
		if serr != nil {
			return fmt.Errorf("lua engine: %w", serr)
		}
		defer engine.Close()
		bindWorldAPI(engine, w)
		if engine.HasFunction("on_drift") {
			w.RegisterSystem(scripting.NewScriptSystem(
				engine, "on_drift", 20, []ecs.Kind{KindAsteroid}, log))
		}
		log.Info("lua scripts loaded", zap.String("dir", cfg.Scripts.Dir))
	}

	// 5. Populate the field
	spawnShip(w)
	spawnAsteroids(w, cfg.Sim)
	w.Initialize()
	log.Info("simulation ready",
		zap.Int("asteroids", cfg.Sim.Asteroids),
		zap.Duration("tick", cfg.Sim.TickRate))

	// 6. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Update(cfg.Sim.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			w.Clear()
			return nil
		}
	}
}

// spawnShip creates the single tagged ship entity at the origin.
func spawnShip(w *world.World) {
	e := w.CreateEntity("ship")
	e.Attach(&Ship{CargoCapacity: 100})
	id := e.ID()
	w.Transforms().Allocate(id)
	w.Bodies().Allocate(id)
	w.Spatial().Insert(id, spatial.Vec3{}, 5)
	w.Views().SetView(id, index.View{
		MeshRef:     "ship_hull",
		InstanceKey: "ship",
		InstanceID:  int(id),
	})
}

// spawnAsteroids scatters tagged asteroid entities across the field with
// random drift velocities.
func spawnAsteroids(w *world.World, sim config.SimConfig) {
	half := sim.FieldSize / 2
	for i := 0; i < sim.Asteroids; i++ {
		e := w.CreateEntity("asteroid")
		radius := 10 + rand.Float64()*40
		e.Attach(&Asteroid{
			Minerals: 50 + rand.Intn(200),
			Radius:   radius,
		})

		id := e.ID()
		pos := spatial.Vec3{
			X: (rand.Float64()*2 - 1) * half,
			Y: (rand.Float64()*2 - 1) * half,
			Z: (rand.Float64()*2 - 1) * half,
		}
		w.Transforms().Allocate(id)
		w.Transforms().SetPosition(id, pos.X, pos.Y, pos.Z)
		w.Bodies().Allocate(id)
		w.Bodies().SetMass(id, radius*radius)
		w.Bodies().SetVelocity(id,
			(rand.Float64()*2-1)*5,
			(rand.Float64()*2-1)*5,
			(rand.Float64()*2-1)*5)
		w.Spatial().Insert(id, pos, radius)
		w.Views().SetView(id, index.View{
			MeshRef:     "asteroid_rock",
			InstanceKey: "asteroid",
			InstanceID:  int(id),
		})
	}
}

// bindWorldAPI exposes position and impulse accessors to Lua scripts.
func bindWorldAPI(engine *scripting.Engine, w *world.World) {
	engine.RegisterFunc("get_position", func(L *lua.LState) int {
		id := ecs.EntityID(L.CheckNumber(1))
		pos, ok := w.Transforms().Position(id)
		if !ok {
			return 0
		}
		L.Push(lua.LNumber(pos.X))
		L.Push(lua.LNumber(pos.Y))
		L.Push(lua.LNumber(pos.Z))
		return 3
	})
	engine.RegisterFunc("set_velocity", func(L *lua.LState) int {
		id := ecs.EntityID(L.CheckNumber(1))
		w.Bodies().SetVelocity(id,
			float64(L.CheckNumber(2)),
			float64(L.CheckNumber(3)),
			float64(L.CheckNumber(4)))
		return 0
	})
	engine.RegisterFunc("add_impulse", func(L *lua.LState) int {
		id := ecs.EntityID(L.CheckNumber(1))
		w.Bodies().ApplyImpulse(id,
			float64(L.CheckNumber(2)),
			float64(L.CheckNumber(3)),
			float64(L.CheckNumber(4)))
		return 0
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
