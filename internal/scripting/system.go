package scripting

import (
	"time"

	"go.uber.org/zap"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/system"
)

// ScriptSystem is a processing unit whose per-entity behavior lives in a
// Lua function fn(entityID, dt). A script error disables nothing and aborts
// nothing; it is logged and the tick continues.
type ScriptSystem struct {
	system.Base
	engine *Engine
	fn     string
	log    *zap.Logger
}

// NewScriptSystem binds a Lua function to the processing-unit contract.
func NewScriptSystem(engine *Engine, fn string, priority int, required []ecs.Kind, log *zap.Logger) *ScriptSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ScriptSystem{engine: engine, fn: fn, log: log}
	s.SystemPriority = priority
	s.RequiredKinds = required
	return s
}

// ProcessEntity delegates to the bound Lua function.
func (s *ScriptSystem) ProcessEntity(e *ecs.Entity, dt time.Duration) {
	if err := s.engine.CallProcess(s.fn, uint64(e.ID()), dt.Seconds()); err != nil {
		s.log.Warn("script entity processing failed",
			zap.String("fn", s.fn),
			zap.Uint64("entity", uint64(e.ID())),
			zap.Error(err))
	}
}
