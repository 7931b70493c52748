package system

import (
	"reflect"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
)

// Manager holds the ordered list of processing units and drives per-tick
// invocation. Accessed only from the game loop goroutine — no locks.
type Manager struct {
	log      *zap.Logger
	entities *ecs.Manager
	systems  []System
	byType   map[reflect.Type]System
	inited   bool
}

// NewManager creates a scheduler over the given entity registry.
func NewManager(entities *ecs.Manager, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:      log,
		entities: entities,
		systems:  make([]System, 0, 16),
		byType:   make(map[reflect.Type]System, 16),
	}
}

// Register appends a system and re-sorts by priority. Duplicate
// registration of the same system type is rejected with a warning and the
// existing registration is kept. Relative order among equal priorities is
// unspecified.
func (m *Manager) Register(s System) {
	t := reflect.TypeOf(s)
	if _, dup := m.byType[t]; dup {
		m.log.Warn("duplicate system registration rejected",
			zap.String("system", t.String()))
		return
	}
	m.byType[t] = s
	m.systems = append(m.systems, s)
	sort.Slice(m.systems, func(i, j int) bool {
		return m.systems[i].Priority() < m.systems[j].Priority()
	})
	if m.inited {
		s.Init(m.entities)
	}
}

// Initialize runs each system's one-time setup. Systems registered after
// Initialize are set up on registration.
func (m *Manager) Initialize() {
	if m.inited {
		return
	}
	m.inited = true
	for _, s := range m.systems {
		s.Init(m.entities)
	}
}

// Update iterates the ordered list once, skipping disabled systems. Each
// enabled system re-queries its matching entities fresh — there is no
// cached subscription; every tick pays the filter cost.
func (m *Manager) Update(dt time.Duration) {
	for _, s := range m.systems {
		if !s.Enabled() {
			continue
		}
		s.Update(dt)
		for _, e := range m.entities.EntitiesWith(s.Required()...) {
			s.ProcessEntity(e, dt)
		}
	}
}

// Count returns the number of registered systems.
func (m *Manager) Count() int { return len(m.systems) }
