package spatial

import (
	"math"

	"go.uber.org/zap"

	"github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"
)

// Vec3 is a point in world space.
type Vec3 struct {
	X, Y, Z float64
}

// cellKey is an integer 3D cell coordinate.
type cellKey struct {
	X, Y, Z int32
}

// Hash is a uniform-grid bucket index for proximity queries. An entity is
// inserted into every cell overlapped by its axis-aligned bounding box
// (center ± radius); the inverse map records exactly the cells holding it.
// Accessed only from the game loop goroutine — no locks.
//
// QuerySphere is a broad-phase filter: false positives at cell boundaries
// are expected, false negatives are not, provided entities are inserted
// with a radius at least as large as their true extent.
type Hash struct {
	log      *zap.Logger
	cellSize float64
	cells    map[cellKey]map[ecs.EntityID]struct{}
	byEntity map[ecs.EntityID][]cellKey
}

// NewHash creates a spatial hash with the given cell edge length.
func NewHash(cellSize float64, log *zap.Logger) *Hash {
	if log == nil {
		log = zap.NewNop()
	}
	if cellSize <= 0 {
		log.Warn("non-positive spatial cell size, using 1", zap.Float64("cell_size", cellSize))
		cellSize = 1
	}
	return &Hash{
		log:      log,
		cellSize: cellSize,
		cells:    make(map[cellKey]map[ecs.EntityID]struct{}, 256),
		byEntity: make(map[ecs.EntityID][]cellKey, 256),
	}
}

// CellSize returns the grid cell edge length.
func (h *Hash) CellSize() float64 { return h.cellSize }

func (h *Hash) coord(v float64) int32 {
	return int32(math.Floor(v / h.cellSize))
}

// coverage returns the inclusive cell range covered by center ± radius.
func (h *Hash) coverage(center Vec3, radius float64) (min, max cellKey) {
	if radius < 0 {
		radius = 0
	}
	min = cellKey{h.coord(center.X - radius), h.coord(center.Y - radius), h.coord(center.Z - radius)}
	max = cellKey{h.coord(center.X + radius), h.coord(center.Y + radius), h.coord(center.Z + radius)}
	return min, max
}

// Insert adds the entity to every cell its bounding box covers. Inserting
// an id that is already present re-inserts it at the new configuration.
func (h *Hash) Insert(id ecs.EntityID, center Vec3, radius float64) {
	if _, ok := h.byEntity[id]; ok {
		h.Remove(id)
	}
	min, max := h.coverage(center, radius)
	keys := make([]cellKey, 0, int(max.X-min.X+1)*int(max.Y-min.Y+1)*int(max.Z-min.Z+1))
	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				k := cellKey{x, y, z}
				bucket := h.cells[k]
				if bucket == nil {
					bucket = make(map[ecs.EntityID]struct{}, 4)
					h.cells[k] = bucket
				}
				bucket[id] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	h.byEntity[id] = keys
}

// Update repositions an entity: remove-then-insert, no incremental diff.
func (h *Hash) Update(id ecs.EntityID, center Vec3, radius float64) {
	h.Remove(id)
	h.Insert(id, center, radius)
}

// Remove clears the entity from every recorded cell, pruning buckets left
// empty, and drops its cell-list record. No-op for unknown ids.
func (h *Hash) Remove(id ecs.EntityID) {
	keys, ok := h.byEntity[id]
	if !ok {
		return
	}
	for _, k := range keys {
		bucket := h.cells[k]
		if bucket == nil {
			continue
		}
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(h.cells, k)
		}
	}
	delete(h.byEntity, id)
}

// Contains reports whether the entity is currently indexed.
func (h *Hash) Contains(id ecs.EntityID) bool {
	_, ok := h.byEntity[id]
	return ok
}

// QuerySphere unions the buckets covered by the query volume and returns a
// de-duplicated id list. Callers re-filter for exact geometric tests.
func (h *Hash) QuerySphere(center Vec3, radius float64) []ecs.EntityID {
	min, max := h.coverage(center, radius)
	seen := make(map[ecs.EntityID]struct{}, 16)
	var out []ecs.EntityID
	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				for id := range h.cells[cellKey{x, y, z}] {
					if _, dup := seen[id]; dup {
						continue
					}
					seen[id] = struct{}{}
					out = append(out, id)
				}
			}
		}
	}
	return out
}

// CellCount returns the number of non-empty cells.
func (h *Hash) CellCount() int { return len(h.cells) }

// Clear empties the index.
func (h *Hash) Clear() {
	h.cells = make(map[cellKey]map[ecs.EntityID]struct{}, 256)
	h.byEntity = make(map[ecs.EntityID][]cellKey, 256)
}
