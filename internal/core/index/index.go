// Package index provides the renderer-facing secondary view of entities:
// an entity→view mapping plus a tag index intentionally separate from the
// registry's own, usable by non-registry consumers.
package index

import "github.com/matthew-kissinger/Asteroid-Miner-sub010/internal/core/ecs"

// View is the renderer-facing metadata for one entity. Opaque to the core.
type View struct {
	MeshRef     string
	InstanceKey string
	InstanceID  int
}

// Index maps entity ids to views and tags. Accessed only from the game loop
// goroutine — no locks.
type Index struct {
	views map[ecs.EntityID]View
	tags  map[string]map[ecs.EntityID]struct{}
}

// New creates an empty index.
func New() *Index {
	return &Index{
		views: make(map[ecs.EntityID]View, 256),
		tags:  make(map[string]map[ecs.EntityID]struct{}, 32),
	}
}

// SetView stores the view for an entity, replacing any previous one.
func (ix *Index) SetView(id ecs.EntityID, v View) {
	ix.views[id] = v
}

// View returns the view for an entity.
func (ix *Index) View(id ecs.EntityID) (View, bool) {
	v, ok := ix.views[id]
	return v, ok
}

// ClearView drops the view for an entity. No-op for unknown ids.
func (ix *Index) ClearView(id ecs.EntityID) {
	delete(ix.views, id)
}

// AddTag records a tag for an entity.
func (ix *Index) AddTag(id ecs.EntityID, tag string) {
	bucket := ix.tags[tag]
	if bucket == nil {
		bucket = make(map[ecs.EntityID]struct{}, 4)
		ix.tags[tag] = bucket
	}
	bucket[id] = struct{}{}
}

// RemoveTag drops a tag for an entity, pruning empty buckets.
func (ix *Index) RemoveTag(id ecs.EntityID, tag string) {
	bucket := ix.tags[tag]
	if bucket == nil {
		return
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(ix.tags, tag)
	}
}

// ByTag returns the ids currently carrying the tag.
func (ix *Index) ByTag(tag string) []ecs.EntityID {
	bucket := ix.tags[tag]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]ecs.EntityID, 0, len(bucket))
	for id := range bucket {
		out = append(out, id)
	}
	return out
}

// RemoveEntity drops the entity's view and every tag record. Used on
// destroy so the secondary index never outlives primary state.
func (ix *Index) RemoveEntity(id ecs.EntityID) {
	delete(ix.views, id)
	for tag, bucket := range ix.tags {
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(ix.tags, tag)
		}
	}
}

// ViewCount returns the number of stored views.
func (ix *Index) ViewCount() int { return len(ix.views) }
