package event

import "time"

// Lifecycle topics emitted by the core itself. Payload shapes are
// conventions, not enforced contracts (see Validator for the opt-in check).
const (
	TopicEntityCreated    = "entity.created"
	TopicEntityDestroyed  = "entity.destroyed"
	TopicComponentAdded   = "component.added"
	TopicComponentRemoved = "component.removed"
	TopicWorldInitialized = "world.initialized"
	TopicWorldPreUpdate   = "world.preUpdate"
	TopicWorldPostUpdate  = "world.postUpdate"
)

// Message is the immutable envelope delivered to subscribers. It is built
// once at publish time and never mutated after dispatch begins.
type Message struct {
	Topic     string
	Data      any
	Timestamp time.Time
}

// Handler receives one message per dispatch.
type Handler func(Message)
