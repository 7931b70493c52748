package event

import (
	"time"

	"go.uber.org/zap"
)

// Bus is a topic-keyed synchronous publish/subscribe bus.
// Accessed only from the game loop goroutine — no locks.
//
// Dispatch rules:
//   - Publish outside a dispatch snapshots the subscriber list, so
//     unsubscribing during the pass cannot affect it and subscriptions added
//     during the pass do not see the current message.
//   - Publish during a dispatch queues the message; queued messages are
//     drained batch by batch after the current listener loop finishes
//     (breadth-first, submission order preserved within each batch).
//   - A listener panic is recovered and logged; later listeners still run.
//
// Topics named in the fast set skip the snapshot and the queue entirely and
// are delivered against the live list. Which topics get that treatment is a
// configuration decision, not a bus-level default.
type Bus struct {
	log       *zap.Logger
	topics    map[string][]*subscriber
	fast      map[string]struct{}
	validator *Validator

	dispatching bool
	queue       []Message
}

type subscriber struct {
	fn Handler
}

// NewBus creates a bus. A nil logger falls back to zap.NewNop.
func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		log:    log,
		topics: make(map[string][]*subscriber),
		fast:   make(map[string]struct{}),
	}
}

// SetFastTopics designates the high-frequency topics that bypass the
// snapshot/queue path. Replaces any previous designation.
func (b *Bus) SetFastTopics(topics []string) {
	b.fast = make(map[string]struct{}, len(topics))
	for _, t := range topics {
		b.fast[t] = struct{}{}
	}
}

// SetValidator installs the advisory payload shape validator. Nil disables it.
func (b *Bus) SetValidator(v *Validator) {
	b.validator = v
}

// Subscribe appends a handler to the topic's list and returns an unsubscribe
// closure. Duplicate subscriptions of the same handler are allowed and all
// fire; each holds its own unsubscribe closure.
func (b *Bus) Subscribe(topic string, fn Handler) func() {
	sub := &subscriber{fn: fn}
	b.topics[topic] = append(b.topics[topic], sub)
	return func() {
		b.unsubscribe(topic, sub)
	}
}

// unsubscribe removes the first matching subscription. Removing the last
// subscriber for a topic deletes the topic entry. Takes effect for all
// future dispatches; an in-flight snapshot is unaffected.
func (b *Bus) unsubscribe(topic string, sub *subscriber) {
	subs := b.topics[topic]
	for i, s := range subs {
		if s == sub {
			b.topics[topic] = append(subs[:i], subs[i+1:]...)
			if len(b.topics[topic]) == 0 {
				delete(b.topics, topic)
			}
			return
		}
	}
}

// Publish delivers data to the topic's subscribers. Reentrant calls (from
// inside a handler) are queued and drained after the current pass.
func (b *Bus) Publish(topic string, data any) {
	if _, ok := b.fast[topic]; ok {
		b.FastPublish(topic, data)
		return
	}

	msg := Message{Topic: topic, Data: data, Timestamp: time.Now()}
	if b.validator != nil {
		b.validator.Check(msg)
	}
	if b.dispatching {
		b.queue = append(b.queue, msg)
		return
	}
	b.dispatch(msg)
	b.drain()
}

// FastPublish invokes the live subscriber list directly, with no snapshot
// and no reentrancy queue. Per-listener panic recovery still applies.
func (b *Bus) FastPublish(topic string, data any) {
	msg := Message{Topic: topic, Data: data, Timestamp: time.Now()}
	for _, sub := range b.topics[topic] {
		b.invoke(sub, msg)
	}
}

// dispatch runs one snapshot-based delivery pass.
func (b *Bus) dispatch(msg Message) {
	subs := b.topics[msg.Topic]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]*subscriber, len(subs))
	copy(snapshot, subs)

	b.dispatching = true
	defer func() { b.dispatching = false }()

	for _, sub := range snapshot {
		b.invoke(sub, msg)
	}
}

// drain flushes messages queued during dispatch, one batch at a time.
// Messages queued while a batch runs form the next batch.
func (b *Bus) drain() {
	for len(b.queue) > 0 {
		batch := b.queue
		b.queue = nil
		for _, msg := range batch {
			b.dispatch(msg)
		}
	}
}

func (b *Bus) invoke(sub *subscriber, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Warn("event handler panic suppressed",
				zap.String("topic", msg.Topic),
				zap.Any("panic", r))
		}
	}()
	sub.fn(msg)
}

// SubscriberCount returns the number of live subscriptions for a topic.
func (b *Bus) SubscriberCount(topic string) int {
	return len(b.topics[topic])
}

// TopicCount returns the number of topics with at least one subscriber.
func (b *Bus) TopicCount() int {
	return len(b.topics)
}
