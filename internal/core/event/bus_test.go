package event

import (
	"testing"
)

func TestDispatchOrder(t *testing.T) {
	bus := NewBus(nil)
	var order []string

	bus.Subscribe("hit", func(Message) { order = append(order, "A") })
	bus.Subscribe("hit", func(Message) { order = append(order, "B") })

	bus.Publish("hit", nil)

	if len(order) != 2 || order[0] != "A" || order[1] != "B" {
		t.Fatalf("expected [A B], got %v", order)
	}
}

func TestReentrantPublishRunsAfterCurrentPass(t *testing.T) {
	bus := NewBus(nil)
	var order []string

	bus.Subscribe("hit", func(Message) {
		order = append(order, "H1")
		bus.Publish("score", nil)
	})
	bus.Subscribe("hit", func(Message) { order = append(order, "H1b") })
	bus.Subscribe("score", func(Message) { order = append(order, "H2") })

	bus.Publish("hit", struct{}{})

	want := []string{"H1", "H1b", "H2"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestQueuedBatchesDrainBreadthFirst(t *testing.T) {
	bus := NewBus(nil)
	var order []string

	// a queues b and c; b queues d. d must run after c.
	bus.Subscribe("a", func(Message) {
		order = append(order, "a")
		bus.Publish("b", nil)
		bus.Publish("c", nil)
	})
	bus.Subscribe("b", func(Message) {
		order = append(order, "b")
		bus.Publish("d", nil)
	})
	bus.Subscribe("c", func(Message) { order = append(order, "c") })
	bus.Subscribe("d", func(Message) { order = append(order, "d") })

	bus.Publish("a", nil)

	want := []string{"a", "b", "c", "d"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestUnsubscribeDuringDispatchDoesNotAffectSnapshot(t *testing.T) {
	bus := NewBus(nil)
	var calls []string
	var unsubB func()

	bus.Subscribe("x", func(Message) {
		calls = append(calls, "A")
		unsubB()
	})
	unsubB = bus.Subscribe("x", func(Message) { calls = append(calls, "B") })

	bus.Publish("x", nil)
	if len(calls) != 2 {
		t.Fatalf("in-flight snapshot should still deliver to B, got %v", calls)
	}

	calls = nil
	bus.Publish("x", nil)
	if len(calls) != 1 || calls[0] != "A" {
		t.Fatalf("B should be gone for future dispatches, got %v", calls)
	}
}

func TestSubscribeDuringDispatchMissesCurrentMessage(t *testing.T) {
	bus := NewBus(nil)
	var lateCalls int

	bus.Subscribe("x", func(Message) {
		bus.Subscribe("x", func(Message) { lateCalls++ })
	})

	bus.Publish("x", nil)
	if lateCalls != 0 {
		t.Fatalf("late subscriber saw the in-flight message")
	}

	bus.Publish("x", nil)
	if lateCalls != 1 {
		t.Fatalf("late subscriber should see the next message, got %d calls", lateCalls)
	}
}

func TestHandlerPanicIsSuppressed(t *testing.T) {
	bus := NewBus(nil)
	var ran bool

	bus.Subscribe("x", func(Message) { panic("boom") })
	bus.Subscribe("x", func(Message) { ran = true })

	bus.Publish("x", nil)
	if !ran {
		t.Fatal("sibling listener did not run after panic")
	}
}

func TestDuplicateSubscriptionsBothFire(t *testing.T) {
	bus := NewBus(nil)
	count := 0
	fn := func(Message) { count++ }

	bus.Subscribe("x", fn)
	unsub := bus.Subscribe("x", fn)

	bus.Publish("x", nil)
	if count != 2 {
		t.Fatalf("expected both duplicate subscriptions to fire, got %d", count)
	}

	unsub()
	bus.Publish("x", nil)
	if count != 3 {
		t.Fatalf("expected one remaining subscription, got %d total calls", count)
	}
}

func TestLastUnsubscribeDeletesTopic(t *testing.T) {
	bus := NewBus(nil)
	unsub := bus.Subscribe("x", func(Message) {})
	if bus.TopicCount() != 1 {
		t.Fatalf("expected 1 topic, got %d", bus.TopicCount())
	}
	unsub()
	if bus.TopicCount() != 0 {
		t.Fatalf("topic entry should be deleted, got %d", bus.TopicCount())
	}
}

func TestMessageEnvelope(t *testing.T) {
	bus := NewBus(nil)
	var got Message

	bus.Subscribe("hit", func(m Message) { got = m })
	bus.Publish("hit", 42)

	if got.Topic != "hit" {
		t.Fatalf("expected topic hit, got %q", got.Topic)
	}
	if got.Data != 42 {
		t.Fatalf("expected data 42, got %v", got.Data)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("expected a creation timestamp")
	}
}

func TestFastTopicBypassesQueue(t *testing.T) {
	bus := NewBus(nil)
	bus.SetFastTopics([]string{"tick"})
	var order []string

	bus.Subscribe("tick", func(Message) { order = append(order, "fast") })
	bus.Subscribe("slow", func(Message) {
		order = append(order, "slow")
		// A fast publish from inside a dispatch is delivered immediately,
		// not queued behind the current pass.
		bus.Publish("tick", nil)
		order = append(order, "slow-end")
	})

	bus.Publish("slow", nil)

	want := []string{"slow", "fast", "slow-end"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}
