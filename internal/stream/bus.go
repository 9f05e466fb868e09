package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// DefaultQueueSize is the per-subscriber buffer capacity when the config
// leaves it unset. Overflow drops the oldest queued item.
const DefaultQueueSize = 64

// connectedAck is the synthetic acknowledgment every new push
// subscription receives before any broadcast event.
var connectedAck = []byte(`{"type":"connected","message":"Connected to product updates stream"}`)

// Config tunes the bus. The zero value is usable.
type Config struct {
	// QueueSize bounds each subscriber's delivery queue. Defaults to
	// DefaultQueueSize.
	QueueSize int

	Logger *slog.Logger
}

// Bus fans published events out to every registry member. Publish never
// blocks on a subscriber and never reports delivery failures to the
// publisher; a failed push write converts into subscriber removal.
type Bus struct {
	registry  *Registry
	queueSize int
	logger    *slog.Logger
	nextID    atomic.Uint64
}

// NewBus returns a bus delivering through the given registry.
func NewBus(reg *Registry, cfg Config) *Bus {
	size := cfg.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		registry:  reg,
		queueSize: size,
		logger:    logger,
	}
}

// Registry returns the subscriber registry the bus delivers through.
func (b *Bus) Registry() *Registry {
	return b.registry
}

// Publish serializes the payload once and hands it to every subscriber
// whose topic patterns and product filter match. Each subscriber sees
// events in the order Publish was called; there is no ordering across
// subscribers. Serialization failures are logged and the event dropped.
func (b *Bus) Publish(topic, productID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Warn("failed to marshal event", "topic", topic, "error", err)
		return
	}

	for _, sub := range b.registry.Snapshot() {
		if sub.Closed() || !sub.matches(topic, productID) {
			continue
		}
		switch sub.Kind {
		case KindPush:
			sub.enqueueFrame(frame{data: data})
		case KindReactive:
			sub.enqueueEvent(Event{Topic: topic, ProductID: productID, Data: data})
		}
	}
}

// SubscribePush registers a push subscriber writing to the given sink and
// starts its writer goroutine. The connection acknowledgment is queued
// ahead of any broadcast. Call ClosePush when the connection ends.
func (b *Bus) SubscribePush(topics []string, sink PushSink) *Subscriber {
	s := &Subscriber{
		ID:     b.subscriberID(),
		Kind:   KindPush,
		topics: topics,
		frames: make(chan frame, b.queueSize),
		sink:   sink,
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	// The queue is freshly allocated, so the ack always fits and is
	// guaranteed to be first.
	s.frames <- frame{data: connectedAck}

	b.registry.Add(s)
	go s.runPush(b.registry, b.logger)
	return s
}

// ClosePush removes a push subscriber and stops its writer goroutine.
// Safe to call more than once and after a write failure already removed
// the subscriber.
func (b *Bus) ClosePush(s *Subscriber) {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.quit)
		b.registry.Remove(s.ID)
	})
}

// SubscribeReactive registers a buffered reactive feed. Events arrive on
// s.Events(), filtered to topics matching the given patterns and, when
// productID is non-empty, to events for that product only.
func (b *Bus) SubscribeReactive(topics []string, productID string) *Subscriber {
	s := &Subscriber{
		ID:        b.subscriberID(),
		Kind:      KindReactive,
		topics:    topics,
		productID: productID,
		events:    make(chan Event, b.queueSize),
	}
	b.registry.Add(s)
	return s
}

// Unsubscribe removes a reactive subscriber from future publishes. The
// events channel stays open; buffered events may still be drained.
func (b *Bus) Unsubscribe(s *Subscriber) {
	s.closed.Store(true)
	b.registry.Remove(s.ID)
}

func (b *Bus) subscriberID() string {
	return fmt.Sprintf("sub-%d", b.nextID.Add(1))
}
