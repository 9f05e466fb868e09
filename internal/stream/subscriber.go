// Package stream implements the real-time multicast delivery layer:
// a concurrency-safe subscriber registry, an event bus that fans
// published events out to push and reactive subscribers, and a
// heartbeat scheduler probing push connections.
//
// Delivery is best-effort and non-persistent. A subscriber that
// connects after an event was published never receives it.
package stream

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

// Kind distinguishes the two delivery channel variants.
type Kind int

const (
	// KindPush is a long-lived outbound connection events are written to
	// as they occur (the SSE stream).
	KindPush Kind = iota
	// KindReactive is a decoupled feed consumer reading typed events from
	// a buffered channel, optionally filtered by product ID.
	KindReactive
)

// Event is one published payload as seen by reactive subscribers.
type Event struct {
	Topic     string
	ProductID string
	Data      []byte // JSON-encoded payload
}

// PushSink is the wire half of a push subscriber. The bus never calls it
// directly; each push subscriber owns a writer goroutine that drains its
// queue into the sink, so one stalled connection delays only its own
// stream. Implementations are called from a single goroutine.
type PushSink interface {
	// WriteEvent writes one event payload as an unlabelled data frame.
	WriteEvent(data []byte) error
	// WriteHeartbeat writes a content-free liveness frame.
	WriteHeartbeat() error
}

// frame is a single queued item for a push subscriber: either an event
// payload or a heartbeat marker.
type frame struct {
	heartbeat bool
	data      []byte
}

// Subscriber is a registered delivery endpoint. Push subscribers carry a
// frame queue and a sink; reactive subscribers carry an event channel.
type Subscriber struct {
	ID   string
	Kind Kind

	topics    []string // topic patterns to match (empty = all)
	productID string   // reactive equality filter (empty = all products)

	closed atomic.Bool

	// Push channel state.
	frames    chan frame
	sink      PushSink
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	// Reactive channel state.
	events chan Event
}

// Closed reports whether the subscriber has been removed from delivery,
// either explicitly or after a failed write.
func (s *Subscriber) Closed() bool {
	return s.closed.Load()
}

// Events returns the reactive feed channel. Nil for push subscribers.
// The channel is never closed; consumers should select against their own
// cancellation signal.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Done is closed when a push subscriber's writer goroutine exits.
// Nil channel for reactive subscribers.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// matches reports whether an event on the given topic and product should
// be delivered to this subscriber.
func (s *Subscriber) matches(topic, productID string) bool {
	if s.productID != "" && s.productID != productID {
		return false
	}
	if len(s.topics) == 0 {
		return true
	}
	for _, pattern := range s.topics {
		if matchTopicPattern(pattern, topic) {
			return true
		}
	}
	return false
}

// enqueueFrame queues a frame for a push subscriber without ever blocking
// the caller. When the queue is full the oldest frame is dropped to make
// room; a slow consumer loses its own history, never anyone else's.
func (s *Subscriber) enqueueFrame(f frame) {
	for {
		if s.closed.Load() {
			return
		}
		select {
		case s.frames <- f:
			return
		default:
		}
		// Queue full: drop the oldest frame and retry.
		select {
		case <-s.frames:
		default:
		}
	}
}

// enqueueEvent queues an event for a reactive subscriber with the same
// drop-oldest overflow policy.
func (s *Subscriber) enqueueEvent(evt Event) {
	for {
		if s.closed.Load() {
			return
		}
		select {
		case s.events <- evt:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}

// runPush drains the frame queue into the sink. The first write failure
// marks the subscriber closed and removes it from the registry; the error
// never propagates to publishers.
func (s *Subscriber) runPush(reg *Registry, logger *slog.Logger) {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			return
		case f := <-s.frames:
			var err error
			if f.heartbeat {
				err = s.sink.WriteHeartbeat()
			} else {
				err = s.sink.WriteEvent(f.data)
			}
			if err != nil {
				s.closed.Store(true)
				reg.Remove(s.ID)
				logger.Warn("dropping push subscriber after failed write",
					"subscriber", s.ID, "error", err)
				return
			}
		}
	}
}

// matchTopicPattern matches a dot-separated topic against a pattern.
// Supports "*" as a single-segment wildcard and ">" as a multi-segment
// suffix wildcard.
func matchTopicPattern(pattern, topic string) bool {
	if pattern == topic {
		return true
	}

	patParts := strings.Split(pattern, ".")
	topParts := strings.Split(topic, ".")

	for i, pp := range patParts {
		if pp == ">" {
			return i < len(topParts)
		}
		if i >= len(topParts) {
			return false
		}
		if pp != "*" && pp != topParts[i] {
			return false
		}
	}

	return len(patParts) == len(topParts)
}
