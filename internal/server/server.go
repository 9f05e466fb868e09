// Package server exposes the HTTP/JSON API and the SSE stream endpoints.
package server

import (
	"context"
	"log/slog"

	"github.com/agritrace/supplytrace/internal/events"
	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/store"
	"github.com/agritrace/supplytrace/internal/stream"
)

// TrackerServer holds the handlers' shared dependencies.
type TrackerServer struct {
	store     store.Store
	publisher events.Publisher
	bus       *stream.Bus
	detectURL string
	logger    *slog.Logger
}

// Option customizes a TrackerServer.
type Option func(*TrackerServer)

// WithDetectURL enables the object-detection proxy endpoints, forwarding
// to the service at the given base URL.
func WithDetectURL(url string) Option {
	return func(s *TrackerServer) { s.detectURL = url }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *TrackerServer) { s.logger = l }
}

// NewTrackerServer returns a server backed by the given store, publisher,
// and stream bus.
func NewTrackerServer(st store.Store, p events.Publisher, bus *stream.Bus, opts ...Option) *TrackerServer {
	s := &TrackerServer{
		store:     st,
		publisher: p,
		bus:       bus,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bus returns the stream bus, for callers that wire the heartbeat scheduler.
func (s *TrackerServer) Bus() *stream.Bus {
	return s.bus
}

// emit publishes an event to NATS and broadcasts it on the stream bus.
// Both deliveries are best-effort; failures are logged and never surface
// to the mutation that triggered them.
func (s *TrackerServer) emit(ctx context.Context, topic, productID string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "product_id", productID, "error", err)
	}
	s.bus.Publish(topic, productID, event)
}

// emitProduct publishes the typed envelope to NATS and broadcasts the bare
// product snapshot on the stream bus. Stream clients receive the entity
// itself, not a wrapper.
func (s *TrackerServer) emitProduct(ctx context.Context, topic string, envelope any, product *model.Product) {
	if err := s.publisher.Publish(ctx, topic, envelope); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "product_id", product.ID, "error", err)
	}
	s.bus.Publish(topic, product.ID, product)
}

// inputError indicates invalid user input. The HTTP layer maps it to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
