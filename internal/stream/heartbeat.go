package stream

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultHeartbeatInterval is how often liveness frames are sent to push
// subscribers when no interval is configured.
const DefaultHeartbeatInterval = 30 * time.Second

// Heartbeat periodically queues a content-free liveness frame to every
// push subscriber. It shares the registry read path with the bus and runs
// independently of mutation traffic; a tick against an empty registry has
// no observable effect. Write failures take the normal removal path in
// the subscriber's writer goroutine.
type Heartbeat struct {
	registry *Registry
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHeartbeat creates a scheduler probing the given registry. A
// non-positive interval falls back to DefaultHeartbeatInterval.
func NewHeartbeat(reg *Registry, interval time.Duration, logger *slog.Logger) *Heartbeat {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Heartbeat{
		registry: reg,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the probe loop.
func (h *Heartbeat) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.run(ctx)
	}()
	h.logger.Info("heartbeat scheduler started", "interval", h.interval)
}

// Stop cancels the scheduler and waits for the loop to exit.
func (h *Heartbeat) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
	h.wg.Wait()
}

func (h *Heartbeat) run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Tick()
		}
	}
}

// Tick queues one heartbeat frame to every connected push subscriber.
// Reactive subscribers are not wire connections and are never probed.
func (h *Heartbeat) Tick() {
	for _, sub := range h.registry.Snapshot() {
		if sub.Kind != KindPush || sub.Closed() {
			continue
		}
		sub.enqueueFrame(frame{heartbeat: true})
	}
}
