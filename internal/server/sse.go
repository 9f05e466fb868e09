package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/agritrace/supplytrace/internal/events"
)

// sseKeepaliveInterval is how often the status bridge sends comment
// frames to keep idle connections open. The push stream is probed by the
// heartbeat scheduler instead.
const sseKeepaliveInterval = 30 * time.Second

// sseSink adapts an http.ResponseWriter into a stream.PushSink. It is
// driven by the subscriber's writer goroutine only; the handler goroutine
// never writes after the subscription starts.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// WriteEvent writes the payload as an unlabelled data frame.
func (s *sseSink) WriteEvent(data []byte) error {
	if _, err := fmt.Fprintf(s.w, "data:%s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteHeartbeat writes a comment frame. Clients ignore it; a failed
// write is how a dead connection is detected.
func (s *sseSink) WriteHeartbeat() error {
	if _, err := fmt.Fprint(s.w, ":heartbeat\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// parseTopics splits a comma-separated topics query param.
func parseTopics(r *http.Request) []string {
	var topics []string
	if q := r.URL.Query().Get("topics"); q != "" {
		for _, t := range strings.Split(q, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				topics = append(topics, t)
			}
		}
	}
	return topics
}

// handleProductStream handles GET /v1/products/stream (SSE push channel).
// Every connection first receives the connected acknowledgment, then
// product events as unlabelled data frames, with heartbeat comments from
// the scheduler in between. By default the stream carries product topics
// only; a topics query param widens or narrows the filter.
func (s *TrackerServer) handleProductStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	topics := parseTopics(r)
	if len(topics) == 0 {
		topics = []string{"supplytrace.product.*"}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering.
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := s.bus.SubscribePush(topics, &sseSink{w: w, flusher: flusher})
	defer s.bus.ClosePush(sub)

	select {
	case <-r.Context().Done():
		// Client went away; ClosePush stops the writer goroutine.
	case <-sub.Done():
		// A failed write already removed the subscriber.
	}
}

// handleStatusStream handles GET /v1/products/status/stream. It bridges a
// filtered reactive status-change subscription onto SSE: only
// StatusChange events, optionally narrowed to one product by the
// product_id query param.
func (s *TrackerServer) handleStatusStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	productID := r.URL.Query().Get("product_id")

	sub := s.bus.SubscribeReactive([]string{events.TopicProductStatusChanged}, productID)
	defer s.bus.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	keepalive := time.NewTicker(sseKeepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub.Events():
			if _, err := fmt.Fprintf(w, "data:%s\n\n", evt.Data); err != nil {
				return
			}
			flusher.Flush()
		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ":heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
