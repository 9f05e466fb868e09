package stream

import (
	"sort"
	"sync"
)

// Registry is the set of active subscribers. It is the only shared
// mutable structure in the delivery layer; Add, Remove and Snapshot are
// safe under arbitrary interleaving, and no lock is held while delivery
// I/O runs.
type Registry struct {
	mu   sync.RWMutex
	subs map[string]*Subscriber
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]*Subscriber)}
}

// Add registers a subscriber. An existing entry with the same ID is
// replaced.
func (r *Registry) Add(s *Subscriber) {
	r.mu.Lock()
	r.subs[s.ID] = s
	r.mu.Unlock()
}

// Remove deletes a subscriber by ID. Removing an unknown ID is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.subs, id)
	r.mu.Unlock()
}

// Snapshot returns the current members in a stable order. The returned
// slice is the caller's own copy; concurrent Add/Remove never tear it.
func (r *Registry) Snapshot() []*Subscriber {
	r.mu.RLock()
	out := make([]*Subscriber, 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
