// Package cancel holds the process-wide registry of cooperative cancellation
// handles, one per running job.
package cancel

import (
	"context"
	"fmt"
	"sync"
)

// Registry maps job identifiers to cancellation handles. Lookups and
// removals for unrelated jobs never block each other beyond the brief
// map-level critical section.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]context.CancelFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]context.CancelFunc)}
}

// Create registers a cancellation handle for the job and returns the derived
// context the processor will consult between rows. Registering the same job
// twice is a programming error and is rejected.
func (r *Registry) Create(parent context.Context, jobID string) (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[jobID]; exists {
		return nil, fmt.Errorf("cancel: job %s already registered", jobID)
	}
	ctx, cancelFn := context.WithCancel(parent)
	r.entries[jobID] = cancelFn
	return ctx, nil
}

// Cancel signals the job's context. It returns false when the job is unknown
// or already finished, letting callers distinguish "already done" from
// "actually stopped"; cancelling an unknown job is not an error.
func (r *Registry) Cancel(jobID string) bool {
	r.mu.RLock()
	cancelFn, ok := r.entries[jobID]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	cancelFn()
	return true
}

// Remove drops the job's entry. Safe to call for unknown jobs. The handle is
// cancelled on removal so the derived context never leaks.
func (r *Registry) Remove(jobID string) {
	r.mu.Lock()
	cancelFn, ok := r.entries[jobID]
	delete(r.entries, jobID)
	r.mu.Unlock()
	if ok {
		cancelFn()
	}
}

// Len reports the number of registered jobs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
