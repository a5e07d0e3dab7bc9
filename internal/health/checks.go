package health

import (
	"fmt"
	"sync"
	"time"

	"github.com/vyrodovalexey/avaroute/internal/routing"
)

// TableSource provides the routing table currently in effect.
// *routing.Store satisfies it.
type TableSource interface {
	Load() *routing.Table
}

// TableCheck reports unhealthy until source holds a table.
func TableCheck(source TableSource) CheckFunc {
	return func() Check {
		table := source.Load()
		if table == nil {
			return Check{Status: StatusUnhealthy, Message: "no routing table installed"}
		}
		return Check{
			Status:  StatusHealthy,
			Message: fmt.Sprintf("%d rules", table.Len()),
		}
	}
}

// ReloadTracker remembers the outcome of the most recent reload.
type ReloadTracker struct {
	mu      sync.RWMutex
	lastErr error
	lastAt  time.Time
}

// NewReloadTracker creates a tracker with no recorded reload.
func NewReloadTracker() *ReloadTracker {
	return &ReloadTracker{}
}

// RecordSuccess records a successful reload.
func (r *ReloadTracker) RecordSuccess() {
	r.record(nil)
}

// RecordFailure records a failed reload.
func (r *ReloadTracker) RecordFailure(err error) {
	r.record(err)
}

func (r *ReloadTracker) record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = err
	r.lastAt = time.Now()
}

// Check reports degraded while the most recent reload has failed.
func (r *ReloadTracker) Check() Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.lastAt.IsZero() {
		return Check{Status: StatusHealthy, Message: "no reload yet"}
	}
	if r.lastErr != nil {
		return Check{
			Status:  StatusDegraded,
			Message: fmt.Sprintf("last reload failed at %s: %v", r.lastAt.UTC().Format(time.RFC3339), r.lastErr),
		}
	}
	return Check{
		Status:  StatusHealthy,
		Message: "last reload succeeded at " + r.lastAt.UTC().Format(time.RFC3339),
	}
}
