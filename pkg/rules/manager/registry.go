package manager

import (
	"sync"
	"time"

	"esfpc/fpcheck/pkg/rules/engine"
)

// DefaultHistorySize is the number of revisions a Registry keeps.
const DefaultHistorySize = 20

// Revision records one activated rule set.
type Revision struct {
	Version   string    `json:"version"`
	Rules     int       `json:"rules"`
	Sources   int       `json:"sources"`
	Origin    string    `json:"origin,omitempty"`
	Activated time.Time `json:"activated"`
}

// Registry remembers the rule sets a manager activated, newest last.
type Registry struct {
	mu      sync.RWMutex
	size    int
	history []Revision
}

// NewRegistry creates a registry keeping at most size revisions.
func NewRegistry(size int) *Registry {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &Registry{size: size}
}

// Record appends a revision for rs. origin describes where it came from,
// e.g. a commit hash.
func (r *Registry) Record(rs *engine.RuleSet, origin string) Revision {
	rev := Revision{
		Version:   rs.Version(),
		Rules:     rs.Len(),
		Sources:   len(rs.Sources()),
		Origin:    origin,
		Activated: time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, rev)
	if len(r.history) > r.size {
		r.history = append([]Revision(nil), r.history[len(r.history)-r.size:]...)
	}
	return rev
}

// Current returns the newest revision.
func (r *Registry) Current() (Revision, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.history) == 0 {
		return Revision{}, false
	}
	return r.history[len(r.history)-1], true
}

// History returns the revisions, oldest first.
func (r *Registry) History() []Revision {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Revision(nil), r.history...)
}
