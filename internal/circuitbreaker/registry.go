package circuitbreaker

import "time"

// Status is the observable state of one endpoint's breaker.
type Status struct {
	State    State `json:"state"`
	Failures int   `json:"failures"`
}

// Registry holds one breaker per configured endpoint. The set of breakers
// is fixed at construction, so lookups need no locking; the breakers
// themselves synchronize their own state.
type Registry struct {
	breakers map[string]*Breaker
	names    []string
}

// NewRegistry creates a closed breaker for every endpoint name.
func NewRegistry(names []string, threshold int, recoveryTimeout time.Duration) *Registry {
	breakers := make(map[string]*Breaker, len(names))
	for _, name := range names {
		breakers[name] = NewBreaker(threshold, recoveryTimeout)
	}

	return &Registry{
		breakers: breakers,
		names:    names,
	}
}

// Get returns the breaker for an endpoint, or nil for unknown names.
func (r *Registry) Get(name string) *Breaker {
	return r.breakers[name]
}

// Snapshot returns the current state and failure count of every breaker.
func (r *Registry) Snapshot() map[string]Status {
	snapshot := make(map[string]Status, len(r.breakers))
	for name, b := range r.breakers {
		b.mutex.Lock()
		snapshot[name] = Status{State: b.state, Failures: b.failures}
		b.mutex.Unlock()
	}
	return snapshot
}
