package endpoint

import "fmt"

// Registry is the immutable set of configured endpoints. It is built once
// at router construction and never mutated afterwards, so it is safe for
// concurrent reads without locking.
type Registry struct {
	endpoints []*Endpoint
	byName    map[string]*Endpoint
}

// NewRegistry builds a registry from the configured endpoints.
// Duplicate names are a construction error.
func NewRegistry(endpoints []*Endpoint) (*Registry, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("at least one endpoint is required")
	}

	byName := make(map[string]*Endpoint, len(endpoints))
	for _, ep := range endpoints {
		if _, exists := byName[ep.Name()]; exists {
			return nil, fmt.Errorf("duplicate endpoint name: %q", ep.Name())
		}
		byName[ep.Name()] = ep
	}

	return &Registry{
		endpoints: endpoints,
		byName:    byName,
	}, nil
}

// All returns the endpoints in configuration order.
func (r *Registry) All() []*Endpoint {
	return r.endpoints
}

// Lookup returns the endpoint with the given name, if configured.
func (r *Registry) Lookup(name string) (*Endpoint, bool) {
	ep, ok := r.byName[name]
	return ep, ok
}

// Names returns all endpoint names in configuration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		names = append(names, ep.Name())
	}
	return names
}
