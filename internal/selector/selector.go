package selector

import (
	"math/rand/v2"

	"github.com/angeloszaimis/model-router/internal/circuitbreaker"
	"github.com/angeloszaimis/model-router/internal/endpoint"
)

// Selector chooses dispatch candidates by weighted random selection over
// endpoints whose circuit is not open.
type Selector struct {
	registry *endpoint.Registry
	breakers *circuitbreaker.Registry
}

func New(registry *endpoint.Registry, breakers *circuitbreaker.Registry) *Selector {
	return &Selector{
		registry: registry,
		breakers: breakers,
	}
}

// Select picks an endpoint for the next dispatch attempt, or nil when no
// endpoint is eligible.
//
// A caller-preferred endpoint wins outright when it exists, is not excluded,
// and its circuit is not open. Otherwise the candidates are all non-excluded
// endpoints with non-open circuits: selection is proportional to weight, or
// uniform when every candidate weight is zero.
func (s *Selector) Select(exclude map[string]struct{}, preferred string) *endpoint.Endpoint {
	if preferred != "" {
		if ep, ok := s.registry.Lookup(preferred); ok {
			if _, excluded := exclude[preferred]; !excluded && !s.isOpen(preferred) {
				return ep
			}
		}
	}

	var candidates []*endpoint.Endpoint
	totalWeight := 0
	for _, ep := range s.registry.All() {
		if _, excluded := exclude[ep.Name()]; excluded {
			continue
		}
		if s.isOpen(ep.Name()) {
			continue
		}
		candidates = append(candidates, ep)
		totalWeight += ep.Weight()
	}

	if len(candidates) == 0 {
		return nil
	}

	if totalWeight == 0 {
		return candidates[rand.IntN(len(candidates))]
	}

	draw := rand.Float64() * float64(totalWeight)
	accumulated := 0
	for _, ep := range candidates {
		accumulated += ep.Weight()
		if float64(accumulated) > draw {
			return ep
		}
	}

	// Floating point edge: the draw landed exactly on the total weight.
	return candidates[len(candidates)-1]
}

func (s *Selector) isOpen(name string) bool {
	b := s.breakers.Get(name)
	return b != nil && b.State() == circuitbreaker.StateOpen
}
