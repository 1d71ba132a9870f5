// Package circuitbreaker implements per-endpoint failure isolation.
//
// Each endpoint gets a breaker with three states:
//
//   - CLOSED: normal operation, requests pass through
//   - OPEN: endpoint failing, requests blocked
//   - HALF-OPEN: recovery timeout elapsed, next probe decides
//
// The dispatcher records call outcomes; the health reconciler promotes
// expired open breakers to half-open and resolves them with active probes.
//
// Usage:
//
//	registry := circuitbreaker.NewRegistry(names, 5, 30*time.Second)
//	b := registry.Get("stt-primary")
//	if err != nil {
//	    b.RecordFailure()
//	} else {
//	    b.RecordSuccess()
//	}
package circuitbreaker
