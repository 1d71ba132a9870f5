package circuitbreaker

import (
	"sync"
	"time"
)

type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Blocking requests
	StateHalfOpen              // Probing for recovery
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// MarshalText serializes states as their lowercase names in health snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Breaker tracks consecutive failures for a single endpoint.
//
// Failures accumulate only while the breaker is closed; reaching the
// threshold trips it open and records the failure time. A half-open breaker
// gets exactly one chance: any failure trips it straight back open. Closing
// always resets the failure count.
type Breaker struct {
	mutex            sync.Mutex
	state            State
	failures         int
	lastFailure      time.Time
	failureThreshold int
	recoveryTimeout  time.Duration
}

func NewBreaker(threshold int, recoveryTimeout time.Duration) *Breaker {
	return &Breaker{
		state:            StateClosed,
		failureThreshold: threshold,
		recoveryTimeout:  recoveryTimeout,
	}
}

func (b *Breaker) State() State {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.state
}

func (b *Breaker) Failures() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.failures
}

// RecordSuccess closes the breaker and resets the failure count.
// It reports whether a state transition actually happened.
func (b *Breaker) RecordSuccess() (closed bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.state == StateClosed {
		b.failures = 0
		return false
	}

	b.state = StateClosed
	b.failures = 0
	return true
}

// RecordFailure applies the failure handling rules and reports whether the
// breaker tripped open as a result.
func (b *Breaker) RecordFailure() (tripped bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.failureThreshold {
			b.trip()
			return true
		}
	case StateHalfOpen:
		// One failed probe is enough to trip again.
		b.trip()
		return true
	}

	return false
}

// Trip forces the breaker open and refreshes the failure time. Used by the
// health reconciler when an active probe fails.
func (b *Breaker) Trip() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.trip()
}

// PromoteIfExpired moves an open breaker to half-open once the recovery
// timeout has elapsed since the last failure. Idempotent: calling it on a
// breaker that is not open, or whose timeout has not elapsed, does nothing.
func (b *Breaker) PromoteIfExpired(now time.Time) (promoted bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.state != StateOpen {
		return false
	}
	if now.Sub(b.lastFailure) <= b.recoveryTimeout {
		return false
	}

	b.state = StateHalfOpen
	return true
}

// trip must be called with the mutex held.
func (b *Breaker) trip() {
	b.state = StateOpen
	b.lastFailure = time.Now()
}
