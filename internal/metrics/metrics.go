package metrics

import (
	"sync"
	"time"
)

// EndpointStats holds the per-endpoint counters and latency accumulators.
// Invariants for any snapshot: RequestCount == SuccessCount + ErrorCount,
// and AverageLatency == TotalLatency / RequestCount when RequestCount > 0.
type EndpointStats struct {
	RequestCount   int64         `json:"request_count"`
	SuccessCount   int64         `json:"success_count"`
	ErrorCount     int64         `json:"error_count"`
	TotalLatency   time.Duration `json:"total_latency"`
	AverageLatency time.Duration `json:"average_latency"`
}

// Aggregator collects call outcomes per endpoint. All updates go through
// one mutex so concurrent dispatches cannot tear the counters or the
// running average.
type Aggregator struct {
	mutex sync.Mutex
	stats map[string]*EndpointStats
}

// NewAggregator pre-seeds zeroed stats for every endpoint name so snapshots
// always cover the full registry.
func NewAggregator(names []string) *Aggregator {
	stats := make(map[string]*EndpointStats, len(names))
	for _, name := range names {
		stats[name] = &EndpointStats{}
	}
	return &Aggregator{stats: stats}
}

// Record adds one call outcome for an endpoint and recomputes the average.
func (a *Aggregator) Record(name string, latency time.Duration, success bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	s, ok := a.stats[name]
	if !ok {
		s = &EndpointStats{}
		a.stats[name] = s
	}

	s.RequestCount++
	s.TotalLatency += latency
	if success {
		s.SuccessCount++
	} else {
		s.ErrorCount++
	}
	s.AverageLatency = s.TotalLatency / time.Duration(s.RequestCount)

	observe(name, latency, success)
}

// Snapshot returns a point-in-time copy of all endpoint stats.
func (a *Aggregator) Snapshot() map[string]EndpointStats {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	snapshot := make(map[string]EndpointStats, len(a.stats))
	for name, s := range a.stats {
		snapshot[name] = *s
	}
	return snapshot
}
