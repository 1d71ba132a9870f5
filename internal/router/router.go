package router

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/angeloszaimis/model-router/config"
	"github.com/angeloszaimis/model-router/internal/cache"
	"github.com/angeloszaimis/model-router/internal/circuitbreaker"
	"github.com/angeloszaimis/model-router/internal/endpoint"
	"github.com/angeloszaimis/model-router/internal/metrics"
	"github.com/angeloszaimis/model-router/internal/selector"
	"github.com/angeloszaimis/model-router/internal/transport"
)

// MetadataEndpointPref names the metadata key callers use to request a
// specific endpoint for the first dispatch attempt.
const MetadataEndpointPref = "endpoint_pref"

// Terminal results for expected failure modes. The messages are part of the
// API contract and are returned verbatim to callers.
var (
	ErrUnavailable      = errors.New("All endpoints are unavailable.")
	ErrRetriesExhausted = errors.New("Request failed after multiple retries.")
)

// Router is the single logical entry point in front of the configured
// provider endpoints. It owns all mutable routing state: circuit breakers,
// metrics, and the response cache. One instance is shared by all callers.
type Router struct {
	registry *endpoint.Registry
	breakers *circuitbreaker.Registry
	selector *selector.Selector
	cache    *cache.Cache
	stats    *metrics.Aggregator
	adapter  transport.Adapter
	logger   *slog.Logger

	maxAttempts   int
	backoffFactor float64

	closeOnce sync.Once
}

// New builds a router from validated configuration. The adapter's connection
// pool is owned by the router from here on and released by Close.
func New(cfg *config.Config, adapter transport.Adapter, logger *slog.Logger) (*Router, error) {
	endpoints := make([]*endpoint.Endpoint, 0, len(cfg.Endpoints))
	for _, ec := range cfg.Endpoints {
		protocol, err := endpoint.ParseProtocol(ec.Type)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, endpoint.New(ec.Name, ec.URL, protocol, ec.Weight, ec.TimeoutDuration()))
	}

	registry, err := endpoint.NewRegistry(endpoints)
	if err != nil {
		return nil, err
	}

	breakers := circuitbreaker.NewRegistry(
		registry.Names(),
		cfg.CircuitBreaker.FailureThreshold,
		cfg.CircuitBreaker.RecoveryTimeoutDuration(),
	)

	return &Router{
		registry:      registry,
		breakers:      breakers,
		selector:      selector.New(registry, breakers),
		cache:         cache.New(),
		stats:         metrics.NewAggregator(registry.Names()),
		adapter:       adapter,
		logger:        logger,
		maxAttempts:   cfg.Retry.MaxAttempts,
		backoffFactor: cfg.Retry.BackoffFactor,
	}, nil
}

// HealthCheck reconciles circuit breaker state: open circuits whose recovery
// timeout has elapsed become half-open, and every half-open circuit gets one
// active probe that either closes or reopens it. Safe to call repeatedly and
// concurrently with dispatches; it is expected to run on a periodic schedule.
func (r *Router) HealthCheck(ctx context.Context) map[string]circuitbreaker.Status {
	now := time.Now()

	for _, ep := range r.registry.All() {
		breaker := r.breakers.Get(ep.Name())

		if breaker.PromoteIfExpired(now) {
			r.logger.Info("recovery timeout elapsed, circuit half-open",
				slog.String("endpoint", ep.Name()))
		}

		if breaker.State() != circuitbreaker.StateHalfOpen {
			continue
		}

		if err := r.adapter.Probe(ctx, ep); err != nil {
			breaker.Trip()
			r.logger.Warn("health probe failed, circuit reopened",
				slog.String("endpoint", ep.Name()),
				slog.Any("err", err))
			continue
		}

		if breaker.RecordSuccess() {
			r.logger.Info("health probe succeeded, circuit closed",
				slog.String("endpoint", ep.Name()))
		}
	}

	return r.breakers.Snapshot()
}

// Metrics returns a consistent snapshot of per-endpoint call statistics.
func (r *Router) Metrics() map[string]metrics.EndpointStats {
	return r.stats.Snapshot()
}

// Close releases the transport's connection pool. Safe to call exactly once;
// prior operations do not depend on it.
func (r *Router) Close() error {
	var err error
	r.closeOnce.Do(func() {
		err = r.adapter.Close()
	})
	return err
}
