package router

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/angeloszaimis/model-router/internal/cache"
	"github.com/angeloszaimis/model-router/internal/circuitbreaker"
)

// Inference routes one request to an appropriate endpoint, with retries and
// circuit breaking. Identical requests are answered from the cache without
// contacting any provider. Expected failure modes return ErrUnavailable or
// ErrRetriesExhausted; transport errors never surface raw.
func (r *Router) Inference(ctx context.Context, modelType string, data []byte, metadata map[string]string) (map[string]any, error) {
	key := cache.Fingerprint(modelType, data, metadata)
	if response, ok := r.cache.Get(key); ok {
		r.logger.Info("returning cached response", slog.String("model_type", modelType))
		return response, nil
	}

	attempts := 0
	tried := make(map[string]struct{})

	for attempts < r.maxAttempts {
		// The caller's preference only applies to the first attempt.
		preferred := ""
		if attempts == 0 {
			preferred = metadata[MetadataEndpointPref]
		}

		ep := r.selector.Select(tried, preferred)
		if ep == nil {
			r.logger.Error("all endpoints are currently unavailable",
				slog.String("model_type", modelType))
			return nil, ErrUnavailable
		}
		tried[ep.Name()] = struct{}{}

		breaker := r.breakers.Get(ep.Name())
		if breaker.State() == circuitbreaker.StateHalfOpen {
			r.logger.Info("endpoint is half-open, attempting a test request",
				slog.String("endpoint", ep.Name()))
		}

		start := time.Now()
		response, err := r.adapter.Send(ctx, ep, data, metadata)
		latency := time.Since(start)

		if err == nil {
			r.stats.Record(ep.Name(), latency, true)
			if breaker.RecordSuccess() {
				r.logger.Info("circuit breaker closed",
					slog.String("endpoint", ep.Name()))
			}
			r.cache.Put(key, response)
			return response, nil
		}

		r.stats.Record(ep.Name(), latency, false)
		r.logger.Warn("request to endpoint failed",
			slog.String("endpoint", ep.Name()),
			slog.Any("err", err))
		if breaker.RecordFailure() {
			r.logger.Warn("circuit breaker opened",
				slog.String("endpoint", ep.Name()))
		}

		attempts++
		if attempts < r.maxAttempts {
			if err := r.backoff(ctx, attempts); err != nil {
				return nil, err
			}
		}
	}

	r.logger.Error("request failed after all attempts",
		slog.Int("attempts", r.maxAttempts))
	return nil, ErrRetriesExhausted
}

// backoff sleeps for backoffFactor^attempts seconds, or returns early if the
// caller cancels. Cancellation here has no side effects: no endpoint has
// been contacted for the next attempt yet.
func (r *Router) backoff(ctx context.Context, attempts int) error {
	delay := time.Duration(math.Pow(r.backoffFactor, float64(attempts)) * float64(time.Second))
	r.logger.Info("retrying after backoff", slog.Duration("delay", delay))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
