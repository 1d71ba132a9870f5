// Package handler exposes the router over HTTP: POST /inference for
// dispatching requests, GET /health for the circuit breaker snapshot, and
// GET /metrics for per-endpoint statistics.
package handler
