// Package metrics aggregates per-endpoint request counters and latency
// accumulators for the router.
//
// All updates are serialized behind a single mutex so parallel dispatch
// calls can never produce lost updates or a torn average. Snapshot returns
// an internally consistent copy: for every endpoint the request count equals
// successes plus errors, and the average equals total latency divided by the
// request count.
//
// The same observations are mirrored to Prometheus collectors
// (router_dispatches_total, router_dispatch_duration_seconds) for scraping.
package metrics
