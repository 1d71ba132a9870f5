// Package transport performs the wire-level I/O against provider endpoints.
//
// The router core depends only on the Adapter interface: one Send per
// dispatch attempt and one Probe per health check. The production Client
// serves HTTP endpoints through a shared resty client and WebSocket
// endpoints through a gorilla dialer. Transport failures (timeouts,
// non-success statuses, handshake errors, abnormal closes) surface as plain
// errors; the core never inspects them beyond success or failure.
package transport
