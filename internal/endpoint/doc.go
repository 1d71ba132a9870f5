// Package endpoint defines the immutable backend provider records and the
// registry the router selects from. Endpoints carry a name, URL, wire
// protocol (HTTP or WebSocket), load balancing weight, and per-request
// timeout, all fixed at construction.
package endpoint
