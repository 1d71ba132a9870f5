// Package selector implements weighted random endpoint selection that
// respects circuit breaker state. Endpoints with open circuits and endpoints
// already tried during the current call are never returned.
package selector
