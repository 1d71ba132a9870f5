// Package router contains the dispatch core: cache lookup, weighted endpoint
// selection, transport invocation with retry and exponential backoff, circuit
// breaker bookkeeping, and the health reconciliation sweep that drives
// circuit recovery. One Router instance serves all concurrent callers and
// exclusively owns the mutable routing state.
package router
