// Package httpserver wraps the standard http.Server with address validation,
// sane timeouts, and graceful shutdown.
package httpserver
