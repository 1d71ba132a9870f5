// Package cache provides the in-memory response cache keyed by a SHA-256
// fingerprint of the request content. Entries are written only after a
// successful dispatch and are never evicted, so identical requests are
// answered without contacting any provider for the life of the process.
package cache
