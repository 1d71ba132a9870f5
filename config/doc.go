// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the router configuration structure
// including provider endpoints, retry policy, circuit breaker thresholds,
// server settings, and logging level. Validation failures are construction
// errors: a Config that loads successfully is fully populated and immutable.
package config
