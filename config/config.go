package config

import (
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	EndpointTypeHTTP      = "http"
	EndpointTypeWebSocket = "websocket"
)

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Environment string `mapstructure:"environment"`
}

type EndpointConfig struct {
	Name    string `mapstructure:"name"`
	URL     string `mapstructure:"url"`
	Type    string `mapstructure:"type"`
	Weight  int    `mapstructure:"weight"`
	Timeout string `mapstructure:"timeout"`
}

type RetryConfig struct {
	MaxAttempts   int     `mapstructure:"max_attempts"`
	BackoffFactor float64 `mapstructure:"backoff_factor"`
}

type CircuitBreakerConfig struct {
	FailureThreshold int    `mapstructure:"failure_threshold"`
	RecoveryTimeout  string `mapstructure:"recovery_timeout"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Endpoints      []EndpointConfig     `mapstructure:"endpoints"`
	Retry          RetryConfig          `mapstructure:"retry_config"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Logging        LoggingConfig        `mapstructure:"logging"`
}

func Load() (*Config, error) {
	viper.SetDefault("server.environment", EnvDev)
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("retry_config.max_attempts", 3)
	viper.SetDefault("retry_config.backoff_factor", 2.0)
	viper.SetDefault("circuit_breaker.failure_threshold", 5)
	viper.SetDefault("circuit_breaker.recovery_timeout", "30s")
	viper.SetDefault("logging.level", LogLevelInfo)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Error("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	applyEndpointDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func applyEndpointDefaults(cfg *Config) {
	for i := range cfg.Endpoints {
		if cfg.Endpoints[i].Timeout == "" {
			cfg.Endpoints[i].Timeout = "10s"
		}
	}
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Endpoints,
			validation.Required,
			validation.Length(1, 0),
			validation.By(validateUniqueNames),
			validation.Each(validation.By(validateEndpointConfig)),
		),
		validation.Field(&c.Retry,
			validation.Required,
			validation.By(func(value interface{}) error {
				rc, ok := value.(RetryConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a RetryConfig")
				}
				return validation.ValidateStruct(&rc,
					validation.Field(&rc.MaxAttempts,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&rc.BackoffFactor,
						validation.Required,
						validation.Min(0.0).Exclusive(),
					),
				)
			}),
		),
		validation.Field(&c.CircuitBreaker,
			validation.Required,
			validation.By(func(value interface{}) error {
				cb, ok := value.(CircuitBreakerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a CircuitBreakerConfig")
				}
				return validation.ValidateStruct(&cb,
					validation.Field(&cb.FailureThreshold,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&cb.RecoveryTimeout,
						validation.Required,
						validation.By(validatePositiveDuration),
					),
				)
			}),
		),
	)
}

// RecoveryTimeoutDuration returns the parsed recovery timeout.
// Call only after Validate has accepted the configuration.
func (c *CircuitBreakerConfig) RecoveryTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RecoveryTimeout)
	return d
}

// TimeoutDuration returns the parsed per-request timeout.
// Call only after Validate has accepted the configuration.
func (e *EndpointConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(e.Timeout)
	return d
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validatePositiveDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	if d <= 0 {
		return validation.NewError("validation_invalid_duration", "must be a positive duration")
	}

	return nil
}

func validateUniqueNames(value interface{}) error {
	endpoints, ok := value.([]EndpointConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a list of EndpointConfig")
	}

	seen := make(map[string]struct{}, len(endpoints))
	for _, ep := range endpoints {
		if _, dup := seen[ep.Name]; dup {
			return validation.NewError("validation_duplicate_name", "endpoint names must be unique")
		}
		seen[ep.Name] = struct{}{}
	}

	return nil
}

func validateEndpointConfig(value interface{}) error {
	ep, ok := value.(EndpointConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be an EndpointConfig")
	}

	if ep.Name == "" {
		return validation.NewError("validation_empty_name", "endpoint name cannot be empty")
	}

	if ep.Type != EndpointTypeHTTP && ep.Type != EndpointTypeWebSocket {
		return validation.NewError("validation_invalid_endpoint_type", "type must be http or websocket")
	}

	if ep.Weight < 0 {
		return validation.NewError("validation_invalid_weight", "weight cannot be negative")
	}

	if err := validatePositiveDuration(ep.Timeout); err != nil {
		return err
	}

	if ep.URL == "" {
		return validation.NewError("validation_empty_url", "endpoint URL cannot be empty")
	}

	parsedURL, err := url.Parse(ep.URL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	switch ep.Type {
	case EndpointTypeHTTP:
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return validation.NewError("validation_invalid_scheme", "http endpoints must use http or https scheme")
		}
	case EndpointTypeWebSocket:
		if parsedURL.Scheme != "ws" && parsedURL.Scheme != "wss" {
			return validation.NewError("validation_invalid_scheme", "websocket endpoints must use ws or wss scheme")
		}
	}

	return nil
}
