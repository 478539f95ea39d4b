// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Dataset   DatasetConfig
	Animation AnimationConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Metrics   MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 90s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"90s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatasetConfig holds settings for the company registry source.
type DatasetConfig struct {
	// URL locates the dataset: http(s)://, s3://, postgres://, file:// or a path (required)
	// Supports both DATASET_URL and DATA_URL env vars
	URL string `env:"DATASET_URL" envAlt:"DATA_URL" required:"true"`

	// NameColumn is the header of the company name column (default: RAZON SOCIAL)
	NameColumn string `env:"DATASET_NAME_COLUMN" default:"RAZON SOCIAL"`

	// FetchTimeout bounds one load of the dataset (default: 30s)
	FetchTimeout time.Duration `env:"DATASET_FETCH_TIMEOUT" default:"30s"`

	// MaxBytes is the largest accepted payload in bytes, 0 for no limit (default: 64MB)
	MaxBytes int64 `env:"DATASET_MAX_BYTES" default:"67108864"`

	// Table is the table read by postgres:// sources (default: companies)
	Table string `env:"DATASET_TABLE" default:"companies"`

	// S3Region is the region used by s3:// sources (default: us-east-1)
	S3Region string `env:"S3_REGION" default:"us-east-1"`

	// S3Endpoint overrides the S3 endpoint, for MinIO and similar stores
	S3Endpoint string `env:"S3_ENDPOINT"`

	// S3AccessKeyID and S3SecretAccessKey are static credentials for s3:// sources
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
}

// AnimationConfig holds settings for the decorative Lottie animation.
type AnimationConfig struct {
	// URL of the Lottie JSON document; empty disables the animation
	URL string `env:"ANIMATION_URL"`

	// Timeout bounds one fetch of the animation (default: 5s)
	Timeout time.Duration `env:"ANIMATION_TIMEOUT" default:"5s"`
}

// RateLimitConfig holds per-client rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the sustained rate per IP (default: 60)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"60"`

	// Burst is the number of requests allowed above the sustained rate (default: 10)
	Burst int `env:"RATE_LIMIT_BURST" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	// Enabled mounts the metrics endpoint (default: true)
	Enabled bool `env:"METRICS_ENABLED" default:"true"`

	// Path is where metrics are served (default: /metrics)
	Path string `env:"METRICS_PATH" default:"/metrics"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
