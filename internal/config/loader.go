package config

import (
	"fmt"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom is Load with a custom variable lookup.
func LoadFrom(getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem(), getenv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct recursively populates struct fields from environment variables.
func loadStruct(v reflect.Value, getenv func(string) string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal, getenv); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		envAlt := field.Tag.Get("envAlt")
		required := field.Tag.Get("required") == "true"

		// Try primary env var, then alternate
		value := strings.TrimSpace(getenv(envName))
		if value == "" && envAlt != "" {
			value = strings.TrimSpace(getenv(envAlt))
		}

		if value == "" {
			if required {
				if envAlt != "" {
					return fmt.Errorf("required environment variable %s (or %s) is not set", envName, envAlt)
				}
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = field.Tag.Get("default")
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		// Handle time.Duration specially
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.SetInt(int64(d))
			return nil
		}
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		// Split comma-separated values, trim whitespace
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				result = append(result, p)
			}
		}
		field.Set(reflect.ValueOf(result))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// datasetSchemes lists the URL schemes a dataset source may use.
// An empty scheme is a local path.
var datasetSchemes = map[string]bool{
	"":           true,
	"file":       true,
	"http":       true,
	"https":      true,
	"s3":         true,
	"postgres":   true,
	"postgresql": true,
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Dataset validation
	if c.Dataset.URL == "" {
		errs = append(errs, "DATASET_URL is required")
	} else if u, err := url.Parse(c.Dataset.URL); err != nil {
		errs = append(errs, fmt.Sprintf("DATASET_URL is not a valid URL: %v", err))
	} else {
		scheme := strings.ToLower(u.Scheme)
		if !datasetSchemes[scheme] {
			errs = append(errs, fmt.Sprintf("DATASET_URL scheme %q must be one of: http, https, s3, postgres, file", u.Scheme))
		}
		if scheme == "s3" && (u.Host == "" || strings.Trim(u.Path, "/") == "") {
			errs = append(errs, "DATASET_URL must name both bucket and key for s3 sources (s3://bucket/key)")
		}
		if (scheme == "postgres" || scheme == "postgresql") && c.Dataset.Table == "" {
			errs = append(errs, "DATASET_TABLE is required for postgres sources")
		}
	}
	if strings.TrimSpace(c.Dataset.NameColumn) == "" {
		errs = append(errs, "DATASET_NAME_COLUMN must not be blank")
	}
	if c.Dataset.FetchTimeout <= 0 {
		errs = append(errs, "DATASET_FETCH_TIMEOUT must be positive")
	}
	if c.Dataset.MaxBytes < 0 {
		errs = append(errs, "DATASET_MAX_BYTES must be non-negative")
	}
	if (c.Dataset.S3AccessKeyID == "") != (c.Dataset.S3SecretAccessKey == "") {
		errs = append(errs, "S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set together")
	}

	// Animation validation
	if c.Animation.URL != "" {
		if u, err := url.Parse(c.Animation.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, "ANIMATION_URL must be an http or https URL")
		}
	}
	if c.Animation.Timeout <= 0 {
		errs = append(errs, "ANIMATION_TIMEOUT must be positive")
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Rate limit validation
	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}
	if c.Rate.Enabled && c.Rate.Burst <= 0 {
		errs = append(errs, "RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	// Metrics validation
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Sprintf("METRICS_PATH (%q) must start with /", c.Metrics.Path))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Credentials in the dataset URL and the S3 secret are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port)
	fmt.Fprintf(&b, "Dataset: {URL: %q, NameColumn: %q, FetchTimeout: %s, MaxBytes: %d, S3Secret: %s}, ",
		MaskURL(c.Dataset.URL), c.Dataset.NameColumn, c.Dataset.FetchTimeout, c.Dataset.MaxBytes,
		maskSecret(c.Dataset.S3SecretAccessKey))
	fmt.Fprintf(&b, "Animation: {Enabled: %v}, ", c.Animation.URL != "")
	fmt.Fprintf(&b, "Rate: {Enabled: %v, RequestsPerMinute: %d, Burst: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Rate.Burst)
	fmt.Fprintf(&b, "Metrics: {Enabled: %v, Path: %q}, ", c.Metrics.Enabled, c.Metrics.Path)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}

// MaskURL hides the password, path and query string of a URL.
// Published spreadsheet links carry their access token in the path, so only
// the scheme, user name and host survive.
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	var b strings.Builder
	b.WriteString(u.Scheme + "://")
	if u.User != nil {
		b.WriteString(u.User.Username())
		if _, ok := u.User.Password(); ok {
			b.WriteString(":[MASKED]")
		}
		b.WriteString("@")
	}
	b.WriteString(u.Host)
	if u.Path != "" && u.Path != "/" {
		b.WriteString("/[MASKED]")
	}
	if u.RawQuery != "" {
		b.WriteString("?[MASKED]")
	}
	return b.String()
}

func maskSecret(s string) string {
	if s == "" {
		return `""`
	}
	return "[MASKED]"
}
