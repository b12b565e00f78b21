package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if c.Vocabulary.Path == "" {
		return fmt.Errorf("vocabulary.path must not be empty")
	}

	if c.Telemetry.QueueSize <= 0 {
		return fmt.Errorf("telemetry.queue_size must be > 0 (got %d)", c.Telemetry.QueueSize)
	}
	if c.Telemetry.RetentionDays <= 0 {
		return fmt.Errorf("telemetry.retention_days must be > 0 (got %d)", c.Telemetry.RetentionDays)
	}

	return nil
}

func (d *DictionaryConfig) validate() error {
	u, err := url.Parse(d.ExternalBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("external_base_url must be an absolute URL (got %q)", d.ExternalBaseURL)
	}
	if d.ExternalTimeout <= 0 {
		return fmt.Errorf("external_timeout must be > 0 (got %v)", d.ExternalTimeout)
	}
	if d.RetryAttempts == 0 {
		return fmt.Errorf("retry_attempts must be >= 1")
	}
	if d.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be > 0 (got %v)", d.CacheTTL)
	}
	if d.NotFoundTTL <= 0 {
		return fmt.Errorf("not_found_ttl must be > 0 (got %v)", d.NotFoundTTL)
	}
	if d.LookupRateLimit <= 0 {
		return fmt.Errorf("lookup_rate_limit must be > 0 (got %d)", d.LookupRateLimit)
	}
	return nil
}
