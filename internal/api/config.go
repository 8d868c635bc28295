package api

import (
	"fmt"
	"os"
	"time"

	"github.com/FocuswithJustin/werd/internal/validation"
)

// DefaultPort is the port used when Config.Port is zero.
const DefaultPort = 8080

// Config holds server configuration.
type Config struct {
	Port            int
	Profile         string        // store profile the session reads and writes
	AllowedOrigins  []string      // CORS and WebSocket origins (empty = allow all)
	Auth            AuthConfig    // Authentication configuration
	TLS             TLSConfig     // TLS configuration
	RateLimit       RateLimitConfig
	ShutdownTimeout time.Duration // grace period for in-flight requests
}

// TLSConfig holds TLS/HTTPS configuration.
type TLSConfig struct {
	Enabled  bool   // Enable HTTPS
	CertFile string // Path to TLS certificate file
	KeyFile  string // Path to TLS private key file
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Profile == "" {
		c.Profile = "default"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	return c
}

// Validate checks the configuration after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if err := validation.ValidateProfile(c.Profile); err != nil {
		return err
	}
	if err := ValidateAuthConfig(c.Auth); err != nil {
		return fmt.Errorf("invalid auth config: %w", err)
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.BurstSize < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if c.TLS.Enabled {
		if c.TLS.CertFile == "" || c.TLS.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert or key file not specified")
		}
		if _, err := os.Stat(c.TLS.CertFile); err != nil {
			return fmt.Errorf("TLS cert file not found: %w", err)
		}
		if _, err := os.Stat(c.TLS.KeyFile); err != nil {
			return fmt.Errorf("TLS key file not found: %w", err)
		}
	}
	return nil
}
