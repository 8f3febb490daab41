package apiclient

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"
)

// DefaultBaseURL is the hosted backend.
const DefaultBaseURL = "https://crypto-backend-2.onrender.com"

// Env maps environment variable names for client configuration.
type Env struct {
	BaseURL         string
	Timeout         string
	MaxResponseSize string
	UserAgent       string
}

// Config contains backend client configuration.
type Config struct {
	BaseURL string `toml:"base_url"`
	// Timeout bounds each request, including reading the body.
	// Default: "15s"
	Timeout            string `toml:"timeout"`
	MaxResponseSize    string `toml:"max_response_size"`
	UserAgent          string `toml:"user_agent"`
	maxResponseSizeVal int64
}

// TimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxResponseSizeBytes returns the parsed body limit. Valid after Finalize.
func (c *Config) MaxResponseSizeBytes() int64 {
	return c.maxResponseSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxResponseSize != "" {
		c.MaxResponseSize = overlay.MaxResponseSize
	}
	if overlay.UserAgent != "" {
		c.UserAgent = overlay.UserAgent
	}
}

func (c *Config) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == "" {
		c.Timeout = "15s"
	}
	if c.MaxResponseSize == "" {
		c.MaxResponseSize = "4MB"
	}
	if c.UserAgent == "" {
		c.UserAgent = "crypto-monitor"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxResponseSize != "" {
		if v := os.Getenv(env.MaxResponseSize); v != "" {
			c.MaxResponseSize = v
		}
	}
	if env.UserAgent != "" {
		if v := os.Getenv(env.UserAgent); v != "" {
			c.UserAgent = v
		}
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url: scheme must be http or https: %s", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url: missing host: %s", c.BaseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("invalid base_url: query and fragment not allowed: %s", c.BaseURL)
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")

	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	size, err := units.FromHumanSize(c.MaxResponseSize)
	if err != nil {
		return fmt.Errorf("invalid max_response_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_response_size must be positive")
	}
	c.maxResponseSizeVal = size

	return nil
}
