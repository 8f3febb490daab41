package app

import (
	"fmt"
	"os"
	"regexp"
	"time"
)

var mountIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Env maps environment variable names for app configuration.
type Env struct {
	Title           string
	MountID         string
	RefreshInterval string
}

// Config contains the app module configuration.
type Config struct {
	Title string `toml:"title"`
	// MountID is the id of the element every view renders into.
	// Default: "app"
	MountID string `toml:"mount_id"`
	// RefreshInterval reloads pages on this interval. "0s" disables it.
	// Default: "30s"
	RefreshInterval string `toml:"refresh_interval"`
}

// RefreshDuration parses and returns the refresh interval.
func (c *Config) RefreshDuration() time.Duration {
	d, _ := time.ParseDuration(c.RefreshInterval)
	return d
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
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.MountID != "" {
		c.MountID = overlay.MountID
	}
	if overlay.RefreshInterval != "" {
		c.RefreshInterval = overlay.RefreshInterval
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Crypto Monitor"
	}
	if c.MountID == "" {
		c.MountID = "app"
	}
	if c.RefreshInterval == "" {
		c.RefreshInterval = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Title != "" {
		if v := os.Getenv(env.Title); v != "" {
			c.Title = v
		}
	}
	if env.MountID != "" {
		if v := os.Getenv(env.MountID); v != "" {
			c.MountID = v
		}
	}
	if env.RefreshInterval != "" {
		if v := os.Getenv(env.RefreshInterval); v != "" {
			c.RefreshInterval = v
		}
	}
}

func (c *Config) validate() error {
	if !mountIDPattern.MatchString(c.MountID) {
		return fmt.Errorf("invalid mount_id: %q", c.MountID)
	}
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return fmt.Errorf("invalid refresh_interval: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("refresh_interval must not be negative: %s", c.RefreshInterval)
	}
	return nil
}
