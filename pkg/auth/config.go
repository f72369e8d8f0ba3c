package auth

import (
	"fmt"
	"os"
	"time"
)

// Config holds token verification settings.
type Config struct {
	Secret     string `toml:"secret"`
	Issuer     string `toml:"issuer"`
	CookieName string `toml:"cookie_name"`
	Expiry     string `toml:"expiry"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Secret     string
	Issuer     string
	CookieName string
	Expiry     string
}

// ExpiryDuration returns Expiry as a time.Duration.
func (c *Config) ExpiryDuration() time.Duration {
	d, _ := time.ParseDuration(c.Expiry)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	if overlay.Expiry != "" {
		c.Expiry = overlay.Expiry
	}
}

func (c *Config) loadDefaults() {
	if c.Issuer == "" {
		c.Issuer = "jobboard"
	}
	if c.CookieName == "" {
		c.CookieName = "token"
	}
	if c.Expiry == "" {
		c.Expiry = "168h"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.CookieName != "" {
		if v := os.Getenv(env.CookieName); v != "" {
			c.CookieName = v
		}
	}
	if env.Expiry != "" {
		if v := os.Getenv(env.Expiry); v != "" {
			c.Expiry = v
		}
	}
}

func (c *Config) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("secret required")
	}
	if _, err := time.ParseDuration(c.Expiry); err != nil {
		return fmt.Errorf("invalid expiry: %w", err)
	}
	return nil
}
