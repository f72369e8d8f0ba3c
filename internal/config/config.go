// Package config loads service configuration from config.toml, an optional
// environment overlay, and JOBBOARD_ environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/jobboard/pkg/auth"
	"github.com/JaimeStill/jobboard/pkg/database"
	"github.com/JaimeStill/jobboard/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvJobboardEnv     = "JOBBOARD_ENV"
	EnvJobboardVersion = "JOBBOARD_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "JOBBOARD_DB_HOST",
	Port:            "JOBBOARD_DB_PORT",
	Name:            "JOBBOARD_DB_NAME",
	User:            "JOBBOARD_DB_USER",
	Password:        "JOBBOARD_DB_PASSWORD",
	SSLMode:         "JOBBOARD_DB_SSL_MODE",
	MaxOpenConns:    "JOBBOARD_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "JOBBOARD_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "JOBBOARD_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "JOBBOARD_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "JOBBOARD_STORAGE_CONTAINER_NAME",
	ConnectionString: "JOBBOARD_STORAGE_CONNECTION_STRING",
	ServiceURL:       "JOBBOARD_STORAGE_SERVICE_URL",
}

var authEnv = &auth.Env{
	Secret:     "JOBBOARD_AUTH_SECRET",
	Issuer:     "JOBBOARD_AUTH_ISSUER",
	CookieName: "JOBBOARD_AUTH_COOKIE_NAME",
	Expiry:     "JOBBOARD_AUTH_EXPIRY",
}

// Config is the root configuration for the job board service.
type Config struct {
	Server   ServerConfig    `toml:"server"`
	Database database.Config `toml:"database"`
	Storage  storage.Config  `toml:"storage"`
	Auth     auth.Config     `toml:"auth"`
	API      APIConfig       `toml:"api"`
	Version  string          `toml:"version"`
}

// Env returns the JOBBOARD_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvJobboardEnv); env != "" {
		return env
	}
	return "local"
}

// Load reads config.toml when present, merges the config.<env>.toml overlay
// selected by JOBBOARD_ENV, and finalizes every section. Without any file,
// defaults and environment variables supply the configuration.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// LoadDatabase resolves only the database section, for tools that do not
// need storage or token settings.
func LoadDatabase() (*database.Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Database.Finalize(databaseEnv); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	return &cfg.Database, nil
}

func read() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sections.
func (c *Config) Merge(overlay *Config) {
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Auth.Merge(&overlay.Auth)
	c.API.Merge(&overlay.API)
}

// Finalize applies defaults, environment overrides, and validation to every section.
func (c *Config) Finalize() error {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if v := os.Getenv(EnvJobboardVersion); v != "" {
		c.Version = v
	}

	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func overlayPath() string {
	env := os.Getenv(EnvJobboardEnv)
	if env == "" {
		return ""
	}
	path := fmt.Sprintf(OverlayConfigPattern, env)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
