package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JaimeStill/jobboard/pkg/formatting"
	"github.com/JaimeStill/jobboard/pkg/middleware"
)

const (
	EnvAPIBasePath       = "JOBBOARD_API_BASE_PATH"
	EnvAPIMaxUploadSize  = "JOBBOARD_API_MAX_UPLOAD_SIZE"
	EnvAPITempDir        = "JOBBOARD_API_TEMP_DIR"
	EnvAPICleanupOrphans = "JOBBOARD_API_CLEANUP_ORPHANS"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "JOBBOARD_CORS_ENABLED",
	Origins:          "JOBBOARD_CORS_ORIGINS",
	AllowedMethods:   "JOBBOARD_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "JOBBOARD_CORS_ALLOWED_HEADERS",
	AllowCredentials: "JOBBOARD_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "JOBBOARD_CORS_MAX_AGE",
}

// APIConfig holds API routing, upload, and CORS settings.
type APIConfig struct {
	BasePath      string `toml:"base_path"`
	MaxUploadSize string `toml:"max_upload_size"`
	// TempDir receives spooled resumes. Empty uses the OS temp directory.
	TempDir        string                `toml:"temp_dir"`
	CleanupOrphans bool                  `toml:"cleanup_orphans"`
	CORS           middleware.CORSConfig `toml:"cors"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes. Valid after Finalize.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay. CleanupOrphans only turns on.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.TempDir != "" {
		c.TempDir = overlay.TempDir
	}
	if overlay.CleanupOrphans {
		c.CleanupOrphans = true
	}
	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv(EnvAPITempDir); v != "" {
		c.TempDir = v
	}
	if v, err := strconv.ParseBool(os.Getenv(EnvAPICleanupOrphans)); err == nil {
		c.CleanupOrphans = v
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("base_path must be a single-level path: %q", c.BasePath)
	}
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	return nil
}
