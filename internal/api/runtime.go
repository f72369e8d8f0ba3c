package api

import (
	"github.com/JaimeStill/jobboard/internal/config"
	"github.com/JaimeStill/jobboard/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	CookieName     string
	MaxUploadSize  int64
	TempDir        string
	CleanupOrphans bool
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		CookieName:     cfg.Auth.CookieName,
		MaxUploadSize:  cfg.API.MaxUploadSizeBytes(),
		TempDir:        cfg.API.TempDir,
		CleanupOrphans: cfg.API.CleanupOrphans,
	}
}
