// Package api assembles the API module: domain systems, routes, and the
// module middleware stack.
package api

import (
	"net/http"

	"github.com/JaimeStill/jobboard/internal/config"
	"github.com/JaimeStill/jobboard/internal/infrastructure"
	"github.com/JaimeStill/jobboard/pkg/metrics"
	"github.com/JaimeStill/jobboard/pkg/middleware"
	"github.com/JaimeStill/jobboard/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// CORS runs first so preflight requests are answered without a session token.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) *module.Module {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(metrics.Middleware)

	return m
}
