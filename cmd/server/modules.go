package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/jobboard/internal/api"
	"github.com/JaimeStill/jobboard/internal/config"
	"github.com/JaimeStill/jobboard/internal/infrastructure"
	"github.com/JaimeStill/jobboard/pkg/metrics"
	"github.com/JaimeStill/jobboard/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) *Modules {
	return &Modules{
		API: api.NewModule(cfg, infra),
	}
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	}))

	router.HandleNative("GET /readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	}))

	router.HandleNative("GET /metrics", metrics.Handler())

	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
