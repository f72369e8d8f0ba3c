package api

import (
	"net/http"

	"github.com/JaimeStill/jobboard/pkg/auth"
	"github.com/JaimeStill/jobboard/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	authenticate := auth.Middleware(runtime.Tokens, runtime.CookieName, runtime.Logger)

	routes.Register(mux, routes.Group{
		Middleware: []func(http.Handler) http.Handler{authenticate},
		Children: []routes.Group{
			domain.Applications.Handler(runtime.MaxUploadSize, runtime.TempDir).Routes(),
		},
	})
}
