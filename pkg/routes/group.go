// Package routes registers grouped method-and-pattern routes on a ServeMux.
package routes

import "net/http"

// Group organizes routes under a common prefix. Middleware wraps every route
// in the group and its children, outermost first.
type Group struct {
	Prefix     string
	Middleware []func(http.Handler) http.Handler
	Routes     []Route
	Children   []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", nil, g)
	}
}

func register(mux *http.ServeMux, parent string, inherited []func(http.Handler) http.Handler, g Group) {
	prefix := parent + g.Prefix
	chain := append(append([]func(http.Handler) http.Handler{}, inherited...), g.Middleware...)

	for _, r := range g.Routes {
		var h http.Handler = r.Handler
		for i := len(chain) - 1; i >= 0; i-- {
			h = chain[i](h)
		}
		mux.Handle(r.Method+" "+prefix+r.Pattern, h)
	}

	for _, child := range g.Children {
		register(mux, prefix, chain, child)
	}
}
