// Package module wires the one-shot search surface into the API
package module

import (
	stdhttp "net/http"

	modkit "obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"
	str "obitwatch/internal/platform/strings"

	searchhttp "obitwatch/internal/services/api/search/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(stdhttp.Handler) stdhttp.Handler
	register func(httpkit.Router)

	engine searchhttp.Engine
}

// New constructs the search API module around an already-wired engine
func New(deps modkit.Deps, engine searchhttp.Engine, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("search"), modkit.WithPrefix("")}, opts...)...)

	m := &Module{deps: deps, name: b.Name, prefix: b.Prefix, mws: b.Mw, engine: engine}

	external := b.Register
	m.register = func(r httpkit.Router) {
		searchhttp.Register(r, m.engine)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface. Routes mount at the
// API root so the path is exactly /search.
func (m *Module) MountRoutes(r httpkit.Router) {
	if m.register != nil {
		m.register(r)
	}
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "search") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return m.prefix }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(stdhttp.Handler) stdhttp.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
