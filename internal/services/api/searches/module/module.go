// Package module wires saved-search CRUD into the API
package module

import (
	modkit "obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"
	str "obitwatch/internal/platform/strings"

	searcheshttp "obitwatch/internal/services/api/searches/http"
	ssdom "obitwatch/internal/services/savedsearch/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	deps modkit.Deps
	name string
	svc  ssdom.SearchesPort
}

// New constructs the searches API module around the saved-search port
func New(deps modkit.Deps, svc ssdom.SearchesPort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("searches")}, opts...)...)
	return &Module{deps: deps, name: b.Name, svc: svc}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	searcheshttp.Register(r, m.svc)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "searches") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
