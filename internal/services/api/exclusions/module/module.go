// Package module wires the exclusions surface into the API
package module

import (
	modkit "obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"
	str "obitwatch/internal/platform/strings"

	exclhttp "obitwatch/internal/services/api/exclusions/http"
	exclsvc "obitwatch/internal/services/exclusions/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps modkit.Deps
	name string
	svc  exclsvc.Service
}

// New constructs the exclusions API module around the shared store service
func New(deps modkit.Deps, svc exclsvc.Service, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("exclusions")}, opts...)...)
	return &Module{deps: deps, name: b.Name, svc: svc}
}

// MountRoutes implements the modkit.Module interface. Paths mount at the
// API root (/exclude, /exclusions) to match the public surface.
func (m *Module) MountRoutes(r httpkit.Router) {
	exclhttp.Register(r, m.svc)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "exclusions") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
