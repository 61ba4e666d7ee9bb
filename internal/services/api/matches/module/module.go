// Package module wires the match lifecycle surface into the API
package module

import (
	modkit "obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"
	str "obitwatch/internal/platform/strings"

	matcheshttp "obitwatch/internal/services/api/matches/http"
	ssdom "obitwatch/internal/services/savedsearch/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	deps modkit.Deps
	name string
	svc  ssdom.LifecyclePort
}

// New constructs the matches API module around the lifecycle port
func New(deps modkit.Deps, svc ssdom.LifecyclePort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("matches")}, opts...)...)
	return &Module{deps: deps, name: b.Name, svc: svc}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	matcheshttp.Register(r, m.svc)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "matches") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
