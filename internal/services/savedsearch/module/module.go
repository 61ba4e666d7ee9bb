// Package module wires the saved-search service
package module

import (
	"obitwatch/internal/core/normalize"
	"obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"

	"obitwatch/internal/services/savedsearch/domain"
	"obitwatch/internal/services/savedsearch/repo"
	"obitwatch/internal/services/savedsearch/service"
)

// Ports exposed by the saved-search module
type Ports struct {
	Searches  domain.SearchesPort
	Lifecycle domain.LifecyclePort
	Storage   func() domain.StorageRepo // bound to the pool; batch uses this
}

// Module implements the saved-search service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new saved-search module. excl may be nil when the
// exclusion feedback loop is not wired (tests, tooling).
func New(deps modkit.Deps, excl service.Exclusions, norm *normalize.Normalizer) *Module {
	binder := repo.NewPG()
	svc := service.New(deps.PG, binder, excl, norm)

	m := &Module{deps: deps}
	m.ports = Ports{
		Searches:  svc,
		Lifecycle: svc,
		Storage:   func() domain.StorageRepo { return binder.Bind(deps.PG) },
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "savedsearch" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
