// Package module wires the exclusions service
package module

import (
	"obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"
	"obitwatch/internal/services/exclusions/repo"
	"obitwatch/internal/services/exclusions/service"
)

// Ports exposed by the exclusions module
type Ports struct {
	Store service.Service
}

// Module implements the exclusions service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new exclusions module
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG())

	m := &Module{deps: deps}
	m.ports = Ports{Store: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "exclusions" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
