// Package module wires batch inspection into the API
package module

import (
	modkit "obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"
	str "obitwatch/internal/platform/strings"

	batcheshttp "obitwatch/internal/services/api/batches/http"
	batchdom "obitwatch/internal/services/batch/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	deps modkit.Deps
	name string
	svc  batchdom.InspectPort
}

// New constructs the batches API module around the batch inspect port
func New(deps modkit.Deps, svc batchdom.InspectPort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("batches")}, opts...)...)
	return &Module{deps: deps, name: b.Name, svc: svc}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	batcheshttp.Register(r, m.svc)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "batches") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
