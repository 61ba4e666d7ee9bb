// Package module wires the batch runner
package module

import (
	"context"
	"errors"
	"time"

	"obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"
	"obitwatch/internal/platform/logger"

	"obitwatch/internal/services/batch/domain"
	"obitwatch/internal/services/batch/guardrails"
	"obitwatch/internal/services/batch/repo"
	"obitwatch/internal/services/batch/service"
	ssdom "obitwatch/internal/services/savedsearch/domain"
	ssrepo "obitwatch/internal/services/savedsearch/repo"
)

// Ports exposed by the batch module
type Ports struct {
	Runner  domain.RunnerPort
	Inspect domain.InspectPort
}

// Module implements the batch service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// leasedRunner wraps the service's Run in the day-scoped sweep lease
type leasedRunner struct {
	inner domain.RunnerPort
	lease func(ctx context.Context, day time.Time, do func(context.Context) error) error
}

func (r leasedRunner) Run(ctx context.Context, inputFile string) (domain.RunReport, []ssdom.UserUnread, error) {
	var report domain.RunReport
	var unread []ssdom.UserUnread
	err := r.lease(ctx, time.Now().UTC(), func(ctx context.Context) error {
		var err error
		report, unread, err = r.inner.Run(ctx, inputFile)
		return err
	})
	if errors.Is(err, guardrails.ErrLeaseHeld) {
		logger.C(ctx).Info().Msg("batch: sweep lease held elsewhere; clean skip")
		return domain.RunReport{}, nil, nil
	}
	return report, unread, err
}

// New constructs a new batch module around an already-wired engine
func New(deps modkit.Deps, engine domain.Engine) *Module {
	opts := FromConfig(deps.Cfg)

	sink := service.NewSink(deps.CH)
	svc := service.New(deps.PG, repo.NewPG(), ssrepo.NewPG(), engine, sink, service.Config{
		ListLimit: opts.ListLimit,
	})

	var runner domain.RunnerPort = svc
	if opts.Leases {
		runner = leasedRunner{
			inner: svc,
			lease: guardrails.MakeSweepLease(deps, "batch", opts.LeaseTTL),
		}
	}

	m := &Module{deps: deps}
	m.ports = Ports{Runner: runner, Inspect: svc}
	return m
}

// NewInspect constructs the read-only batch surface without an engine,
// for tooling that only inspects past sweeps.
func NewInspect(deps modkit.Deps) domain.InspectPort {
	opts := FromConfig(deps.Cfg)
	return service.NewInspect(deps.PG, repo.NewPG(), service.Config{ListLimit: opts.ListLimit})
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "batch" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
