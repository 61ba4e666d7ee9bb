// Package module wires the search engine: the configured provider, the
// enrichment fetcher and the exclusion filter assembled into the pipeline
// service. One HTTP client (with its connection pool) is shared by the
// provider and every enrichment fetch.
package module

import (
	"context"
	"net/http"
	"time"

	"obitwatch/internal/core/normalize"
	"obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"
	"obitwatch/internal/platform/logger"

	enrichsvc "obitwatch/internal/services/enrich/service"
	"obitwatch/internal/services/search/domain"
	"obitwatch/internal/services/search/provider"
	"obitwatch/internal/services/search/provider/googlecse"
	"obitwatch/internal/services/search/provider/serpapi"
	"obitwatch/internal/services/search/provider/serper"
	"obitwatch/internal/services/search/repo"
	"obitwatch/internal/services/search/service"
)

// Ports exposed by the search module
type Ports struct {
	Engine *service.Service
	Norm   *normalize.Normalizer
}

// Module implements the search engine module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the search module. exclusions may be nil (no filtering).
// Provider credentials come from the environment; a missing credential for
// the selected provider is startup-fatal, surfaced as the returned error.
func New(deps modkit.Deps, exclusions domain.ExclusionFilter) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	norm := normalize.New()
	augmentNicknames(deps, norm)

	client := &http.Client{Timeout: 30 * time.Second}

	factory := provider.Factory{
		Serper:    serper.New,
		SerpAPI:   serpapi.New,
		GoogleCSE: googlecse.New,
	}
	prov, err := factory.FromConfig(deps.Cfg, client, norm)
	if err != nil {
		return nil, err
	}

	var enricher domain.Enricher
	if opts.EnrichPages {
		enricher = enrichsvc.New(client)
	}

	engine := service.New(prov, enricher, exclusions, norm, service.Config{
		MaxResults:        opts.MaxResults,
		RecencyWindowDays: opts.RecencyWindowDays,
		DomainsBlocked:    opts.DomainsBlocked,
		EnrichPages:       opts.EnrichPages,
		EnrichTopN:        opts.EnrichTopN,
		EnrichConcurrency: opts.EnrichConcurrency,
		EnrichTimeout:     opts.EnrichTimeout,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Engine: engine, Norm: norm}
	return m, nil
}

// augmentNicknames folds persisted name_first_variant pairs into the
// code-seeded nickname groups. Best-effort: the seed is sufficient on its
// own, so a missing table or unreachable pool just logs.
func augmentNicknames(deps modkit.Deps, norm *normalize.Normalizer) {
	if deps.PG == nil {
		return
	}
	pairs, err := repo.NewPG().Bind(deps.PG).Pairs(context.Background())
	if err != nil {
		logger.Named("search").Debug().Err(err).Msg("nickname variant table unavailable; using code seed only")
		return
	}
	for _, p := range pairs {
		norm.AddVariantPair(p.Name, p.Variant)
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "search" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
