// Package api provides the HTTP API for the application
package api

import (
	"obitwatch/internal/platform/config"
	"obitwatch/internal/platform/logger"
	phttp "obitwatch/internal/platform/net/http"
	"obitwatch/internal/platform/store"

	"obitwatch/internal/modkit"
	"obitwatch/internal/modkit/httpkit"
	"obitwatch/internal/modkit/module"
	"obitwatch/internal/modkit/swaggerkit"

	apibatches "obitwatch/internal/services/api/batches/module"
	apiexclusions "obitwatch/internal/services/api/exclusions/module"
	apimatches "obitwatch/internal/services/api/matches/module"
	apisearch "obitwatch/internal/services/api/search/module"
	apisearches "obitwatch/internal/services/api/searches/module"
	metamod "obitwatch/internal/services/api/meta/module"

	batchmod "obitwatch/internal/services/batch/module"
	exclmod "obitwatch/internal/services/exclusions/module"
	ssmod "obitwatch/internal/services/savedsearch/module"
	searchmod "obitwatch/internal/services/search/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// exclusion store first: the engine filters through it and the match
	// lifecycle feeds it
	exclusions := exclmod.New(deps)
	exclStore := exclusions.Ports().(exclmod.Ports).Store

	// the engine with provider, enrichment and the exclusion filter
	search, err := searchmod.New(deps, exclStore)
	if err != nil {
		opt.Logger.Panic().Err(err).Msg("search engine wiring failed")
	}
	engine := search.Ports().(searchmod.Ports).Engine
	norm := search.Ports().(searchmod.Ports).Norm

	// saved searches + match lifecycle, routing feedback into exclusions
	saved := ssmod.New(deps, exclStore, norm)
	savedPorts := saved.Ports().(ssmod.Ports)

	// batch runner exposes the inspect surface; Run itself is driven by
	// the batch binary, not this process
	batch := batchmod.New(deps, engine)
	batchPorts := batch.Ports().(batchmod.Ports)

	mods := []module.Module{
		metamod.New(deps),
		apisearch.New(deps, engine),
		apiexclusions.New(deps, exclStore),
		apibatches.New(deps, batchPorts.Inspect),
		apimatches.New(deps, savedPorts.Lifecycle),
		apisearches.New(deps, savedPorts.Searches),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		// register worker-side ports for cross-module lookups
		module.Register(exclusions.Name(), exclusions.Ports())
		module.Register(search.Name(), search.Ports())
		module.Register(saved.Name(), saved.Ports())
		module.Register(batch.Name(), batch.Ports())

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
