// Command obitwatch-cli drives the engine from a terminal: one-shot
// searches, exclusion maintenance and batch review. Exit 0 on success,
// 1 on validation or fatal error.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"obitwatch/internal/modkit"
	"obitwatch/internal/platform/config"
	"obitwatch/internal/platform/logger"
	"obitwatch/internal/platform/store"

	batchdom "obitwatch/internal/services/batch/domain"
	batchmod "obitwatch/internal/services/batch/module"
	exclmod "obitwatch/internal/services/exclusions/module"
	searchmod "obitwatch/internal/services/search/module"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: obitwatch-cli <command> [flags]

commands:
  search           one-shot search (--first --last [--nickname --city --state --age --keywords])
  exclude          add an exclusion (--key --fingerprint [--url --name --reason] | --global)
  exclusions       list exclusions (--key | --global | all)
  unexclude        remove an exclusion (--id)
  exclusion-stats  store counters
  review           inspect a sweep (--batch <id> | --latest)`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd, args := os.Args[1], os.Args[2:]

	root := config.New()
	l := logger.Get()

	st, deps := open(root)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var err error
	switch cmd {
	case "search":
		err = runSearch(deps, args)
	case "exclude":
		err = runExclude(deps, args)
	case "exclusions":
		err = runExclusions(deps, args)
	case "unexclude":
		err = runUnexclude(deps, args)
	case "exclusion-stats":
		err = runStats(deps, args)
	case "review":
		err = runReview(deps, args)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func open(root config.Conf) (*store.Store, modkit.Deps) {
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	dsn := store.PGURLFromEnv(root)
	if dsn == "" {
		l.Panic().Msg("missing SERVICE_PGSQL_DBURL, DATABASE_URL or PG_* settings")
	}
	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dsn,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	return st, modkit.Deps{Cfg: root, PG: st.PG, Log: *l}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exclStore(deps modkit.Deps) exclmod.Ports {
	return exclmod.New(deps).Ports().(exclmod.Ports)
}

func engine(deps modkit.Deps) (searchmod.Ports, error) {
	excl := exclStore(deps)
	m, err := searchmod.New(deps, excl.Store)
	if err != nil {
		return searchmod.Ports{}, err
	}
	return m.Ports().(searchmod.Ports), nil
}

func inspect(deps modkit.Deps) batchdom.InspectPort {
	return batchmod.NewInspect(deps)
}
