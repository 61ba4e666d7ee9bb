package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"obitwatch/internal/modkit"
	"obitwatch/internal/modkit/module"
	"obitwatch/internal/platform/config"
	"obitwatch/internal/platform/logger"
	"obitwatch/internal/platform/store"

	batchmod "obitwatch/internal/services/batch/module"
	exclmod "obitwatch/internal/services/exclusions/module"
	searchmod "obitwatch/internal/services/search/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	l := logger.Get()

	var (
		fFile = flag.String("file", "", "input file recorded on the batch row (optional)")
	)
	flag.Parse()

	dsn := store.PGURLFromEnv(root)
	if dsn == "" {
		l.Panic().Msg("missing SERVICE_PGSQL_DBURL, DATABASE_URL or PG_* settings")
	}
	cfg := store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dsn,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}
	if chURL := chCfg.MayString("DBURL", ""); chURL != "" {
		cfg.CH = store.CHConfig{
			Enabled:    true,
			URL:        chURL,
			LogSQL:     chCfg.MayBool("LOG_SQL", false),
			ClientName: "obitwatch",
			ClientTag:  "batch",
		}
	}
	st, err := store.Open(context.Background(), cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Cfg: root, PG: st.PG, CH: st.CH, Log: *l}

	// the sweep honors SIGINT/SIGTERM between queries, never mid-insert
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	excl := exclmod.New(deps)
	module.Register(excl.Name(), excl.Ports())

	search, err := searchmod.New(deps, excl.Ports().(exclmod.Ports).Store)
	if err != nil {
		l.Fatal().Err(err).Msg("search engine wiring failed")
	}
	module.Register(search.Name(), search.Ports())

	batch := batchmod.New(deps, search.Ports().(searchmod.Ports).Engine)
	module.Register(batch.Name(), batch.Ports())

	report, unread, err := batch.Ports().(batchmod.Ports).Runner.Run(ctx, *fFile)
	if err != nil {
		l.Fatal().Err(err).Msg("sweep failed")
	}

	// the per-user unread summary goes to the notification collaborator;
	// emit it on stdout so the mailer step can consume it
	out := struct {
		Report any `json:"report"`
		Unread any `json:"unread"`
	}{Report: report, Unread: unread}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		l.Error().Err(err).Msg("summary encode failed")
	}
}
