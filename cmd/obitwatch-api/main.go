// @title         Obitwatch API
// @version       0.1.0
// @description   Obituary search, exclusion and match lifecycle endpoints

package main

import (
	"context"

	"obitwatch/internal/platform/config"
	"obitwatch/internal/platform/logger"
	phttp "obitwatch/internal/platform/net/http"
	"obitwatch/internal/platform/store"

	"obitwatch/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// db config lives under SERVICE_PGSQL_*
	dbCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")

	// bring up logging early
	l := logger.Get()

	// open the platform store (postgres adapter; ClickHouse only when a
	// metrics DSN is configured)
	dsn := store.PGURLFromEnv(root)
	if dsn == "" {
		panic("missing SERVICE_PGSQL_DBURL, DATABASE_URL or PG_* settings")
	}
	cfg := store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dsn,
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", true),
		},
	}
	if chURL := chCfg.MayString("DBURL", ""); chURL != "" {
		cfg.CH = store.CHConfig{
			Enabled:    true,
			URL:        chURL,
			LogSQL:     chCfg.MayBool("LOG_SQL", false),
			ClientName: "obitwatch",
			ClientTag:  "api",
		}
	}
	st, err := store.Open(context.Background(), cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_API_PORT, default :4000)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
