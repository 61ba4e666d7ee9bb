package store

import (
	"fmt"
	"net/url"

	"obitwatch/internal/platform/config"
)

// PGURLFromEnv resolves the postgres DSN the way deployments expect:
// SERVICE_PGSQL_DBURL first, then DATABASE_URL, then assembly from the
// individual PG_* variables. Returns "" when none are set.
func PGURLFromEnv(root config.Conf) string {
	if dsn := root.Prefix("SERVICE_PGSQL_").MayString("DBURL", ""); dsn != "" {
		return dsn
	}
	if dsn := root.MayString("DATABASE_URL", ""); dsn != "" {
		return dsn
	}

	pg := root.Prefix("PG_")
	host := pg.MayString("HOST", "")
	if host == "" {
		return ""
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%s", host, pg.MayString("PORT", "5432")),
		Path:   "/" + pg.MayString("DATABASE", "obitwatch"),
	}
	user := pg.MayString("USER", "")
	if user != "" {
		if pass := pg.MayString("PASSWORD", ""); pass != "" {
			u.User = url.UserPassword(user, pass)
		} else {
			u.User = url.User(user)
		}
	}
	if ssl := pg.MayString("SSLMODE", ""); ssl != "" {
		u.RawQuery = "sslmode=" + ssl
	}
	return u.String()
}
