package db

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// Environment variables consulted for the database DSN, in precedence order.
const (
	EnvDatabaseURL = "SFLINK_DATABASE_URL"
	EnvGenericURL  = "DATABASE_URL"
)

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// ResolveDSN picks the database DSN: flag, then $SFLINK_DATABASE_URL, then
// $DATABASE_URL, then the configured value. The result is validated but not dialled.
func ResolveDSN(flag, configured string, lookup LookupEnv) (string, error) {
	dsn := strings.TrimSpace(flag)
	if dsn == "" {
		dsn = envValue(lookup, EnvDatabaseURL)
	}
	if dsn == "" {
		dsn = envValue(lookup, EnvGenericURL)
	}
	if dsn == "" {
		dsn = strings.TrimSpace(configured)
	}
	if dsn == "" {
		return "", fmt.Errorf("no database connection: use --connection, $%s, $%s or connection.dsn in sflink.yaml: %w",
			EnvDatabaseURL, EnvGenericURL, sflink.ErrInvalidConfig)
	}

	if _, err := pgconn.ParseConfig(dsn); err != nil {
		return "", fmt.Errorf("invalid connection string: %w: %v", sflink.ErrInvalidConfig, err)
	}
	return dsn, nil
}

// Describe returns host:port/database for dsn without credentials, for logs.
func Describe(dsn string) string {
	cfg, err := pgconn.ParseConfig(dsn)
	if err != nil {
		return "<invalid connection string>"
	}
	return describe(cfg)
}

func envValue(lookup LookupEnv, key string) string {
	if lookup == nil {
		return ""
	}
	v, _ := lookup(key)
	return strings.TrimSpace(v)
}
