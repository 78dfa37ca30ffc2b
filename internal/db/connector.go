package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/sflink/internal/retry"
	"github.com/vvka-141/sflink/pkg/sflink"
)

// Pool sizing for a request-scoped read workload.
const (
	DefaultMaxConns        = 10
	DefaultMinConns        = 1
	DefaultMaxConnIdleTime = 5 * time.Minute
)

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
}

// StandardConnector connects to the wiki database with DSN credentials and retries
// transient failures.
type StandardConnector struct {
	dsn           string
	retryExecutor *retry.Executor
}

// NewStandardConnector creates a connector for dsn using the default retry policy.
func NewStandardConnector(dsn string, logger sflink.Logger) *StandardConnector {
	if logger == nil {
		panic("logger cannot be nil")
	}
	strategy := retry.NewExponentialBackoff(sflink.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(sflink.DefaultRetryInitialDelay),
		retry.WithMaxDelay(sflink.DefaultRetryMaxDelay),
	)
	executor := retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), strategy).
		WithLogger(logger, "database connection")

	return &StandardConnector{
		dsn:           dsn,
		retryExecutor: executor,
	}
}

// Connect opens and pings a pool.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w: %v", sflink.ErrInvalidConfig, err)
	}
	configurePool(poolConfig)
	target := describe(&poolConfig.ConnConfig.Config)

	var pool *pgxpool.Pool
	err = c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, target)
	}
	return pool, nil
}

func describe(cfg *pgconn.Config) string {
	return fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
}

// wrapConnectionError adds a hint for the usual causes of a failed connection.
func wrapConnectionError(err error, target string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	msg := strings.ToLower(err.Error())
	var hint string
	switch {
	case strings.Contains(msg, "connection refused"):
		hint = "is PostgreSQL running and listening on this address?"
	case strings.Contains(msg, "no such host"):
		hint = "check the host name in the connection string"
	case strings.Contains(msg, "password authentication failed"):
		hint = "check the user and password (or $PGPASSWORD, ~/.pgpass)"
	case strings.Contains(msg, "does not exist"):
		hint = "the wiki database does not exist; create it, then run 'sflink migrate'"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		hint = "the server did not answer in time"
	}

	if hint == "" {
		return fmt.Errorf("%w: failed to connect to %s: %v", sflink.ErrConnectionFailed, target, err)
	}
	return fmt.Errorf("%w: failed to connect to %s (%s): %v", sflink.ErrConnectionFailed, target, hint, err)
}

var _ sflink.Connector = (*StandardConnector)(nil)
