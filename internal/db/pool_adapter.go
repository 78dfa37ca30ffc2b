package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// PoolAdapter adapts *pgxpool.Pool to sflink.DBConnection.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolAdapter struct {
	pool *pgxpool.Pool
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

func (p *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

func (p *PoolAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

func (p *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) sflink.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

// Ping checks that the database is reachable.
func (p *PoolAdapter) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PoolAdapter) Close() {
	p.pool.Close()
}

// Verify PoolAdapter implements DBConnection at compile time
var _ sflink.DBConnection = (*PoolAdapter)(nil)
