package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions bounds the pgx pool. Zero values keep the pgx defaults.
type PoolOptions struct {
	MaxConns    int
	MinConns    int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

// DefaultPoolOptions sizes a pool for the documents table: one warm
// connection and maxConns at most
func DefaultPoolOptions(maxConns int) PoolOptions {
	return PoolOptions{
		MaxConns:    maxConns,
		MinConns:    DefaultMinConnections,
		MaxIdleTime: DefaultMaxConnIdleTime,
		MaxLifetime: DefaultMaxConnLifetime,
	}
}

func (o PoolOptions) apply(cfg *pgxpool.Config) {
	if o.MaxConns > 0 {
		cfg.MaxConns = clampInt32(o.MaxConns)
	}
	if o.MinConns > 0 {
		cfg.MinConns = clampInt32(o.MinConns)
		if cfg.MinConns > cfg.MaxConns {
			cfg.MinConns = cfg.MaxConns
		}
	}
	if o.MaxIdleTime > 0 {
		cfg.MaxConnIdleTime = o.MaxIdleTime
	}
	if o.MaxLifetime > 0 {
		cfg.MaxConnLifetime = o.MaxLifetime
	}
}

func clampInt32(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

// NewPool opens a pgx pool and pings it before returning
func NewPool(ctx context.Context, connString string, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}
	opts.apply(cfg)

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Info(LogMsgConnected, "host", cfg.ConnConfig.Host, "database", cfg.ConnConfig.Database, "max_conns", cfg.MaxConns)
	return pool, nil
}
