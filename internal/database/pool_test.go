package database

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HabitQuest_Go/internal/testing/pgtest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = pgtest.Start(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), "://not a url", DefaultPoolOptions(5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestPool_ConnectionsReleased(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	pool, err := NewPool(ctx, testDBConnString, DefaultPoolOptions(5))
	require.NoError(t, err)
	defer pool.Close()

	for i := 0; i < 10; i++ {
		conn, err := pool.Acquire(ctx)
		require.NoError(t, err, "acquire on iteration %d", i)

		var result int
		require.NoError(t, conn.QueryRow(ctx, "SELECT 1").Scan(&result))
		assert.Equal(t, 1, result)
		conn.Release()
	}

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}

func TestMigratePostgres_Idempotent(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	pool, err := NewPool(ctx, testDBConnString, PoolOptions{MaxConns: 2, MaxIdleTime: time.Minute})
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, MigratePostgres(ctx, pool))
	require.NoError(t, MigratePostgres(ctx, pool))

	var exists bool
	err = pool.QueryRow(ctx, "SELECT to_regclass('public.documents') IS NOT NULL").Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPoolOptions_Apply(t *testing.T) {
	cfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/habitquest")
	require.NoError(t, err)

	PoolOptions{MaxConns: 3, MinConns: 10, MaxIdleTime: time.Minute}.apply(cfg)

	assert.Equal(t, int32(3), cfg.MaxConns)
	assert.Equal(t, int32(3), cfg.MinConns, "min is capped at max")
	assert.Equal(t, time.Minute, cfg.MaxConnIdleTime)

	def := DefaultPoolOptions(8)
	assert.Equal(t, 8, def.MaxConns)
	assert.Equal(t, DefaultMinConnections, def.MinConns)
}
