package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/HabitQuest_Go/internal/config"
	"github.com/osse101/HabitQuest_Go/internal/database"
	"github.com/osse101/HabitQuest_Go/internal/database/postgres"
	"github.com/osse101/HabitQuest_Go/internal/database/sqlite"
	"github.com/osse101/HabitQuest_Go/internal/handler"
	"github.com/osse101/HabitQuest_Go/internal/persistence"
)

// Store is the document store picked by STORE_DRIVER
type Store struct {
	Docs persistence.DocumentStore
	// Pinger is nil for the memory driver
	Pinger handler.Pinger
	close  func() error
}

// Close releases the underlying connection
func (s *Store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStore connects to the configured driver and applies its migrations
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	var store *Store

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.DefaultPoolOptions(cfg.DBMaxConns))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		store = &Store{
			Docs:   postgres.NewDocumentStore(pool),
			Pinger: pool,
			close: func() error {
				pool.Close()
				return nil
			},
		}

	case config.StoreDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		store = &Store{
			Docs:   sqlite.NewDocumentStore(db),
			Pinger: handler.PingFunc(db.PingContext),
			close:  db.Close,
		}

	case config.StoreDriverMemory:
		store = &Store{Docs: persistence.NewMemoryStore()}

	default:
		return nil, fmt.Errorf("%s: unknown driver %q", ErrMsgFailedOpenStore, cfg.StoreDriver)
	}

	slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver)
	return store, nil
}
