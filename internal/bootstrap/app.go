package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/HabitQuest_Go/internal/catalog"
	"github.com/osse101/HabitQuest_Go/internal/clock"
	"github.com/osse101/HabitQuest_Go/internal/config"
	"github.com/osse101/HabitQuest_Go/internal/directory"
	"github.com/osse101/HabitQuest_Go/internal/event"
	"github.com/osse101/HabitQuest_Go/internal/game"
	"github.com/osse101/HabitQuest_Go/internal/persistence"
	"github.com/osse101/HabitQuest_Go/internal/progression"
	"github.com/osse101/HabitQuest_Go/internal/reward"
	"github.com/osse101/HabitQuest_Go/internal/server"
	"github.com/osse101/HabitQuest_Go/internal/sse"
	"github.com/osse101/HabitQuest_Go/internal/validation"
	"github.com/osse101/HabitQuest_Go/internal/worker"
)

// App holds every long-lived component of the server
type App struct {
	Config      *config.Config
	Store       *Store
	Bus         *event.MemoryBus
	Catalog     *catalog.Catalog
	Clock       clock.Clock
	Adapter     *persistence.Adapter
	Directory   directory.Service
	Game        game.Service
	Hub         *sse.Hub
	Server      *server.Server
	ResetWorker *worker.PeriodResetWorker
}

// LoadCatalog reads the YAML catalogs from CONFIG_DIR
func LoadCatalog(cfg *config.Config, schemas validation.SchemaValidator) (*catalog.Catalog, error) {
	cat, err := catalog.NewLoader(cfg.ConfigDir, schemas).Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadConfig, err)
	}
	slog.Info(LogMsgCatalogLoaded, "dir", cfg.ConfigDir, "age_brackets", len(cat.Brackets), "shop_items", len(cat.Shop))
	return cat, nil
}

// ValidateConfig rejects unusable settings and logs the questionable ones
func ValidateConfig(cfg *config.Config) error {
	warnings, err := cfg.Validate()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}
	return nil
}

// Build wires the application. Nothing is started; see Start.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidTimezone, err)
	}

	schemas := validation.NewSchemaValidator()
	cat, err := LoadCatalog(cfg, schemas)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		Store:   store,
		Catalog: cat,
		Clock:   clock.NewRealClock(loc),
		Bus:     InitializeEventSystem(),
		Hub:     sse.NewHub(),
	}

	if err := RegisterEventHandlers(app.Bus, app.Hub); err != nil {
		_ = store.Close()
		return nil, err
	}

	app.Adapter = persistence.NewAdapter(store.Docs, persistence.AdapterOptions{
		Debounce:     cfg.SaveDebounce,
		CacheSize:    cfg.CacheSize,
		CacheTTL:     cfg.CacheTTL,
		PollInterval: cfg.PollInterval,
		Schemas:      schemas,
	})
	app.Directory = directory.NewService(store.Docs, app.Adapter, cat, app.Bus)

	opts := progression.DefaultOptions()
	opts.LevelPolicy.SubtractOnLevelUp = cfg.LevelXPSubtract
	engine := progression.NewEngine(opts, reward.NewResolver(reward.DefaultSource()))
	app.Game = game.NewService(engine, app.Adapter, app.Directory, cat, app.Clock, app.Bus)

	srvOpts := server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit:      cfg.RateLimit,
		Directory:      app.Directory,
		Game:           app.Game,
		Catalog:        cat,
		Clock:          app.Clock,
		Hub:            app.Hub,
	}
	if store.Pinger != nil {
		srvOpts.Store = store.Pinger
	}
	app.Server = server.NewServer(srvOpts)
	app.ResetWorker = worker.NewPeriodResetWorker(app.Game, cfg.ResetEvery)

	return app, nil
}

// Start launches the background loops. The HTTP server is started by the caller.
func (a *App) Start() error {
	a.Hub.Start()
	return a.ResetWorker.Start()
}

// ShutdownComponents lists what GracefulShutdown stops
func (a *App) ShutdownComponents() ShutdownComponents {
	return ShutdownComponents{
		Server:      a.Server,
		ResetWorker: a.ResetWorker,
		Adapter:     a.Adapter,
		Hub:         a.Hub,
		Store:       a.Store,
	}
}
