package config

import "time"

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMemory   = "memory"
)

// Catalog file names, relative to CONFIG_DIR
const (
	CatalogFilePresets   = "presets.yaml"
	CatalogFileShop      = "shop.yaml"
	CatalogFileDailyGift = "daily_gift.yaml"
	CatalogFileBoxes     = "boxes.yaml"
	CatalogFileAvatars   = "avatars.yaml"
	CatalogFileSeasons   = "seasons.yaml"
	CatalogFileMinigames = "minigames.yaml"
)

// Defaults
const (
	DefaultPort          = 8080
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultEnvironment   = "dev"
	DefaultServiceName   = "habitquest"
	DefaultVersion       = "dev"
	DefaultStoreDriver   = StoreDriverPostgres
	DefaultSQLitePath    = "data/habitquest.db"
	DefaultConfigDir     = "configs"
	DefaultTimezone      = "Local"
	DefaultSaveDebounce  = 500 * time.Millisecond
	DefaultPollInterval  = 2 * time.Second
	DefaultCacheSize     = 256
	DefaultCacheTTL      = 10 * time.Minute
	DefaultResetEvery    = time.Hour
	DefaultDBMaxConns    = 10
	DefaultLevelSubtract = true
	DefaultRateLimit     = 1000
)
