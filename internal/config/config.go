package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogSource   bool
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	APIKey         string
	TrustedProxies []string
	RateLimit      int

	StoreDriver string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	DBMaxConns  int
	SQLitePath  string

	SaveDebounce time.Duration
	PollInterval time.Duration
	CacheSize    int
	CacheTTL     time.Duration

	ConfigDir       string
	Timezone        string
	LevelXPSubtract bool
	ResetEvery      time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// a missing .env is fine, real env vars may be set
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogSource:   getEnvAsBool("LOG_SOURCE", false),
		LogDir:      getEnv("LOG_DIR", ""),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		RateLimit:      getEnvAsInt("RATE_LIMIT", DefaultRateLimit),

		StoreDriver: getEnv("STORE_DRIVER", DefaultStoreDriver),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "habitquest"),
		DBMaxConns:  getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		SQLitePath:  getEnv("SQLITE_PATH", DefaultSQLitePath),

		SaveDebounce: getEnvAsDuration("SAVE_DEBOUNCE", DefaultSaveDebounce),
		PollInterval: getEnvAsDuration("POLL_INTERVAL", DefaultPollInterval),
		CacheSize:    getEnvAsInt("CACHE_SIZE", DefaultCacheSize),
		CacheTTL:     getEnvAsDuration("CACHE_TTL", DefaultCacheTTL),

		ConfigDir:       getEnv("CONFIG_DIR", DefaultConfigDir),
		Timezone:        getEnv("TIMEZONE", DefaultTimezone),
		LevelXPSubtract: getEnvAsBool("LEVEL_XP_SUBTRACT", DefaultLevelSubtract),
		ResetEvery:      getEnvAsDuration("RESET_CRON_EVERY", DefaultResetEvery),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverSQLite, StoreDriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: expected %s, %s or %s",
			cfg.StoreDriver, StoreDriverPostgres, StoreDriverSQLite, StoreDriverMemory)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE value: %w", err)
	}

	return cfg, nil
}

// Location resolves the timezone used for calendar days
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, ""), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
