package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "LOG_SOURCE", "LOG_DIR", "ENVIRONMENT", "SERVICE_NAME", "VERSION",
	"STORE_DRIVER", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME", "DB_MAX_CONNS",
	"SQLITE_PATH", "SAVE_DEBOUNCE", "POLL_INTERVAL", "CACHE_SIZE", "CACHE_TTL",
	"CONFIG_DIR", "TIMEZONE", "LEVEL_XP_SUBTRACT", "RESET_CRON_EVERY", "ENV_SCHEMA_VERSION",
	"API_KEY", "TRUSTED_PROXIES", "RATE_LIMIT",
}

// clearEnvVars blanks every variable Load reads; t.Setenv restores them afterwards
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("uses defaults for unset values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "8080")
		t.Setenv("STORE_DRIVER", StoreDriverMemory)
		t.Setenv("TIMEZONE", "UTC")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, DefaultSaveDebounce, cfg.SaveDebounce)
		assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
		assert.Equal(t, DefaultResetEvery, cfg.ResetEvery)
		assert.True(t, cfg.LevelXPSubtract)
	})

	t.Run("reads custom values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("STORE_DRIVER", StoreDriverSQLite)
		t.Setenv("SQLITE_PATH", "/tmp/hq.db")
		t.Setenv("SAVE_DEBOUNCE", "250ms")
		t.Setenv("CACHE_SIZE", "32")
		t.Setenv("TIMEZONE", "Europe/Paris")
		t.Setenv("LEVEL_XP_SUBTRACT", "false")
		t.Setenv("RESET_CRON_EVERY", "15m")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
		assert.Equal(t, "/tmp/hq.db", cfg.SQLitePath)
		assert.Equal(t, 250*time.Millisecond, cfg.SaveDebounce)
		assert.Equal(t, 32, cfg.CacheSize)
		assert.False(t, cfg.LevelXPSubtract)
		assert.Equal(t, 15*time.Minute, cfg.ResetEvery)

		loc, err := cfg.Location()
		require.NoError(t, err)
		assert.Equal(t, "Europe/Paris", loc.String())
	})

	t.Run("rejects invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "not-a-number")
		t.Setenv("STORE_DRIVER", StoreDriverMemory)

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "PORT")
	})

	t.Run("rejects unknown store driver", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "8080")
		t.Setenv("STORE_DRIVER", "mongo")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORE_DRIVER")
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "8080")
		t.Setenv("STORE_DRIVER", StoreDriverMemory)
		t.Setenv("TIMEZONE", "Mars/Olympus")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "TIMEZONE")
	})
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT_VAR", "42.5")
	assert.Equal(t, 10, getEnvAsInt("TEST_INT_VAR", 10))
	t.Setenv("TEST_INT_VAR", "-3")
	assert.Equal(t, -3, getEnvAsInt("TEST_INT_VAR", 10))

	t.Setenv("TEST_DURATION_VAR", "nope")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION_VAR", time.Second))
	t.Setenv("TEST_DURATION_VAR", "-5s")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION_VAR", time.Second))
	t.Setenv("TEST_DURATION_VAR", "3s")
	assert.Equal(t, 3*time.Second, getEnvAsDuration("TEST_DURATION_VAR", time.Second))

	t.Setenv("TEST_BOOL_VAR", "yes")
	assert.True(t, getEnvAsBool("TEST_BOOL_VAR", true))
	t.Setenv("TEST_BOOL_VAR", "0")
	assert.False(t, getEnvAsBool("TEST_BOOL_VAR", true))
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,10.0.0.2 ")
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, getEnvAsList("TRUSTED_PROXIES"))

	t.Setenv("TRUSTED_PROXIES", "")
	assert.Empty(t, getEnvAsList("TRUSTED_PROXIES"))
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d"}

	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.GetDBConnString())
}
