package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:         8080,
		Environment:  DefaultEnvironment,
		StoreDriver:  StoreDriverPostgres,
		DBUser:       "postgres",
		DBPassword:   "secret",
		DBHost:       "localhost",
		DBPort:       "5432",
		DBName:       "habitquest",
		SaveDebounce: DefaultSaveDebounce,
		PollInterval: DefaultPollInterval,
		ResetEvery:   DefaultResetEvery,
		RateLimit:    DefaultRateLimit,
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		clearEnvVars(t)
		warnings, err := validConfig().Validate()
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("schema version mismatch", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("ENV_SCHEMA_VERSION", "0.9")

		_, err := validConfig().Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
	})

	t.Run("postgres needs db settings", func(t *testing.T) {
		clearEnvVars(t)
		cfg := validConfig()
		cfg.DBHost = ""
		cfg.DBName = ""

		_, err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_HOST, DB_NAME")
		assert.NotContains(t, err.Error(), "DB_USER")
	})

	t.Run("every problem is reported", func(t *testing.T) {
		clearEnvVars(t)
		cfg := validConfig()
		cfg.Port = 0
		cfg.ResetEvery = 0
		cfg.SaveDebounce = -time.Second

		_, err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "PORT")
		assert.Contains(t, err.Error(), "RESET_CRON_EVERY")
		assert.Contains(t, err.Error(), "SAVE_DEBOUNCE")
	})

	t.Run("sqlite needs a path", func(t *testing.T) {
		clearEnvVars(t)
		cfg := validConfig()
		cfg.StoreDriver = StoreDriverSQLite

		_, err := cfg.Validate()

		assert.ErrorContains(t, err, "SQLITE_PATH")
	})
}

func TestValidate_Warnings(t *testing.T) {
	clearEnvVars(t)

	cfg := validConfig()
	cfg.DBPassword = ExamplePassword
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, warnings, 1)

	cfg = validConfig()
	cfg.StoreDriver = StoreDriverMemory
	cfg.Environment = "prod"
	warnings, err = cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, warnings, 2, "memory store and open API")
}
