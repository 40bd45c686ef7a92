package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build reads. An older
// file is rejected so renamed variables are not silently ignored.
const ExpectedEnvSchemaVersion = "1.0"

// ExamplePassword is the DB_PASSWORD shipped in .env.example
const ExamplePassword = "change_this_secure_password"

// Validate checks the loaded settings. It returns warnings for settings
// that work but are probably unintended, and an error listing every
// setting that cannot work.
func (c *Config) Validate() ([]string, error) {
	var problems []string

	if v := os.Getenv("ENV_SCHEMA_VERSION"); v != "" && v != ExpectedEnvSchemaVersion {
		problems = append(problems, fmt.Sprintf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s", ExpectedEnvSchemaVersion, v))
	}
	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.SaveDebounce <= 0 {
		problems = append(problems, "SAVE_DEBOUNCE must be positive")
	}
	if c.PollInterval <= 0 {
		problems = append(problems, "POLL_INTERVAL must be positive")
	}
	if c.ResetEvery <= 0 {
		problems = append(problems, "RESET_CRON_EVERY must be positive")
	}
	if c.RateLimit <= 0 {
		problems = append(problems, "RATE_LIMIT must be positive")
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
		var missing []string
		for name, v := range map[string]string{"DB_USER": c.DBUser, "DB_HOST": c.DBHost, "DB_PORT": c.DBPort, "DB_NAME": c.DBName} {
			if v == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			problems = append(problems, "missing postgres settings: "+strings.Join(missing, ", "))
		}
	case StoreDriverSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH is required for the sqlite store")
		}
	}

	if len(problems) > 0 {
		return nil, errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}

	var warnings []string
	if c.StoreDriver == StoreDriverPostgres && c.DBPassword == ExamplePassword {
		warnings = append(warnings, "DB_PASSWORD is the example value, please use a secure password")
	}
	if c.StoreDriver == StoreDriverMemory {
		warnings = append(warnings, "STORE_DRIVER=memory keeps progress in RAM only, everything is lost on restart")
	}
	if c.APIKey == "" && c.Environment != DefaultEnvironment {
		warnings = append(warnings, "API_KEY is empty, the API is open to anyone on the network")
	}
	return warnings, nil
}
