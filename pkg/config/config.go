// Package config provides configuration management for the LazySpender
// tools. It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	// APIURL is the base URL of the LazySpender API.
	APIURL string
	// Owner is the owner name used for owner-scoped queries.
	Owner string
	// Accounts are the account names included in dashboard queries.
	Accounts []string
	// Currency is the display currency.
	Currency string
	// PageSize is the page size used for transaction listings.
	PageSize int
	// DBPath is the SQLite ledger file used by export/stats.
	DBPath string
	Debug  bool
}

// Load loads configuration from environment variables. It automatically
// loads a .env file from the current directory if available; a custom
// path can be given instead.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Missing .env in the current directory is fine.
		_ = godotenv.Load()
	}

	pageSize, err := parseIntEnv("LAZYSPENDER_PAGE_SIZE", 20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:   getEnvOrDefault("LAZYSPENDER_API_URL", "http://localhost:8080"),
		Owner:    os.Getenv("LAZYSPENDER_OWNER"),
		Currency: getEnvOrDefault("LAZYSPENDER_CURRENCY", "PHP"),
		PageSize: pageSize,
		DBPath:   getEnvOrDefault("LAZYSPENDER_DB_PATH", "./data/ledger.db"),
		Debug:    os.Getenv("DEBUG") == "true",
	}

	if accounts := os.Getenv("LAZYSPENDER_ACCOUNTS"); accounts != "" {
		for _, account := range strings.Split(accounts, ",") {
			if account = strings.TrimSpace(account); account != "" {
				cfg.Accounts = append(cfg.Accounts, account)
			}
		}
	}

	return cfg, nil
}

// Validate checks that the named fields are set. Recognized field names:
// apiUrl, owner, accounts, dbPath.
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, field := range required {
		set := true
		switch field {
		case "apiUrl":
			set = c.APIURL != ""
		case "owner":
			set = c.Owner != ""
		case "accounts":
			set = len(c.Accounts) > 0
		case "dbPath":
			set = c.DBPath != ""
		}
		if !set {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable, returning
// defaultValue when the variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}
