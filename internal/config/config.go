package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/srs-sudeep/vyuwer/internal/repository"
)

type Config struct {
	ProductionDB  string
	TestDB        string
	BusyTimeoutMs int    // How long a connection waits on a locked file before reporting busy
	JournalMode   string // SQLite journal mode set on every connection
	LogDirectory  string
}

// Load reads configuration from the environment, after merging in a .env
// file from the working directory if one exists. Variables already set in
// the environment win over the file.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the environment only.
func FromEnv() *Config {
	return &Config{
		ProductionDB:  getEnv("PROD_DB", "image_features.db"),
		TestDB:        getEnv("TEST_DB", "test_image_features.db"),
		BusyTimeoutMs: getEnvAsInt("DB_BUSY_TIMEOUT_MS", 5000),
		JournalMode:   getEnv("DB_JOURNAL_MODE", "WAL"),
		LogDirectory:  getEnv("LOG_DIR", filepath.Join(".", "logs")),
	}
}

// ProductionTarget returns the production storage target.
func (c *Config) ProductionTarget() repository.Target {
	return repository.Target(c.ProductionDB)
}

// TestTarget returns the test storage target.
func (c *Config) TestTarget() repository.Target {
	return repository.Target(c.TestDB)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
