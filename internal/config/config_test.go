package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srs-sudeep/vyuwer/internal/repository"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"PROD_DB", "TEST_DB", "DB_BUSY_TIMEOUT_MS", "DB_JOURNAL_MODE", "LOG_DIR"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "image_features.db", cfg.ProductionDB)
	assert.Equal(t, "test_image_features.db", cfg.TestDB)
	assert.Equal(t, 5000, cfg.BusyTimeoutMs)
	assert.Equal(t, "WAL", cfg.JournalMode)
	assert.Equal(t, filepath.Join(".", "logs"), cfg.LogDirectory)
	assert.Equal(t, repository.Target("image_features.db"), cfg.ProductionTarget())
	assert.Equal(t, repository.Target("test_image_features.db"), cfg.TestTarget())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PROD_DB", "/data/prod.db")
	t.Setenv("TEST_DB", "/data/test.db")
	t.Setenv("DB_BUSY_TIMEOUT_MS", "250")
	t.Setenv("DB_JOURNAL_MODE", "DELETE")
	t.Setenv("LOG_DIR", "/var/log/features")

	cfg := FromEnv()

	assert.Equal(t, "/data/prod.db", cfg.ProductionDB)
	assert.Equal(t, "/data/test.db", cfg.TestDB)
	assert.Equal(t, 250, cfg.BusyTimeoutMs)
	assert.Equal(t, "DELETE", cfg.JournalMode)
	assert.Equal(t, "/var/log/features", cfg.LogDirectory)
}

func TestFromEnv_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("DB_BUSY_TIMEOUT_MS", "soon")

	assert.Equal(t, 5000, FromEnv().BusyTimeoutMs)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEST_DB=from_dotenv.db\nPROD_DB=ignored.db\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	// godotenv never overrides variables that are already set.
	t.Setenv("PROD_DB", "explicit.db")
	t.Setenv("TEST_DB", "")
	os.Unsetenv("TEST_DB")

	cfg := Load()

	assert.Equal(t, "from_dotenv.db", cfg.TestDB)
	assert.Equal(t, "explicit.db", cfg.ProductionDB)
}
