package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"PORT", "EMBEDDING_DIMENSIONS", "EMEDDING_DIMENSIONS",
	"QUERY_LIMIT", "QUERY_TIMEOUT", "DATA_DIR", "INGEST_BATCH_SIZE", "INGEST_WORKERS",
	"LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv はテスト中だけ設定キーを未設定にします
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 384, cfg.Embedding.Dimensions)
	assert.Equal(t, 5, cfg.Query.Limit)
	assert.Equal(t, 10*time.Second, cfg.Query.Timeout)
	assert.Equal(t, "data", cfg.Ingest.DataDir)
	assert.Equal(t, 25, cfg.Ingest.BatchSize)
	assert.GreaterOrEqual(t, cfg.Ingest.Workers, 1)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=8080\nEMBEDDING_DIMENSIONS=16\nQUERY_TIMEOUT=2s\nDATA_DIR=/srv/data\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 16, cfg.Embedding.Dimensions)
	assert.Equal(t, 2*time.Second, cfg.Query.Timeout)
	assert.Equal(t, "/srv/data", cfg.Ingest.DataDir)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestLoad_LegacyDimensionsKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMEDDING_DIMENSIONS", "64")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Embedding.Dimensions)

	t.Setenv("EMBEDDING_DIMENSIONS", "32")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Embedding.Dimensions)
}

func TestLoad_RejectsNonPositiveDimensions(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMBEDDING_DIMENSIONS", "-1")

	_, err := Load("")
	require.Error(t, err)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("QUERY_TIMEOUT", "1500")
	assert.Equal(t, 1500*time.Millisecond, getEnvAsDuration("QUERY_TIMEOUT", time.Second))

	t.Setenv("QUERY_TIMEOUT", "bogus")
	assert.Equal(t, time.Second, getEnvAsDuration("QUERY_TIMEOUT", time.Second))
}
