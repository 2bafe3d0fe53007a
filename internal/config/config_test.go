package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 30, cfg.Limits.MaxStores)
	assert.Equal(t, 30, cfg.Limits.MaxSellers)
	assert.Equal(t, 30, cfg.Limits.MaxStockPerProduct)
	assert.Equal(t, 30, cfg.Limits.MaxProductsPerSeller)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
storage:
  backend: redis
  redis_url: redis://localhost:6379/0
limits:
  max_stores: 10
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, 10, cfg.Limits.MaxStores)
	// Untouched limits keep their defaults.
	assert.Equal(t, 30, cfg.Limits.MaxSellers)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Addr, cfg.Addr)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PANTRY_ADDR", ":7777")
	t.Setenv("PANTRY_STORAGE_BACKEND", "mongo")
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Addr)
	assert.Equal(t, "mongo", cfg.Storage.Backend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.MongoURI)
}

func TestMongoURLPrecedence(t *testing.T) {
	t.Setenv("MONGO_PUBLIC_URL", "mongodb://public:27017")
	t.Setenv("MONGO_URL", "mongodb://internal:27017")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://public:27017", cfg.Storage.MongoURI)
}

func TestInvalidBackend(t *testing.T) {
	t.Setenv("PANTRY_STORAGE_BACKEND", "cassandra")
	_, err := Load("")
	assert.Error(t, err)
}
