package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "/schoolImages", cfg.Storage.PublicPrefix)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSize)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("STORAGE_PUBLIC_PREFIX", "img/")
	t.Setenv("CLIENT_BASE_URL", "http://api.example.com/")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "/img", cfg.Storage.PublicPrefix)
	assert.Equal(t, "http://api.example.com", cfg.Client.BaseURL)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER: postgres\nDB_DSN: postgres://localhost/schools\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/schools", cfg.DB.DSN)
}

func TestLoadRejectsUnknownDrivers(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "ftp")

	_, err := Load("")
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestEnsureDirsCreatesLocalDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "schoolImages")
	cfg := &Config{Storage: StorageConfig{Driver: "local", LocalDir: dir}}

	require.NoError(t, EnsureDirs(cfg))
	assert.DirExists(t, dir)
}

func TestLoadRejectsPrefixesThatShadowRoutes(t *testing.T) {
	for _, prefix := range []string{"/", "/api", "api/images", "/health"} {
		t.Run(prefix, func(t *testing.T) {
			t.Setenv("STORAGE_PUBLIC_PREFIX", prefix)

			_, err := Load("")
			assert.ErrorContains(t, err, "prefix")
		})
	}
}
