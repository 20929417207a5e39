package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "memory", cfg.StorageType)
	require.Equal(t, 80, cfg.RoundDuration)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: 9090\nstorage_type: redis\nredis_url: redis://cache:6379\nround_duration: 45\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "redis", cfg.StorageType)
	require.Equal(t, "redis://cache:6379", cfg.RedisURL)
	require.Equal(t, 45, cfg.RoundDuration)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DRAWDASH_PORT", "7070")
	t.Setenv("DRAWDASH_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 7070, cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DRAWDASH_STORAGE_TYPE", "postgres")
	_, err := Load("")
	require.Error(t, err)

	t.Setenv("DRAWDASH_STORAGE_TYPE", "memory")
	t.Setenv("DRAWDASH_ROUND_DURATION", "0")
	_, err = Load("")
	require.Error(t, err)
}
