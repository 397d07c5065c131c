package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/tvtrack/internal/config"
	"github.com/vmunix/tvtrack/internal/library"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	log, closer := newLogger(config.LogConfig{Level: "debug"}, &buf, slog.LevelWarn)
	assert.Nil(t, closer)

	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_RotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tvtrack.log")
	var buf bytes.Buffer
	log, closer := newLogger(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, &buf, slog.LevelDebug)
	require.NotNil(t, closer)

	log.Info("check finished", "shows", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "check finished")
	assert.Contains(t, buf.String(), "shows=3")
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()

	b, err := openBackend(config.StorageConfig{Backend: config.BackendFile, Dir: dir})
	require.NoError(t, err)
	assert.IsType(t, &library.FileBackend{}, b)
	require.NoError(t, b.Close())

	b, err = openBackend(config.StorageConfig{Backend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "t.db")})
	require.NoError(t, err)
	assert.IsType(t, &library.SQLiteBackend{}, b)
	require.NoError(t, b.Close())

	_, err = openBackend(config.StorageConfig{Backend: "redis"})
	assert.ErrorContains(t, err, `unknown storage backend "redis"`)
}

func TestApplyFlagOverrides(t *testing.T) {
	t.Cleanup(func() { dataDir, logLevel = "", "" })
	dataDir, logLevel = "/srv/tvtrack", "debug"

	cfg := &config.Config{}
	applyFlagOverrides(cfg)
	assert.Equal(t, "/srv/tvtrack", cfg.Storage.Dir)
	assert.Equal(t, filepath.Join("/srv/tvtrack", "tvtrack.db"), cfg.Storage.SQLitePath)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	t.Cleanup(func() { configPath = "" })
	t.Setenv("TMDB_API_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"sqlite\"\ndir = \"/data\"\n"), 0644))
	configPath = path

	cfg, got, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Cleanup(func() { configPath = "" })

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\nbackend = \"redis\"\n"), 0644))
	configPath = path

	_, _, err := loadConfig()
	var cfgErr *config.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.NotEmpty(t, cfgErr.Errors)
}
