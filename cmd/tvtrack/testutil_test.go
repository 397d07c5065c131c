package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/tvtrack/internal/library"
	"github.com/vmunix/tvtrack/internal/metadata"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *library.Store {
	t.Helper()
	backend, err := library.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	store := library.NewStore(backend)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// fakeFinder returns a fixed match, or err when set.
type fakeFinder struct {
	match   *metadata.MovieMatch
	err     error
	queries []string
}

func (f *fakeFinder) FindMovie(_ context.Context, title string) (*metadata.MovieMatch, error) {
	f.queries = append(f.queries, title)
	if f.err != nil {
		return nil, f.err
	}
	return f.match, nil
}

// runCLI executes the root command with a throwaway config and data dir.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("[storage]\nbackend = \"file\"\n"), 0644))
	return runCLIWith(t, cfgFile, filepath.Join(dir, "data"), stdin, args...)
}

func runCLIWith(t *testing.T, cfgFile, data, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"EMAIL_SENDER", "EMAIL_PASSWORD", "EMAIL_RECEIVER", "TMDB_API_KEY", "TVTRACK_DATA_DIR"} {
		t.Setenv(key, "")
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", cfgFile, "--data-dir", data, "--log-level", "error"}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configPath, dataDir, logLevel, jsonOutput, autoMode = "", "", "", false, false
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
