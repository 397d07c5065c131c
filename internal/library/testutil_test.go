package library

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// backends returns a fresh instance of every Backend implementation, keyed by
// name, so rules can be checked against each.
func backends(t *testing.T) map[string]Backend {
	t.Helper()

	fileBackend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	sqliteBackend, err := OpenSQLite(filepath.Join(t.TempDir(), "tvtrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqliteBackend.Close() })

	return map[string]Backend{
		"file":   fileBackend,
		"sqlite": sqliteBackend,
	}
}

func fixedClock(day string) func() time.Time {
	return func() time.Time {
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			panic(err)
		}
		return t.Add(15 * time.Hour)
	}
}
