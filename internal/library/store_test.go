package library

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EmptyOnFirstRun(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(b)

			shows, err := store.ListShows(ctx)
			require.NoError(t, err)
			assert.Empty(t, shows)

			movies, err := store.ListMovies(ctx)
			require.NoError(t, err)
			assert.Empty(t, movies)
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	shows := []Show{
		{Name: "Severance", LastSeason: 2, LastEpisode: 10},
		{Name: "Andor", LastSeason: 1, LastEpisode: 12},
		{Name: "The Bear", LastSeason: 0, LastEpisode: 0},
	}
	movies := []Movie{
		{Title: "Dune: Part Two", TMDBID: 693134, AddedDate: "2024-01-05"},
		{Title: "Furiosa", TMDBID: 786892, AddedDate: "2024-02-01"},
	}

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.SaveShows(ctx, shows))
			require.NoError(t, b.SaveMovies(ctx, movies))

			gotShows, err := b.LoadShows(ctx)
			require.NoError(t, err)
			assert.Equal(t, shows, gotShows)

			gotMovies, err := b.LoadMovies(ctx)
			require.NoError(t, err)
			assert.Equal(t, movies, gotMovies)

			// A second save fully replaces the first.
			require.NoError(t, b.SaveShows(ctx, shows[1:2]))
			gotShows, err = b.LoadShows(ctx)
			require.NoError(t, err)
			assert.Equal(t, shows[1:2], gotShows)
		})
	}
}

func TestStore_AddShow(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(b)

			show, err := store.AddShow(ctx, "  Breaking Bad ", 5, 14)
			require.NoError(t, err)
			assert.Equal(t, Show{Name: "Breaking Bad", LastSeason: 5, LastEpisode: 14}, show)

			_, err = store.AddShow(ctx, "breaking BAD", 0, 0)
			assert.ErrorIs(t, err, ErrDuplicate)

			shows, err := store.ListShows(ctx)
			require.NoError(t, err)
			assert.Len(t, shows, 1, "rejected add must not mutate state")

			has, err := store.HasShow(ctx, "BREAKING bad")
			require.NoError(t, err)
			assert.True(t, has)
		})
	}
}

func TestStore_AddShow_Invalid(t *testing.T) {
	ctx := context.Background()
	store := NewStore(backends(t)["file"])

	_, err := store.AddShow(ctx, "   ", 1, 1)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = store.AddShow(ctx, "Dark", -1, 0)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = store.AddShow(ctx, "Dark", 0, -3)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestStore_UpdateShow(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(b)
			_, err := store.AddShow(ctx, "Slow Horses", 3, 2)
			require.NoError(t, err)
			_, err = store.AddShow(ctx, "Shogun", 1, 1)
			require.NoError(t, err)

			show, err := store.UpdateShow(ctx, "slow horses", 4, 0)
			require.NoError(t, err)
			assert.Equal(t, Show{Name: "Slow Horses", LastSeason: 4, LastEpisode: 0}, show)

			shows, err := store.ListShows(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Slow Horses", shows[0].Name, "order preserved")
			assert.Equal(t, 4, shows[0].LastSeason)

			_, err = store.UpdateShow(ctx, "Missing", 1, 1)
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = store.UpdateShow(ctx, "Shogun", -1, 1)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestStore_RemoveShow(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(b)
			for _, n := range []string{"Fargo", "Dark", "Succession"} {
				_, err := store.AddShow(ctx, n, 1, 1)
				require.NoError(t, err)
			}

			removed, err := store.RemoveShow(ctx, "DARK")
			require.NoError(t, err)
			assert.Equal(t, "Dark", removed.Name)

			shows, err := store.ListShows(ctx)
			require.NoError(t, err)
			require.Len(t, shows, 2)
			assert.Equal(t, "Fargo", shows[0].Name)
			assert.Equal(t, "Succession", shows[1].Name)

			_, err = store.RemoveShow(ctx, "Dark")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SuggestShow(t *testing.T) {
	ctx := context.Background()
	store := NewStore(backends(t)["file"])

	assert.Empty(t, store.SuggestShow(ctx, "anything"))

	_, err := store.AddShow(ctx, "The Last of Us", 1, 9)
	require.NoError(t, err)
	_, err = store.AddShow(ctx, "Fallout", 1, 8)
	require.NoError(t, err)

	assert.Equal(t, "The Last of Us", store.SuggestShow(ctx, "last of us"))
}

func TestStore_Movies(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(b)
			store.SetClock(fixedClock("2024-06-15"))

			m, err := store.AddMovie(ctx, Movie{Title: "Oppenheimer", TMDBID: 872585})
			require.NoError(t, err)
			assert.Equal(t, "2024-06-15", m.AddedDate)
			assert.Equal(t, 2024, m.Added().Year())

			_, err = store.AddMovie(ctx, Movie{Title: "Oppenheimer (2023)", TMDBID: 872585})
			assert.ErrorIs(t, err, ErrDuplicate)

			_, err = store.AddMovie(ctx, Movie{Title: "Barbie", TMDBID: 346698, AddedDate: "2024-01-01"})
			require.NoError(t, err)

			has, err := store.HasMovie(ctx, 346698)
			require.NoError(t, err)
			assert.True(t, has)

			removed, err := store.RemoveMovie(ctx, 872585)
			require.NoError(t, err)
			assert.Equal(t, "Oppenheimer", removed.Title)

			movies, err := store.ListMovies(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Movie{{Title: "Barbie", TMDBID: 346698, AddedDate: "2024-01-01"}}, movies)

			_, err = store.RemoveMovie(ctx, 872585)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_AddMovie_Invalid(t *testing.T) {
	store := NewStore(backends(t)["file"])
	_, err := store.AddMovie(context.Background(), Movie{Title: "No ID"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestStore_DuplicateIgnoresUnicodeCase(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewStore(b)
			_, err := store.AddShow(ctx, "Élite", 1, 1)
			require.NoError(t, err)

			_, err = store.AddShow(ctx, "éLITE", 2, 2)
			assert.ErrorIs(t, err, ErrDuplicate)
		})
	}
}

// Each writer opens its own handle, as separate processes would. Every add
// must survive, which only holds if the load and save of one mutation are
// not interleaved with another's.
func TestStore_ConcurrentWritersKeepEveryAdd(t *testing.T) {
	const writers = 8

	tests := map[string]func(t *testing.T, dir string) Backend{
		"file": func(t *testing.T, dir string) Backend {
			b, err := NewFileBackend(dir)
			require.NoError(t, err)
			return b
		},
		"sqlite": func(t *testing.T, dir string) Backend {
			b, err := OpenSQLite(filepath.Join(dir, "tvtrack.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = b.Close() })
			return b
		},
	}

	for name, open := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()

			stores := make([]*Store, writers)
			for i := range stores {
				stores[i] = NewStore(open(t, dir))
			}

			var wg sync.WaitGroup
			errs := make([]error, writers)
			for i, store := range stores {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, errs[i] = store.AddShow(ctx, fmt.Sprintf("Show %d", i), 1, 1)
				}()
			}
			wg.Wait()

			for _, err := range errs {
				require.NoError(t, err)
			}
			shows, err := stores[0].ListShows(ctx)
			require.NoError(t, err)
			assert.Len(t, shows, writers)
		})
	}
}
