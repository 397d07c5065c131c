package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/tvtrack/internal/library"
	"github.com/vmunix/tvtrack/internal/metadata"
	"github.com/vmunix/tvtrack/internal/tmdb"
	"github.com/vmunix/tvtrack/pkg/titlematch"
)

type menuHarness struct {
	menu   *menu
	out    *bytes.Buffer
	store  *library.Store
	finder *fakeFinder
	checks int
}

func newMenu(t *testing.T, input string) *menuHarness {
	t.Helper()
	h := &menuHarness{
		out:    &bytes.Buffer{},
		store:  newTestStore(t),
		finder: &fakeFinder{},
	}
	h.menu = &menu{
		prompter: newPrompter(strings.NewReader(input), h.out),
		store:    h.store,
		movies:   h.finder,
		check: func(context.Context) error {
			h.checks++
			return nil
		},
	}
	return h
}

func (h *menuHarness) run(t *testing.T) string {
	t.Helper()
	require.NoError(t, h.menu.run(context.Background()))
	return h.out.String()
}

func TestMenu_AddShow(t *testing.T) {
	h := newMenu(t, "2\nSeverance\n1\n9\n8\n")
	out := h.run(t)

	assert.Contains(t, out, `"Severance" added.`)
	assert.Contains(t, out, "Goodbye!")

	shows, err := h.store.ListShows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []library.Show{{Name: "Severance", LastSeason: 1, LastEpisode: 9}}, shows)
}

func TestMenu_AddShow_DuplicateIgnoringCase(t *testing.T) {
	h := newMenu(t, "2\nsEVERANCE\n8\n")
	_, err := h.store.AddShow(context.Background(), "Severance", 1, 1)
	require.NoError(t, err)

	out := h.run(t)
	assert.Contains(t, out, "already")

	shows, _ := h.store.ListShows(context.Background())
	assert.Len(t, shows, 1)
}

func TestMenu_AddShow_NonNumericAbortsWithoutChange(t *testing.T) {
	h := newMenu(t, "2\nAndor\nfirst\n8\n")
	out := h.run(t)

	assert.Contains(t, out, "Please enter a valid number.")
	shows, _ := h.store.ListShows(context.Background())
	assert.Empty(t, shows)
}

func TestMenu_RemoveShow_ByListedNumber(t *testing.T) {
	h := newMenu(t, "3\n2\n8\n")
	ctx := context.Background()
	for _, name := range []string{"Andor", "Severance", "Shogun"} {
		_, err := h.store.AddShow(ctx, name, 1, 1)
		require.NoError(t, err)
	}

	out := h.run(t)
	assert.Contains(t, out, "  2) Severance (S01E01)")
	assert.Contains(t, out, `"Severance" removed.`)

	shows, _ := h.store.ListShows(ctx)
	require.Len(t, shows, 2)
	assert.Equal(t, "Andor", shows[0].Name)
	assert.Equal(t, "Shogun", shows[1].Name)
}

func TestMenu_RemoveShow_OutOfRange(t *testing.T) {
	h := newMenu(t, "3\n5\n3\nx\n8\n")
	_, err := h.store.AddShow(context.Background(), "Andor", 1, 1)
	require.NoError(t, err)

	out := h.run(t)
	assert.Contains(t, out, "Invalid selection.")
	assert.Contains(t, out, "Please enter a valid number.")

	shows, _ := h.store.ListShows(context.Background())
	assert.Len(t, shows, 1)
}

func TestMenu_RemoveShow_Empty(t *testing.T) {
	h := newMenu(t, "3\n8\n")
	out := h.run(t)
	assert.Contains(t, out, "No shows tracked.")
}

func TestMenu_UpdateShow(t *testing.T) {
	h := newMenu(t, "4\n1\n2\n3\n8\n")
	_, err := h.store.AddShow(context.Background(), "Severance", 1, 9)
	require.NoError(t, err)

	out := h.run(t)
	assert.Contains(t, out, "currently season 1, episode 9")
	assert.Contains(t, out, `"Severance" updated to S02E03.`)

	show, err := h.store.FindShow(context.Background(), "severance")
	require.NoError(t, err)
	assert.Equal(t, 2, show.LastSeason)
	assert.Equal(t, 3, show.LastEpisode)
}

func TestMenu_UpdateShow_NegativeRejected(t *testing.T) {
	h := newMenu(t, "4\n1\n-1\n3\n8\n")
	_, err := h.store.AddShow(context.Background(), "Severance", 1, 9)
	require.NoError(t, err)

	h.run(t)
	show, _ := h.store.FindShow(context.Background(), "Severance")
	assert.Equal(t, 1, show.LastSeason)
}

func TestMenu_AddMovie(t *testing.T) {
	h := newMenu(t, "5\nDune Part Two\ny\n8\n")
	h.finder.match = &metadata.MovieMatch{
		TMDBID:      693134,
		Title:       "Dune: Part Two",
		ReleaseDate: time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC),
		Confidence:  titlematch.ConfidenceHigh,
	}

	out := h.run(t)
	assert.Contains(t, out, "Found: Dune: Part Two (2024) [tmdb 693134]")
	assert.Contains(t, out, `"Dune: Part Two" added`)
	assert.Equal(t, []string{"Dune Part Two"}, h.finder.queries)

	movies, _ := h.store.ListMovies(context.Background())
	require.Len(t, movies, 1)
	assert.Equal(t, int64(693134), movies[0].TMDBID)
}

func TestMenu_AddMovie_Declined(t *testing.T) {
	h := newMenu(t, "5\nSomething\nn\n8\n")
	h.finder.match = &metadata.MovieMatch{TMDBID: 1, Title: "Something Else"}

	out := h.run(t)
	assert.Contains(t, out, "closest result")
	assert.Contains(t, out, "Not added.")
	movies, _ := h.store.ListMovies(context.Background())
	assert.Empty(t, movies)
}

func TestMenu_AddMovie_AlreadyTracked(t *testing.T) {
	h := newMenu(t, "5\nFuriosa\n8\n")
	_, err := h.store.AddMovie(context.Background(), library.Movie{Title: "Furiosa", TMDBID: 786892})
	require.NoError(t, err)
	h.finder.match = &metadata.MovieMatch{TMDBID: 786892, Title: "Furiosa: A Mad Max Saga", Confidence: titlematch.ConfidenceHigh}

	out := h.run(t)
	assert.Contains(t, out, "already")
	movies, _ := h.store.ListMovies(context.Background())
	assert.Len(t, movies, 1)
}

func TestMenu_AddMovie_NoAPIKey(t *testing.T) {
	h := newMenu(t, "5\nFuriosa\n8\n")
	h.finder.err = tmdb.ErrAPIKeyMissing

	out := h.run(t)
	assert.Contains(t, out, "TMDB_API_KEY")
}

func TestMenu_RemoveMovie(t *testing.T) {
	h := newMenu(t, "6\n1\n8\n")
	ctx := context.Background()
	_, err := h.store.AddMovie(ctx, library.Movie{Title: "Furiosa", TMDBID: 786892})
	require.NoError(t, err)
	_, err = h.store.AddMovie(ctx, library.Movie{Title: "Dune: Part Two", TMDBID: 693134})
	require.NoError(t, err)

	out := h.run(t)
	assert.Contains(t, out, `"Furiosa" removed.`)
	movies, _ := h.store.ListMovies(ctx)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(693134), movies[0].TMDBID)
}

func TestMenu_Check(t *testing.T) {
	h := newMenu(t, "1\n1\n8\n")
	h.run(t)
	assert.Equal(t, 2, h.checks)
}

func TestMenu_CheckErrorKeepsRunning(t *testing.T) {
	h := newMenu(t, "1\n7\n8\n")
	h.menu.check = func(context.Context) error { return errors.New("disk gone") }

	out := h.run(t)
	assert.Contains(t, out, "Error: disk gone")
	assert.Contains(t, out, "No shows tracked.")
	assert.Contains(t, out, "Goodbye!")
}

func TestMenu_InvalidOption(t *testing.T) {
	h := newMenu(t, "9\nhello\n8\n")
	out := h.run(t)
	assert.Equal(t, 2, strings.Count(out, "Invalid option."))
}

func TestMenu_EOFExits(t *testing.T) {
	h := newMenu(t, "2\nSeverance\n")
	out := h.run(t)
	assert.NotContains(t, out, "Goodbye!")
	shows, _ := h.store.ListShows(context.Background())
	assert.Empty(t, shows)
}
