// Package metadata looks up shows and movies in the remote metadata APIs and
// maps the answers onto tracker types.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/tvtrack/internal/tmdb"
	"github.com/vmunix/tvtrack/internal/tracker"
	"github.com/vmunix/tvtrack/pkg/titlematch"
	"github.com/vmunix/tvtrack/pkg/tvmaze"
)

// ErrNoMatch is returned when a movie search has no results.
var ErrNoMatch = errors.New("no matching movie")

// ShowClient is the subset of the TVMaze client the gateway uses.
type ShowClient interface {
	SingleSearch(ctx context.Context, name string) (*tvmaze.Show, error)
	Episodes(ctx context.Context, showID int) ([]tvmaze.Episode, error)
}

// MovieClient is the subset of the TMDB client the gateway uses.
type MovieClient interface {
	SearchMovies(ctx context.Context, query string) ([]tmdb.SearchResult, error)
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
}

var (
	_ ShowClient  = (*tvmaze.Client)(nil)
	_ MovieClient = (*tmdb.Client)(nil)
)

// Gateway wraps the show and movie APIs.
type Gateway struct {
	shows  ShowClient
	movies MovieClient
	log    *slog.Logger
}

// NewGateway creates a gateway over the two clients.
func NewGateway(shows ShowClient, movies MovieClient, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{shows: shows, movies: movies, log: log}
}

// ShowEpisodes resolves a show by name and returns its full episode list.
func (g *Gateway) ShowEpisodes(ctx context.Context, name string) ([]tracker.Episode, error) {
	show, err := g.shows.SingleSearch(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search show %q: %w", name, err)
	}

	raw, err := g.shows.Episodes(ctx, show.ID)
	if err != nil {
		return nil, fmt.Errorf("list episodes for %q (tvmaze %d): %w", name, show.ID, err)
	}

	episodes := make([]tracker.Episode, 0, len(raw))
	for _, ep := range raw {
		airDate, err := tracker.ParseDate(ep.Airdate)
		if err != nil {
			// Treat as unannounced rather than failing the whole show.
			g.log.Warn("ignoring malformed air date", "show", name, "season", ep.Season, "number", ep.Number, "airdate", ep.Airdate)
		}
		episodes = append(episodes, tracker.Episode{
			Season:  ep.Season,
			Number:  ep.Number,
			Name:    ep.Name,
			AirDate: airDate,
		})
	}
	return episodes, nil
}

// MovieMatch is the chosen result of a movie search.
type MovieMatch struct {
	TMDBID      int64
	Title       string
	ReleaseDate time.Time
	Confidence  titlematch.Confidence
	Candidates  int // number of search results considered
}

// Year returns the release year, or 0 if unknown.
func (m *MovieMatch) Year() int {
	if m.ReleaseDate.IsZero() {
		return 0
	}
	return m.ReleaseDate.Year()
}

// FindMovie searches for a movie by title and picks the closest result. When
// no result is a confident title match, TMDB's first result wins.
func (g *Gateway) FindMovie(ctx context.Context, title string) (*MovieMatch, error) {
	results, err := g.movies.SearchMovies(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("search movie %q: %w", title, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%q: %w", title, ErrNoMatch)
	}

	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Title
	}
	best := titlematch.Best(title, titles)

	pick := 0
	if best.Index >= 0 {
		pick = best.Index
	}
	chosen := results[pick]

	release, err := tracker.ParseDate(chosen.ReleaseDate)
	if err != nil {
		g.log.Warn("ignoring malformed release date", "tmdb_id", chosen.ID, "release_date", chosen.ReleaseDate)
	}

	g.log.Debug("movie search matched", "query", title, "tmdb_id", chosen.ID, "title", chosen.Title,
		"confidence", best.Confidence.String(), "candidates", len(results))

	return &MovieMatch{
		TMDBID:      chosen.ID,
		Title:       chosen.Title,
		ReleaseDate: release,
		Confidence:  best.Confidence,
		Candidates:  len(results),
	}, nil
}

// MovieDetails fetches the title and release date of a movie.
func (g *Gateway) MovieDetails(ctx context.Context, tmdbID int64) (tracker.MovieDetails, error) {
	movie, err := g.movies.GetMovie(ctx, tmdbID)
	if err != nil {
		return tracker.MovieDetails{}, fmt.Errorf("get movie %d: %w", tmdbID, err)
	}

	release, err := tracker.ParseDate(movie.ReleaseDate)
	if err != nil {
		g.log.Warn("ignoring malformed release date", "tmdb_id", tmdbID, "release_date", movie.ReleaseDate)
	}
	return tracker.MovieDetails{Title: movie.Title, ReleaseDate: release}, nil
}
