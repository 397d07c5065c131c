// Package library persists the shows and movies the user tracks.
package library

import (
	"context"
	"time"

	"github.com/vmunix/tvtrack/internal/tracker"
)

// Show is a tracked TV show and the last episode the user watched.
type Show struct {
	Name        string `json:"name"`
	LastSeason  int    `json:"last_season"`
	LastEpisode int    `json:"last_episode"`
}

// Position returns the show's watch position.
func (s Show) Position() tracker.WatchPosition {
	return tracker.WatchPosition{Season: s.LastSeason, Episode: s.LastEpisode}
}

// Movie is a tracked movie, identified by its TMDB ID.
type Movie struct {
	Title     string `json:"title"`
	TMDBID    int64  `json:"tmdb_id"`
	AddedDate string `json:"added_date"` // YYYY-MM-DD
}

// Added parses AddedDate. It returns the zero time if unset or malformed.
func (m Movie) Added() time.Time {
	t, _ := tracker.ParseDate(m.AddedDate)
	return t
}

// Backend loads and saves the two tracked collections. Loading a collection
// that was never saved yields an empty slice. Saving replaces the whole
// collection.
type Backend interface {
	LoadShows(ctx context.Context) ([]Show, error)
	SaveShows(ctx context.Context, shows []Show) error
	LoadMovies(ctx context.Context) ([]Movie, error)
	SaveMovies(ctx context.Context, movies []Movie) error
	Close() error
}

// Updater is implemented by backends that can hold off other writers for the
// whole of fn. Store runs every mutation through it when available, so a
// load and the save based on it are not interleaved with another process.
// The Backend passed to fn must only be used inside fn.
type Updater interface {
	Update(ctx context.Context, fn func(tx Backend) error) error
}
