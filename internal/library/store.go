package library

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vmunix/tvtrack/internal/tracker"
	"github.com/vmunix/tvtrack/pkg/titlematch"
)

// Store applies tracking rules on top of a Backend. Every mutation loads the
// current collection, changes it, and saves it back in full, holding the
// backend's write lock throughout when it implements Updater.
type Store struct {
	backend Backend
	now     func() time.Time
}

// NewStore creates a store over the given backend.
func NewStore(b Backend) *Store {
	return &Store{backend: b, now: time.Now}
}

// SetClock replaces the clock used to stamp movie added dates.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// update runs fn against the backend, holding the backend's write lock for
// the whole of fn when it has one.
func (s *Store) update(ctx context.Context, fn func(b Backend) error) error {
	if u, ok := s.backend.(Updater); ok {
		return u.Update(ctx, fn)
	}
	return fn(s.backend)
}

func loadShows(ctx context.Context, b Backend) ([]Show, error) {
	shows, err := b.LoadShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load shows: %w", err)
	}
	return shows, nil
}

func loadMovies(ctx context.Context, b Backend) ([]Movie, error) {
	movies, err := b.LoadMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	return movies, nil
}

// ListShows returns tracked shows in persisted order.
func (s *Store) ListShows(ctx context.Context) ([]Show, error) {
	return loadShows(ctx, s.backend)
}

// ListMovies returns tracked movies in persisted order.
func (s *Store) ListMovies(ctx context.Context) ([]Movie, error) {
	return loadMovies(ctx, s.backend)
}

func validatePosition(season, episode int) error {
	if season < 0 || episode < 0 {
		return fmt.Errorf("%w: season and episode must be non-negative, got S%dE%d", ErrInvalid, season, episode)
	}
	return nil
}

func indexShow(shows []Show, name string) int {
	return slices.IndexFunc(shows, func(s Show) bool {
		return titlematch.EqualFold(s.Name, name)
	})
}

// FindShow looks up a show by case-insensitive name.
// Returns ErrNotFound if no such show is tracked.
func (s *Store) FindShow(ctx context.Context, name string) (Show, error) {
	shows, err := s.ListShows(ctx)
	if err != nil {
		return Show{}, err
	}
	i := indexShow(shows, name)
	if i < 0 {
		return Show{}, fmt.Errorf("show %q: %w", name, ErrNotFound)
	}
	return shows[i], nil
}

// HasShow reports whether a show with this name (ignoring case) is tracked.
func (s *Store) HasShow(ctx context.Context, name string) (bool, error) {
	shows, err := s.ListShows(ctx)
	if err != nil {
		return false, err
	}
	return indexShow(shows, name) >= 0, nil
}

// AddShow starts tracking a show from the given watch position.
// Returns ErrDuplicate if a show with the same name, ignoring case, exists.
func (s *Store) AddShow(ctx context.Context, name string, season, episode int) (Show, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Show{}, fmt.Errorf("%w: show name is empty", ErrInvalid)
	}
	if err := validatePosition(season, episode); err != nil {
		return Show{}, err
	}

	show := Show{Name: name, LastSeason: season, LastEpisode: episode}
	err := s.update(ctx, func(b Backend) error {
		shows, err := loadShows(ctx, b)
		if err != nil {
			return err
		}
		if i := indexShow(shows, name); i >= 0 {
			return fmt.Errorf("show %q: %w", shows[i].Name, ErrDuplicate)
		}
		return saveShows(ctx, b, append(shows, show))
	})
	if err != nil {
		return Show{}, err
	}
	return show, nil
}

// UpdateShow moves a show's watch position.
func (s *Store) UpdateShow(ctx context.Context, name string, season, episode int) (Show, error) {
	if err := validatePosition(season, episode); err != nil {
		return Show{}, err
	}

	var updated Show
	err := s.update(ctx, func(b Backend) error {
		shows, err := loadShows(ctx, b)
		if err != nil {
			return err
		}
		i := indexShow(shows, name)
		if i < 0 {
			return fmt.Errorf("show %q: %w", name, ErrNotFound)
		}
		shows[i].LastSeason = season
		shows[i].LastEpisode = episode
		updated = shows[i]
		return saveShows(ctx, b, shows)
	})
	if err != nil {
		return Show{}, err
	}
	return updated, nil
}

// RemoveShow stops tracking the named show and returns it.
func (s *Store) RemoveShow(ctx context.Context, name string) (Show, error) {
	var removed Show
	err := s.update(ctx, func(b Backend) error {
		shows, err := loadShows(ctx, b)
		if err != nil {
			return err
		}
		i := indexShow(shows, name)
		if i < 0 {
			return fmt.Errorf("show %q: %w", name, ErrNotFound)
		}
		removed = shows[i]
		return saveShows(ctx, b, slices.Delete(shows, i, i+1))
	})
	if err != nil {
		return Show{}, err
	}
	return removed, nil
}

func saveShows(ctx context.Context, b Backend, shows []Show) error {
	if err := b.SaveShows(ctx, shows); err != nil {
		return fmt.Errorf("save shows: %w", err)
	}
	return nil
}

// SuggestShow returns the tracked show name closest to name, or "" if none
// is reasonably close.
func (s *Store) SuggestShow(ctx context.Context, name string) string {
	shows, err := s.ListShows(ctx)
	if err != nil || len(shows) == 0 {
		return ""
	}
	names := make([]string, len(shows))
	for i, show := range shows {
		names[i] = show.Name
	}
	return titlematch.Best(name, names).Title
}

func indexMovie(movies []Movie, tmdbID int64) int {
	return slices.IndexFunc(movies, func(m Movie) bool { return m.TMDBID == tmdbID })
}

// HasMovie reports whether the TMDB ID is tracked.
func (s *Store) HasMovie(ctx context.Context, tmdbID int64) (bool, error) {
	movies, err := s.ListMovies(ctx)
	if err != nil {
		return false, err
	}
	return indexMovie(movies, tmdbID) >= 0, nil
}

// AddMovie starts tracking a movie. AddedDate defaults to today.
// Returns ErrDuplicate if the TMDB ID is already tracked.
func (s *Store) AddMovie(ctx context.Context, m Movie) (Movie, error) {
	m.Title = strings.TrimSpace(m.Title)
	if m.TMDBID <= 0 {
		return Movie{}, fmt.Errorf("%w: tmdb id must be positive, got %d", ErrInvalid, m.TMDBID)
	}
	if m.AddedDate == "" {
		m.AddedDate = s.now().Format(tracker.DateLayout)
	}

	err := s.update(ctx, func(b Backend) error {
		movies, err := loadMovies(ctx, b)
		if err != nil {
			return err
		}
		if i := indexMovie(movies, m.TMDBID); i >= 0 {
			return fmt.Errorf("movie %q (tmdb %d): %w", movies[i].Title, m.TMDBID, ErrDuplicate)
		}
		return saveMovies(ctx, b, append(movies, m))
	})
	if err != nil {
		return Movie{}, err
	}
	return m, nil
}

// RemoveMovie stops tracking the movie with this TMDB ID and returns it.
func (s *Store) RemoveMovie(ctx context.Context, tmdbID int64) (Movie, error) {
	var removed Movie
	err := s.update(ctx, func(b Backend) error {
		movies, err := loadMovies(ctx, b)
		if err != nil {
			return err
		}
		i := indexMovie(movies, tmdbID)
		if i < 0 {
			return fmt.Errorf("movie tmdb %d: %w", tmdbID, ErrNotFound)
		}
		removed = movies[i]
		return saveMovies(ctx, b, slices.Delete(movies, i, i+1))
	})
	if err != nil {
		return Movie{}, err
	}
	return removed, nil
}

func saveMovies(ctx context.Context, b Backend, movies []Movie) error {
	if err := b.SaveMovies(ctx, movies); err != nil {
		return fmt.Errorf("save movies: %w", err)
	}
	return nil
}
